package kit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// BodyError carries per-field messages for a 400 response.
type BodyError struct {
	Msg    string
	Fields map[string]string
}

func (e *BodyError) Error() string { return e.Msg }

// DecodeJSON reads exactly one JSON object into dst and runs struct validation.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &BodyError{Msg: "bad json", Fields: map[string]string{"body": err.Error()}}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return &BodyError{Msg: "bad json", Fields: map[string]string{"body": "extra data after json object"}}
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &BodyError{Msg: "validation failed", Fields: map[string]string{"body": err.Error()}}
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldPath(fe)] = validationMessage(fe)
		}
		return &BodyError{Msg: "validation failed", Fields: fields}
	}
	return nil
}

// fieldPath drops the root struct name from the namespace: items[0].product.
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "dive":
		return "is invalid"
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
