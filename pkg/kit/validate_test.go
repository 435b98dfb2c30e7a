package kit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type sampleReq struct {
	Items []sampleItem `json:"items" validate:"required,min=1,dive"`
}

type sampleItem struct {
	Name string `json:"name" validate:"required"`
}

func decode(body string) error {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dst sampleReq
	return DecodeJSON(httptest.NewRecorder(), req, &dst)
}

func TestDecodeJSON(t *testing.T) {
	if err := decode(`{"items":[{"name":"a"}]}`); err != nil {
		t.Fatalf("valid body: %v", err)
	}

	cases := map[string]struct {
		body  string
		msg   string
		field string
	}{
		"malformed":     {body: `{"items":`, msg: "bad json", field: "body"},
		"trailing data": {body: `{"items":[{"name":"a"}]} {}`, msg: "bad json", field: "body"},
		"unknown field": {body: `{"items":[{"name":"a"}],"x":1}`, msg: "bad json", field: "body"},
		"empty items":   {body: `{"items":[]}`, msg: "validation failed", field: "items"},
		"missing name":  {body: `{"items":[{"name":""}]}`, msg: "validation failed", field: "items[0].name"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := decode(tc.body)
			var be *BodyError
			if !errors.As(err, &be) {
				t.Fatalf("err=%v", err)
			}
			if be.Msg != tc.msg {
				t.Fatalf("msg=%q want=%q", be.Msg, tc.msg)
			}
			if _, ok := be.Fields[tc.field]; !ok {
				t.Fatalf("fields=%v missing %q", be.Fields, tc.field)
			}
		})
	}
}
