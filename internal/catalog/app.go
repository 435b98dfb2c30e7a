package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniPOS/pkg/kit"
)

type Server struct {
	Catalog *Catalog
	Log     *zap.Logger

	// WriteLimit wraps mutating routes; nil means unlimited.
	WriteLimit func(http.Handler) http.Handler
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.list)
	r.Get("/{name}", s.get)

	w := r.With()
	if s.WriteLimit != nil {
		w = r.With(s.WriteLimit)
	}
	w.Put("/{name}", s.upsert)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products, err := s.Catalog.ListAll(r.Context())
	if err != nil {
		s.logError("list products failed", err)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	p, err := s.Catalog.Lookup(r.Context(), name)
	if errors.Is(err, ErrNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"name": name})
		return
	}
	if err != nil {
		s.logError("get product failed", err, zap.String("name", name))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

type upsertReq struct {
	// string or number
	UnitPrice json.RawMessage `json:"unit_price" validate:"required"`
}

func (s *Server) upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		var be *kit.BodyError
		if errors.As(err, &be) {
			kit.WriteError(w, r, http.StatusBadRequest, be.Msg, be.Fields)
			return
		}
		kit.WriteError(w, r, http.StatusBadRequest, "bad request", nil)
		return
	}

	price, err := ParsePrice(priceText(req.UnitPrice))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid price", map[string]any{"cause": err.Error()})
		return
	}

	p, err := s.Catalog.Upsert(r.Context(), nameParam(r), price)
	switch {
	case errors.Is(err, ErrInvalidName):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid name", nil)
	case errors.Is(err, ErrInvalidPrice):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid price", nil)
	case err != nil:
		s.logError("upsert product failed", err)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	default:
		kit.WriteJSON(w, http.StatusOK, p)
	}
}

// priceText accepts the price as a JSON string or a bare number.
func priceText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// nameParam returns the decoded {name} segment. chi routes on RawPath when
// the request has one, and only then is the parameter still escaped.
func nameParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if v, err := url.PathUnescape(name); err == nil {
		return v
	}
	return name
}

func (s *Server) logError(msg string, err error, fields ...zap.Field) {
	if s.Log == nil {
		return
	}
	s.Log.Error(msg, append(fields, zap.Error(err))...)
}
