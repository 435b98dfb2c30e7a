package cart

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniPOS/pkg/kit"
)

type Server struct {
	Checkout *Service
	Log      *zap.Logger

	WriteLimit func(http.Handler) http.Handler
}

type checkoutReq struct {
	Items []Selection `json:"items" validate:"dive"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	if s.WriteLimit != nil {
		r.Use(s.WriteLimit)
	}
	r.Post("/", s.create)
	return r
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		var be *kit.BodyError
		if errors.As(err, &be) {
			kit.WriteError(w, r, http.StatusBadRequest, be.Msg, be.Fields)
			return
		}
		kit.WriteError(w, r, http.StatusBadRequest, "bad request", nil)
		return
	}

	receipt, err := s.Checkout.Checkout(r.Context(), req.Items)
	if err != nil {
		s.writeCheckoutError(w, r, err)
		return
	}

	if s.Log != nil {
		s.Log.Info("checkout completed",
			zap.Stringer("checkout_id", receipt.CheckoutID),
			zap.Int("lines", len(receipt.Records)),
			zap.String("total", receipt.Total.StringFixed(2)),
		)
	}
	kit.WriteJSON(w, http.StatusCreated, receipt)
}

func (s *Server) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrEmptyCart):
		kit.WriteError(w, r, http.StatusBadRequest, "empty cart", nil)
	case errors.Is(err, ErrInvalidQuantity):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid quantity", map[string]any{"cause": err.Error()})
	case errors.Is(err, ErrProductNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"cause": err.Error()})
	default:
		if s.Log != nil {
			s.Log.Error("checkout failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}
