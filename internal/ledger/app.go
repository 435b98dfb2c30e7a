package ledger

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniPOS/pkg/kit"
)

type Server struct {
	Ledger *Ledger
	Log    *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.list)
	r.Get("/summary", s.summary)
	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	records, err := s.Ledger.All(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list sales failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, records)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.Ledger.Summary(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("sales summary failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, sum)
}
