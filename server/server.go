package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/BillDFrank/Predict-apartment-price-Project/storage"
	"github.com/BillDFrank/Predict-apartment-price-Project/utils"
)

// Server exposes the collected dataset over a small read-only HTTP API.
// It only reads through the gateway and never touches acquisition state.
type Server struct {
	store  storage.Gateway
	logger *utils.Logger
	router *mux.Router
}

// New creates a Server with its routes registered.
func New(store storage.Gateway, logger *utils.Logger) *Server {
	s := &Server{store: store, logger: logger}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/advertisings", s.handleAdvertisings).Methods(http.MethodGet)
	s.router = r
}

// Router returns the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run blocks serving the API on the given address.
func (s *Server) Run(addr string) error {
	s.logger.Info("[server] Listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleAdvertisings returns stored records, optionally filtered by
// ?date=YYYY-MM-DD.
func (s *Server) handleAdvertisings(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	ads, err := s.store.FetchAll(date)
	if err != nil {
		s.logger.Error("[server] Fetch failed: %v", err)
		http.Error(w, "failed to fetch advertisings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"count":        len(ads),
		"advertisings": ads,
	})
}
