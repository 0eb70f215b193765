package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/storage/db"
)

const readinessTimeout = 2 * time.Second

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

type healthHandler struct {
	*Service
	checker db.HealthChecker
	now     func() time.Time
}

func newHealthHandler(s *Service, checker db.HealthChecker) *healthHandler {
	return &healthHandler{
		Service: s,
		checker: checker,
		now:     time.Now,
	}
}

// Health reports that the process serves requests. It never touches the
// database.
func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request) error {
	h.writeJSON(w, r, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: h.now().UTC(),
		Message:   "API is running with PostgreSQL",
	})
	return nil
}

// Ready reports whether the database answers.
func (h *healthHandler) Ready(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	ok, err := h.checker.IsHealthy(ctx)
	if err != nil {
		return apperr.ErrDatabaseUnavailable.WrapParent(fmt.Errorf("db is healthy: %w", err))
	}
	if !ok {
		return apperr.ErrDatabaseUnavailable
	}

	h.writeJSON(w, r, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: h.now().UTC(),
		Message:   "Database is reachable",
	})
	return nil
}
