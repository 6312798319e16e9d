package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/orderly-app/orderly"
	kithttp "github.com/orderly-app/orderly/kit/transport/http"
	"github.com/orderly-app/orderly/tenancy"
)

// HealthHandler serves the health report. It reports through whichever
// health variant is bound to the request, so a tenant's extra component
// checks appear when the request resolves to that tenant.
type HealthHandler struct {
	kithttp.ErrorHandler
	log *zap.Logger
}

// NewHealthHandler returns a handler for the health endpoint.
func NewHealthHandler(log *zap.Logger) *HealthHandler {
	return &HealthHandler{log: log}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	svc, err := tenancy.GetHealthService(ctx)
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}
	status, err := svc.Status(ctx)
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}

	code := http.StatusOK
	if status.Status != orderly.HealthPass {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		h.log.Error("Failed to encode health response", zap.Error(err))
	}
}
