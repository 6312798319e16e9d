package http

import (
	"encoding/json"
	"net/http"
	"time"
)

// ReadyHandler reports process readiness. The process is ready as soon
// as it serves traffic; the handler also reports how long it has been up.
func ReadyHandler(start time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var res = struct {
			Status string `json:"status"`
			Up     string `json:"up"`
		}{
			Status: "ready",
			Up:     time.Since(start).String(),
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(res)
	}
}
