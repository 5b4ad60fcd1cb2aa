package http

import (
	"context"
	"net/http"
	"time"
)

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	response := healthResponse{Status: "ok", Checks: make(map[string]string, len(s.healthChecks))}
	status := http.StatusOK

	for _, check := range s.healthChecks {
		if err := check.Check(ctx); err != nil {
			s.logger.Warn("health check failed", "dependency", check.Name, "error", err)
			response.Checks[check.Name] = "down"
			response.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		response.Checks[check.Name] = "up"
	}

	writeJSON(w, status, response)
}
