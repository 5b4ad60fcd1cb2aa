package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"propertylisting/src/domain"
)

type errorResponse struct {
	Error      string                  `json:"error"`
	Violations []domain.FieldViolation `json:"violations,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError traduz os erros do domínio em status HTTP. Falhas
// inesperadas são logadas e respondidas com a mensagem genérica.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:      "validation failed",
			Violations: validationErr.Violations,
		})

	case errors.Is(err, domain.ErrListingNotFound):
		writeMessage(w, http.StatusNotFound, domain.ErrListingNotFound.Error())

	case errors.Is(err, domain.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())

	default:
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeMessage(w, http.StatusInternalServerError, domain.ErrUnavailableServer.Error())
	}
}
