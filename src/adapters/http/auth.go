package http

import (
	"encoding/json"
	"net/http"
)

type authenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) Authenticate(w http.ResponseWriter, r *http.Request) {
	var request authenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := s.authService.Authenticate(r.Context(), request.Email, request.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}
