package server

import (
	"encoding/json"
	"net/http"

	"github.com/matthias/cv-wizard/internal/server/middleware"
	"github.com/matthias/cv-wizard/internal/wizard"
)

// maxChatBody bounds the request size. Resume uploads ride along as base64,
// so the cap is well above typical DOCX sizes.
const maxChatBody = 12 << 20

// handleChat runs one wizard turn for the authenticated user. The engine
// reply is always delivered with status 200; errors the user can act on are
// inside the response envelope.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ownerID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req wizard.ChatRequest
	body := http.MaxBytesReader(w, r.Body, maxChatBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp := s.engine.HandleMessage(r.Context(), ownerID, &req)
	s.jsonResponse(w, http.StatusOK, resp)
}
