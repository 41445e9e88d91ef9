package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"foodbox-be/internal/user"
	"foodbox-be/internal/utils"
)

// handlePackageFeed subscribes a websocket client to one business's
// package feed. Browsers cannot set headers on the handshake, so the
// access token arrives as a query parameter.
func (s *Server) handlePackageFeed(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.WriteJSONError(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := user.ParseJWT(token)
	if err != nil || claims.TokenType != user.TokenTypeAccess {
		utils.WriteJSONError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	businessID := mux.Vars(r)["id"]
	s.deps.Hub.ServeWS(w, r, businessID)
}
