package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"foodbox-be/internal/partner"
	"foodbox-be/internal/utils"
)

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	customerID, _ := utils.GetUserIDFromContext(r.Context())
	businessID := mux.Vars(r)["businessID"]

	favorited, err := s.deps.Favorites.Toggle(r.Context(), customerID, businessID)
	if err != nil {
		if errors.Is(err, partner.ErrPartnerNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "failed to toggle favorite", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	customerID, _ := utils.GetUserIDFromContext(r.Context())

	partners, err := s.deps.Favorites.ListPartners(r.Context(), customerID)
	if err != nil {
		utils.WriteJSONError(w, "failed to list favorites", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, partners)
}
