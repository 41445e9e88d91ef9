package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"foodbox-be/internal/discovery"
	"foodbox-be/internal/foodpackage"
	"foodbox-be/internal/geo"
	"foodbox-be/internal/partner"
	"foodbox-be/internal/utils"
)

func (s *Server) handleListPartners(w http.ResponseWriter, r *http.Request) {
	origin := parseOrigin(r)

	partners, err := s.deps.Partners.ListPartners(r.Context(), origin)
	if err != nil {
		utils.WriteJSONError(w, "failed to list partners", http.StatusInternalServerError)
		return
	}

	// filter and q apply the same category/search pipeline a discovery
	// session uses, without creating one.
	filterRaw := r.URL.Query().Get("filter")
	query := r.URL.Query().Get("q")
	if filterRaw != "" || query != "" {
		view := discovery.NewView()
		if origin != nil {
			view.SetOrigin(*origin)
		}
		view.SetPartners(partners)
		if filterRaw != "" {
			if err := view.SetFilter(discovery.Filter(filterRaw)); err != nil {
				utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		view.SetQuery(query)
		partners = view.Partners()
	}

	utils.WriteJSON(w, http.StatusOK, partners)
}

func (s *Server) handleGetPartner(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p, err := s.deps.Partners.GetPartner(r.Context(), id)
	if err != nil {
		if errors.Is(err, partner.ErrPartnerNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "failed to get partner", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) handleListPackages(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	includeUnavailable := r.URL.Query().Get("all") == "true"

	pkgs, err := s.deps.Packages.ListBusinessPackages(r.Context(), id, includeUnavailable)
	if err != nil {
		if errors.Is(err, foodpackage.ErrPackageNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "failed to list packages", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, pkgs)
}

// parseOrigin reads lat/lng query params. Nil when absent or unparsable.
func parseOrigin(r *http.Request) *geo.Coordinates {
	latRaw := r.URL.Query().Get("lat")
	lngRaw := r.URL.Query().Get("lng")
	if latRaw == "" || lngRaw == "" {
		return nil
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return nil
	}
	return &geo.Coordinates{Latitude: lat, Longitude: lng}
}
