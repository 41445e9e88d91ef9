package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"foodbox-be/internal/discovery"
	"foodbox-be/internal/geo"
	"foodbox-be/internal/partner"
	"foodbox-be/internal/utils"
)

type createSessionBody struct {
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	LocationDenied bool     `json:"locationDenied"`
}

type sessionResponse struct {
	SessionID string          `json:"sessionId"`
	State     discovery.State `json:"state"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var origin *geo.Coordinates
	if body.Latitude != nil && body.Longitude != nil {
		origin = &geo.Coordinates{Latitude: *body.Latitude, Longitude: *body.Longitude}
	}

	partners, err := s.deps.Partners.ListPartners(r.Context(), origin)
	if err != nil {
		utils.WriteJSONError(w, "failed to load partners", http.StatusInternalServerError)
		return
	}

	id, view := s.deps.Sessions.Create()
	view.SetPartners(partners)
	if origin != nil {
		view.SetOrigin(*origin)
	} else if body.LocationDenied {
		view.UseFallbackOrigin("location permission denied")
	} else {
		view.UseFallbackOrigin("no location provided")
	}

	utils.WriteJSON(w, http.StatusCreated, sessionResponse{SessionID: id, State: view.Snapshot()})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*discovery.View, string, bool) {
	id := mux.Vars(r)["id"]
	view, ok := s.deps.Sessions.Get(id)
	if !ok {
		utils.WriteJSONError(w, "session not found", http.StatusNotFound)
		return nil, id, false
	}
	return view, id, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, id, ok := s.session(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, sessionResponse{SessionID: id, State: view.Snapshot()})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.deps.Sessions.Delete(id) {
		utils.WriteJSONError(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionFilter(w http.ResponseWriter, r *http.Request) {
	view, id, ok := s.session(w, r)
	if !ok {
		return
	}

	var body struct {
		Filter discovery.Filter `json:"filter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := view.SetFilter(body.Filter); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sessionResponse{SessionID: id, State: view.Snapshot()})
}

func (s *Server) handleSessionSearch(w http.ResponseWriter, r *http.Request) {
	view, id, ok := s.session(w, r)
	if !ok {
		return
	}

	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	view.SetQuery(body.Query)
	utils.WriteJSON(w, http.StatusOK, sessionResponse{SessionID: id, State: view.Snapshot()})
}

func (s *Server) handleSessionLocation(w http.ResponseWriter, r *http.Request) {
	view, id, ok := s.session(w, r)
	if !ok {
		return
	}

	var body createSessionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if body.Latitude != nil && body.Longitude != nil {
		view.SetOrigin(geo.Coordinates{Latitude: *body.Latitude, Longitude: *body.Longitude})
	} else {
		view.UseFallbackOrigin("location cleared by client")
	}
	utils.WriteJSON(w, http.StatusOK, sessionResponse{SessionID: id, State: view.Snapshot()})
}

func (s *Server) handleSessionMarker(w http.ResponseWriter, r *http.Request) {
	view, id, ok := s.session(w, r)
	if !ok {
		return
	}

	var body struct {
		PartnerID string `json:"partnerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	index := view.SelectMarker(body.PartnerID)
	utils.WriteJSON(w, http.StatusOK, struct {
		SessionID     string          `json:"sessionId"`
		CarouselIndex int             `json:"carouselIndex"`
		State         discovery.State `json:"state"`
	}{SessionID: id, CarouselIndex: index, State: view.Snapshot()})
}

func (s *Server) handleSessionCarousel(w http.ResponseWriter, r *http.Request) {
	view, id, ok := s.session(w, r)
	if !ok {
		return
	}

	var body struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	selected, valid := view.SetCarouselIndex(body.Index)
	if !valid {
		utils.WriteJSONError(w, "index out of range", http.StatusBadRequest)
		return
	}
	utils.WriteJSON(w, http.StatusOK, struct {
		SessionID string           `json:"sessionId"`
		Selected  *partner.Partner `json:"selected"`
		State     discovery.State  `json:"state"`
	}{SessionID: id, Selected: selected, State: view.Snapshot()})
}
