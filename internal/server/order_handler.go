package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"foodbox-be/internal/foodpackage"
	"foodbox-be/internal/order"
	"foodbox-be/internal/utils"
)

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	customerID, _ := utils.GetUserIDFromContext(r.Context())

	var input order.CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, err := s.deps.Orders.Checkout(r.Context(), customerID, input)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, o)
}

func (s *Server) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	customerID, _ := utils.GetUserIDFromContext(r.Context())

	h, err := s.deps.Orders.History(r.Context(), customerID)
	if err != nil {
		utils.WriteJSONError(w, "failed to list orders", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, h)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	customerID, _ := utils.GetUserIDFromContext(r.Context())
	id := mux.Vars(r)["id"]

	o, err := s.deps.Orders.GetOrder(r.Context(), id, customerID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, "failed to get order", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, o)
}

func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, foodpackage.ErrPackageNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrPackageUnavailable):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, order.ErrPackageSoldOut),
		errors.Is(err, order.ErrQuantityUnavailable):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
