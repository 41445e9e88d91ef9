package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"foodbox-be/internal/discovery"
	"foodbox-be/internal/favorite"
	"foodbox-be/internal/foodpackage"
	"foodbox-be/internal/logger"
	"foodbox-be/internal/middleware"
	"foodbox-be/internal/order"
	"foodbox-be/internal/partner"
	"foodbox-be/internal/realtime"
	"foodbox-be/internal/user"
)

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

// Dependencies are the services the HTTP surface exposes.
type Dependencies struct {
	Users     user.Service
	Partners  partner.Service
	Packages  foodpackage.Service
	Orders    order.Service
	Favorites favorite.Service
	Sessions  *discovery.Manager
	Hub       *realtime.Hub
}

type Server struct {
	Router *mux.Router
	server *http.Server
	deps   Dependencies
}

func SetupRoutes(deps Dependencies) *Server {
	s := &Server{deps: deps}

	router := mux.NewRouter()
	router.Use(logger.RequestIDMiddleware)
	router.Use(middleware.CORS)
	router.Use(logger.LoggingMiddleware)
	router.Use(middleware.AuthMiddleware)
	router.Use(middleware.RateLimitMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")

	router.HandleFunc("/auth/otp/request", s.handleRequestOTP).Methods("POST")
	router.HandleFunc("/auth/otp/verify", s.handleVerifyOTP).Methods("POST")
	router.HandleFunc("/auth/refresh", s.handleRefresh).Methods("POST")

	// feed subscription carries its token in the query string
	router.HandleFunc("/ws/partners/{id}/packages", s.handlePackageFeed).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequireAuth)

	api.HandleFunc("/auth/logout", s.handleLogout).Methods("POST")

	api.HandleFunc("/partners", s.handleListPartners).Methods("GET")
	api.HandleFunc("/partners/{id}", s.handleGetPartner).Methods("GET")
	api.HandleFunc("/partners/{id}/packages", s.handleListPackages).Methods("GET")

	api.HandleFunc("/discovery/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/discovery/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/discovery/sessions/{id}", s.handleDeleteSession).Methods("DELETE")
	api.HandleFunc("/discovery/sessions/{id}/filter", s.handleSessionFilter).Methods("PUT")
	api.HandleFunc("/discovery/sessions/{id}/search", s.handleSessionSearch).Methods("PUT")
	api.HandleFunc("/discovery/sessions/{id}/location", s.handleSessionLocation).Methods("PUT")
	api.HandleFunc("/discovery/sessions/{id}/marker", s.handleSessionMarker).Methods("PUT")
	api.HandleFunc("/discovery/sessions/{id}/carousel", s.handleSessionCarousel).Methods("PUT")

	api.HandleFunc("/orders", s.handleCheckout).Methods("POST")
	api.HandleFunc("/orders", s.handleOrderHistory).Methods("GET")
	api.HandleFunc("/orders/{id}", s.handleGetOrder).Methods("GET")

	api.HandleFunc("/favorites", s.handleListFavorites).Methods("GET")
	api.HandleFunc("/favorites/{businessID}/toggle", s.handleToggleFavorite).Methods("POST")

	s.Router = router
	return s
}

func (s *Server) Run(port string) error {
	s.server = &http.Server{
		Addr:              ":" + port,
		Handler:           s.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
