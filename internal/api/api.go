// Package api exposes the application over a REST+JSON surface.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/chotta-app/chotta/internal/invite"
	"github.com/chotta-app/chotta/internal/service"
)

// passcodeHeader carries the optional room admin passcode on admin requests.
const passcodeHeader = "X-Room-Passcode"

// API wires the services into an HTTP router.
type API struct {
	router      *mux.Router
	rooms       *service.RoomService
	expenses    *service.ExpenseService
	settlements *service.SettlementService
	invites     *invite.Manager
}

// New creates the API and registers all routes.
func New(rooms *service.RoomService, expenses *service.ExpenseService, settlements *service.SettlementService, invites *invite.Manager) *API {
	a := &API{
		router:      mux.NewRouter(),
		rooms:       rooms,
		expenses:    expenses,
		settlements: settlements,
		invites:     invites,
	}
	a.setupRoutes()
	return a
}

func (a *API) setupRoutes() {
	// Rooms
	a.router.HandleFunc("/api/rooms", a.handleCreateRoom).Methods("POST")
	a.router.HandleFunc("/api/rooms/{id}", a.handleGetRoom).Methods("GET")
	a.router.HandleFunc("/api/rooms/{id}", a.handleUpdateRoom).Methods("PUT")
	a.router.HandleFunc("/api/rooms/{id}", a.handleDeleteRoom).Methods("DELETE")
	a.router.HandleFunc("/api/rooms/{id}/extend", a.handleExtendRoom).Methods("POST")
	a.router.HandleFunc("/api/rooms/{id}/invite", a.handleCreateInvite).Methods("POST")
	a.router.HandleFunc("/api/join/{token}", a.handleJoin).Methods("GET")

	// Participants
	a.router.HandleFunc("/api/rooms/{id}/participants", a.handleListParticipants).Methods("GET")
	a.router.HandleFunc("/api/rooms/{id}/participants", a.handleAddParticipant).Methods("POST")
	a.router.HandleFunc("/api/rooms/{id}/participants/{pid}", a.handleRenameParticipant).Methods("PUT")
	a.router.HandleFunc("/api/rooms/{id}/participants/{pid}", a.handleRemoveParticipant).Methods("DELETE")

	// Expenses and transfers
	a.router.HandleFunc("/api/rooms/{id}/expenses", a.handleListExpenses).Methods("GET")
	a.router.HandleFunc("/api/rooms/{id}/expenses", a.handleAddExpense).Methods("POST")
	a.router.HandleFunc("/api/rooms/{id}/expenses/{eid}", a.handleDeleteExpense).Methods("DELETE")
	a.router.HandleFunc("/api/rooms/{id}/transfers", a.handleListTransfers).Methods("GET")
	a.router.HandleFunc("/api/rooms/{id}/transfers", a.handleAddTransfer).Methods("POST")
	a.router.HandleFunc("/api/rooms/{id}/transfers/{tid}", a.handleDeleteTransfer).Methods("DELETE")

	// Balances and settlements
	a.router.HandleFunc("/api/rooms/{id}/balances", a.handleBalances).Methods("GET")
	a.router.HandleFunc("/api/rooms/{id}/settlements", a.handleSettlements).Methods("GET")
	a.router.HandleFunc("/api/rooms/{id}/settlements/confirm", a.handleConfirmSettlement).Methods("POST")
	a.router.HandleFunc("/api/rooms/{id}/stats", a.handleStats).Methods("GET")
	a.router.HandleFunc("/api/rooms/{id}/rates", a.handleRoomRates).Methods("GET")

	// Operational endpoints
	a.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	a.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	a.router.Use(metricsMiddleware, loggingMiddleware)
}

// Handler returns the fully wrapped handler ready to serve.
func (a *API) Handler() http.Handler {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", passcodeHeader},
		AllowCredentials: false,
	}
	return cors.New(corsOptions).Handler(a.router)
}
