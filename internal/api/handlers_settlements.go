package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chotta-app/chotta/internal/models"
)

func (a *API) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := a.settlements.Balances(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

func (a *API) handleSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := a.settlements.Suggestions(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settlements)
}

func (a *API) handleConfirmSettlement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromID string  `json:"from"`
		ToID   string  `json:"to"`
		Amount float64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	transfer, err := a.settlements.Confirm(r.Context(), mux.Vars(r)["id"], models.Settlement{
		FromID: req.FromID,
		ToID:   req.ToID,
		Amount: req.Amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, transferResponse{
		ID: transfer.ID, FromID: transfer.FromID, ToID: transfer.ToID,
		Amount: transfer.Amount, CreatedAt: transfer.CreatedAt,
	})
}

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.settlements.Stats(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
