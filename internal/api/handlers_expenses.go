package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chotta-app/chotta/internal/models"
	"github.com/chotta-app/chotta/internal/service"
)

type shareResponse struct {
	ParticipantID string  `json:"participant_id"`
	Amount        float64 `json:"amount"`
	Percent       float64 `json:"percent,omitempty"`
}

type expenseResponse struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	PaidBy           string          `json:"paid_by"`
	Amount           float64         `json:"amount"`
	OriginalAmount   float64         `json:"original_amount"`
	OriginalCurrency string          `json:"original_currency"`
	Distribution     string          `json:"distribution"`
	Shares           []shareResponse `json:"shares"`
	CreatedAt        int64           `json:"created_at"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	shares := make([]shareResponse, 0, len(e.Shares))
	for _, s := range e.Shares {
		shares = append(shares, shareResponse{
			ParticipantID: s.ParticipantID,
			Amount:        s.Amount,
			Percent:       s.Percent,
		})
	}
	return expenseResponse{
		ID:               e.ID,
		Title:            e.Title,
		PaidBy:           e.PaidBy,
		Amount:           e.Amount,
		OriginalAmount:   e.OriginalAmount,
		OriginalCurrency: e.OriginalCurrency,
		Distribution:     string(e.Distribution),
		Shares:           shares,
		CreatedAt:        e.CreatedAt,
	}
}

func (a *API) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := a.expenses.List(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title        string             `json:"title"`
		PaidBy       string             `json:"paid_by"`
		Amount       float64            `json:"amount"`
		Currency     string             `json:"currency"`
		Distribution string             `json:"distribution"`
		Selected     []string           `json:"selected"`
		Percentages  map[string]float64 `json:"percentages"`
		Amounts      map[string]float64 `json:"amounts"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	expense, err := a.expenses.Add(r.Context(), mux.Vars(r)["id"], service.ExpenseInput{
		Title:        req.Title,
		PaidBy:       req.PaidBy,
		Amount:       req.Amount,
		Currency:     req.Currency,
		Distribution: models.DistributionType(req.Distribution),
		Selected:     req.Selected,
		Percentages:  req.Percentages,
		Amounts:      req.Amounts,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (a *API) handleRoomRates(w http.ResponseWriter, r *http.Request) {
	rates, err := a.expenses.Rates(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

func (a *API) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := a.expenses.Delete(r.Context(), vars["id"], vars["eid"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transferResponse struct {
	ID        string  `json:"id"`
	FromID    string  `json:"from"`
	ToID      string  `json:"to"`
	Amount    float64 `json:"amount"`
	CreatedAt int64   `json:"created_at"`
}

func (a *API) handleListTransfers(w http.ResponseWriter, r *http.Request) {
	transfers, err := a.expenses.Transfers(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]transferResponse, 0, len(transfers))
	for _, t := range transfers {
		resp = append(resp, transferResponse{
			ID: t.ID, FromID: t.FromID, ToID: t.ToID,
			Amount: t.Amount, CreatedAt: t.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleAddTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromID string  `json:"from"`
		ToID   string  `json:"to"`
		Amount float64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	transfer, err := a.expenses.AddTransfer(r.Context(), mux.Vars(r)["id"], req.FromID, req.ToID, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, transferResponse{
		ID: transfer.ID, FromID: transfer.FromID, ToID: transfer.ToID,
		Amount: transfer.Amount, CreatedAt: transfer.CreatedAt,
	})
}

func (a *API) handleDeleteTransfer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := a.expenses.DeleteTransfer(r.Context(), vars["id"], vars["tid"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
