package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chotta-app/chotta/internal/calculator"
	"github.com/chotta-app/chotta/internal/models"
	"github.com/chotta-app/chotta/internal/storage"
)

// SettlementService derives balances, settlement suggestions and stats from
// the room history. It holds no state: every call re-fetches a fresh
// snapshot, so results are always consistent with the history each call saw.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a SettlementService.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// snapshot loads everything the calculator needs in one place.
func (s *SettlementService) snapshot(ctx context.Context, roomID string) ([]*models.Participant, []*models.Expense, []*models.Transfer, error) {
	participants, err := s.store.ListParticipants(ctx, roomID)
	if err != nil {
		return nil, nil, nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, roomID)
	if err != nil {
		return nil, nil, nil, err
	}
	transfers, err := s.store.ListTransfers(ctx, roomID)
	if err != nil {
		return nil, nil, nil, err
	}
	return participants, expenses, transfers, nil
}

// toCalculatorInput converts stored records into the calculator's input types.
func toCalculatorInput(participants []*models.Participant, expenses []*models.Expense, transfers []*models.Transfer) ([]string, []calculator.ExpenseForBalance, []calculator.TransferForBalance) {
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ID)
	}

	calcExpenses := make([]calculator.ExpenseForBalance, 0, len(expenses))
	for _, e := range expenses {
		shares := make([]calculator.ShareForBalance, 0, len(e.Shares))
		for _, share := range e.Shares {
			shares = append(shares, calculator.ShareForBalance{
				ParticipantID: share.ParticipantID,
				Amount:        share.Amount,
			})
		}
		calcExpenses = append(calcExpenses, calculator.ExpenseForBalance{
			PayerID: e.PaidBy,
			Shares:  shares,
		})
	}

	calcTransfers := make([]calculator.TransferForBalance, 0, len(transfers))
	for _, t := range transfers {
		calcTransfers = append(calcTransfers, calculator.TransferForBalance{
			FromID: t.FromID,
			ToID:   t.ToID,
			Amount: t.Amount,
		})
	}

	return ids, calcExpenses, calcTransfers
}

// Balances computes the current net balance per participant.
func (s *SettlementService) Balances(ctx context.Context, roomID string) (map[string]float64, error) {
	participants, expenses, transfers, err := s.snapshot(ctx, roomID)
	if err != nil {
		return nil, err
	}
	ids, calcExpenses, calcTransfers := toCalculatorInput(participants, expenses, transfers)
	return calculator.NetBalances(ids, calcExpenses, calcTransfers), nil
}

// Suggestions computes the minimal settlement instructions for the room.
// An empty list means nobody owes anything beyond rounding dust.
func (s *SettlementService) Suggestions(ctx context.Context, roomID string) ([]models.Settlement, error) {
	net, err := s.Balances(ctx, roomID)
	if err != nil {
		return nil, err
	}

	raw := calculator.Settle(net)
	settlements := make([]models.Settlement, 0, len(raw))
	for _, st := range raw {
		settlements = append(settlements, models.Settlement{
			FromID: st.FromID,
			ToID:   st.ToID,
			Amount: st.Amount,
		})
	}
	return settlements, nil
}

// Confirm records a suggested settlement as a completed transfer, which
// removes it from the next computation's output. The suggestion itself is
// never stored.
func (s *SettlementService) Confirm(ctx context.Context, roomID string, settlement models.Settlement) (*models.Transfer, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Expired(time.Now().Unix()) {
		return nil, fmt.Errorf("%w: room %s", ErrRoomExpired, roomID)
	}

	if !validAmount(settlement.Amount) {
		return nil, ErrInvalidAmount
	}
	participants, err := s.store.ListParticipants(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(settlement.FromID, participants) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, settlement.FromID)
	}
	if !isParticipant(settlement.ToID, participants) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, settlement.ToID)
	}

	transfer := &models.Transfer{
		RoomID: roomID,
		FromID: settlement.FromID,
		ToID:   settlement.ToID,
		Amount: settlement.Amount,
	}
	if err := s.store.CreateTransfer(ctx, transfer); err != nil {
		slog.Error("Confirm settlement failed", "room_id", roomID, "error", err)
		return nil, err
	}
	slog.Info("Settlement confirmed", "room_id", roomID,
		"from", settlement.FromID, "to", settlement.ToID, "amount", settlement.Amount)
	return transfer, nil
}

// RoomStats aggregates room totals and per-participant activity.
type RoomStats struct {
	TotalExpenses  float64                   `json:"total_expenses"`
	TotalTransfers float64                   `json:"total_transfers"`
	Participants   []models.ParticipantStats `json:"participants"`
}

// Stats computes the stats view: room totals plus, per participant, how
// much they fronted, how much was assigned to them and their net balance.
func (s *SettlementService) Stats(ctx context.Context, roomID string) (*RoomStats, error) {
	participants, expenses, transfers, err := s.snapshot(ctx, roomID)
	if err != nil {
		return nil, err
	}

	ids, calcExpenses, calcTransfers := toCalculatorInput(participants, expenses, transfers)
	net := calculator.NetBalances(ids, calcExpenses, calcTransfers)

	stats := &RoomStats{}
	paid := make(map[string]float64, len(participants))
	share := make(map[string]float64, len(participants))

	for _, e := range expenses {
		stats.TotalExpenses = calculator.Round2(stats.TotalExpenses + e.Amount)
		paid[e.PaidBy] = calculator.Round2(paid[e.PaidBy] + e.Amount)
		for _, sh := range e.Shares {
			share[sh.ParticipantID] = calculator.Round2(share[sh.ParticipantID] + sh.Amount)
		}
	}
	for _, t := range transfers {
		stats.TotalTransfers = calculator.Round2(stats.TotalTransfers + t.Amount)
	}

	for _, p := range participants {
		stats.Participants = append(stats.Participants, models.ParticipantStats{
			ParticipantID: p.ID,
			Name:          p.Name,
			TotalPaid:     paid[p.ID],
			TotalShare:    share[p.ID],
			Net:           net[p.ID],
		})
	}

	return stats, nil
}
