package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/chotta-app/chotta/internal/models"
	"github.com/chotta-app/chotta/internal/rates"
	"github.com/chotta-app/chotta/internal/storage"
)

// ExpenseService manages expenses and transfers.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// ExpenseInput describes a new expense as entered in the UI.
// Amount and (for custom distribution) Amounts are in Currency; they are
// converted to the room default before shares are stored.
type ExpenseInput struct {
	Title    string
	PaidBy   string
	Amount   float64
	Currency string // empty means the room's default currency

	Distribution models.DistributionType
	Selected     []string           // participant ids, for DistributionSelected
	Percentages  map[string]float64 // participant id -> percent, for DistributionPercent
	Amounts      map[string]float64 // participant id -> amount, for DistributionCustom
}

// validAmount reports whether v is a usable monetary input. NaN and ±Inf
// are rejected here, at the boundary, so the calculator never sees them
// from our own records.
func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func isParticipant(id string, participants []*models.Participant) bool {
	for _, p := range participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Add validates, converts and persists a new expense with its shares.
func (s *ExpenseService) Add(ctx context.Context, roomID string, in ExpenseInput) (*models.Expense, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Expired(time.Now().Unix()) {
		return nil, fmt.Errorf("%w: room %s", ErrRoomExpired, roomID)
	}

	if !validAmount(in.Amount) {
		return nil, ErrInvalidAmount
	}

	participants, err := s.store.ListParticipants(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(in.PaidBy, participants) {
		return nil, fmt.Errorf("%w: payer %s", ErrUnknownParticipant, in.PaidBy)
	}

	// Resolve the conversion rate for the entry currency.
	currency := in.Currency
	if currency == "" {
		currency = room.Settings.DefaultCurrency
	}
	rate := 1.0
	if currency != room.Settings.DefaultCurrency {
		stored, err := s.store.GetRates(ctx, room.Settings.DefaultCurrency, []string{currency})
		if err != nil {
			return nil, err
		}
		r, ok := stored[currency]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrRateUnavailable, currency)
		}
		rate = r
	}
	converted := rates.ToBase(in.Amount, rate)

	shares, err := buildShares(in, converted, rate, participants)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		RoomID:           roomID,
		Title:            in.Title,
		PaidBy:           in.PaidBy,
		Amount:           converted,
		OriginalAmount:   in.Amount,
		OriginalCurrency: currency,
		Distribution:     in.Distribution,
		Shares:           shares,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "room_id", roomID, "error", err)
		return nil, err
	}
	slog.Info("Expense added", "room_id", roomID, "expense_id", expense.ID,
		"amount", converted, "distribution", in.Distribution)
	return expense, nil
}

// buildShares produces the expense shares for the chosen distribution mode.
// converted is the expense amount in the room currency; rate converts
// custom entry-currency amounts.
func buildShares(in ExpenseInput, converted, rate float64, participants []*models.Participant) ([]models.ExpenseShare, error) {
	switch in.Distribution {
	case models.DistributionEqual, "":
		if len(participants) == 0 {
			return nil, ErrNoOwers
		}
		per := rates.EqualShare(converted, len(participants))
		shares := make([]models.ExpenseShare, 0, len(participants))
		for _, p := range participants {
			shares = append(shares, models.ExpenseShare{ParticipantID: p.ID, Amount: per})
		}
		return shares, nil

	case models.DistributionSelected:
		if len(in.Selected) == 0 {
			return nil, ErrNoOwers
		}
		per := rates.EqualShare(converted, len(in.Selected))
		shares := make([]models.ExpenseShare, 0, len(in.Selected))
		for _, id := range in.Selected {
			if !isParticipant(id, participants) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
			}
			shares = append(shares, models.ExpenseShare{ParticipantID: id, Amount: per})
		}
		return shares, nil

	case models.DistributionPercent:
		if len(in.Percentages) == 0 {
			return nil, ErrNoOwers
		}
		sum := 0.0
		for _, pct := range in.Percentages {
			if math.IsNaN(pct) || math.IsInf(pct, 0) || pct < 0 {
				return nil, ErrInvalidAmount
			}
			sum += pct
		}
		if math.Abs(sum-100) > 0.001 {
			return nil, fmt.Errorf("%w: got %.2f", ErrPercentSum, sum)
		}
		shares := make([]models.ExpenseShare, 0, len(in.Percentages))
		for id, pct := range in.Percentages {
			if !isParticipant(id, participants) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
			}
			shares = append(shares, models.ExpenseShare{
				ParticipantID: id,
				Amount:        rates.Portion(converted, pct),
				Percent:       pct,
			})
		}
		return shares, nil

	case models.DistributionCustom:
		if len(in.Amounts) == 0 {
			return nil, ErrNoOwers
		}
		sum := 0.0
		for _, amt := range in.Amounts {
			if !validAmount(amt) {
				return nil, ErrInvalidAmount
			}
			sum += amt
		}
		// Entered amounts must cover the entered total; a cent of rounding
		// slack matches what the entry form allows.
		if math.Abs(sum-in.Amount) > 0.01 {
			return nil, fmt.Errorf("%w: shares %.2f vs amount %.2f", ErrShareSum, sum, in.Amount)
		}
		shares := make([]models.ExpenseShare, 0, len(in.Amounts))
		for id, amt := range in.Amounts {
			if !isParticipant(id, participants) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
			}
			shares = append(shares, models.ExpenseShare{
				ParticipantID: id,
				Amount:        rates.ToBase(amt, rate),
			})
		}
		return shares, nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", in.Distribution)
	}
}

// Rates returns the stored conversion rates from the room's default
// currency to each of its extra currencies. Currencies without a stored
// rate are absent; entry in those is rejected until the refresher catches up.
func (s *ExpenseService) Rates(ctx context.Context, roomID string) (map[string]float64, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return s.store.GetRates(ctx, room.Settings.DefaultCurrency, room.Settings.ExtraCurrencies)
}

// List returns the room's expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, roomID string) ([]*models.Expense, error) {
	return s.store.ListExpenses(ctx, roomID)
}

// Delete removes an expense from an active room.
func (s *ExpenseService) Delete(ctx context.Context, roomID, expenseID string) error {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if room.Expired(time.Now().Unix()) {
		return fmt.Errorf("%w: room %s", ErrRoomExpired, roomID)
	}
	return s.store.DeleteExpense(ctx, expenseID)
}

// AddTransfer records a completed direct payment between two participants.
func (s *ExpenseService) AddTransfer(ctx context.Context, roomID, fromID, toID string, amount float64) (*models.Transfer, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Expired(time.Now().Unix()) {
		return nil, fmt.Errorf("%w: room %s", ErrRoomExpired, roomID)
	}

	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}
	if fromID == toID {
		return nil, ErrSelfTransfer
	}

	participants, err := s.store.ListParticipants(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(fromID, participants) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, fromID)
	}
	if !isParticipant(toID, participants) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, toID)
	}

	transfer := &models.Transfer{
		RoomID: roomID,
		FromID: fromID,
		ToID:   toID,
		Amount: amount,
	}
	if err := s.store.CreateTransfer(ctx, transfer); err != nil {
		slog.Error("CreateTransfer failed", "room_id", roomID, "error", err)
		return nil, err
	}
	slog.Info("Transfer recorded", "room_id", roomID, "from", fromID, "to", toID, "amount", amount)
	return transfer, nil
}

// Transfers returns the room's transfers, newest first.
func (s *ExpenseService) Transfers(ctx context.Context, roomID string) ([]*models.Transfer, error) {
	return s.store.ListTransfers(ctx, roomID)
}

// DeleteTransfer removes a transfer from an active room.
func (s *ExpenseService) DeleteTransfer(ctx context.Context, roomID, transferID string) error {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if room.Expired(time.Now().Unix()) {
		return fmt.Errorf("%w: room %s", ErrRoomExpired, roomID)
	}
	return s.store.DeleteTransfer(ctx, transferID)
}
