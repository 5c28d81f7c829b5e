package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chotta-app/chotta/internal/models"
	"github.com/chotta-app/chotta/internal/storage"
)

// CreateExpense persists an expense and its shares in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate defaults if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, room_id, title, paid_by, amount, original_amount, original_currency, distribution, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.RoomID, expense.Title, expense.PaidBy, expense.Amount,
		expense.OriginalAmount, expense.OriginalCurrency, string(expense.Distribution), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, share := range expense.Shares {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, participant_id, amount, percent) VALUES (?, ?, ?, ?)",
			expense.ID, share.ParticipantID, share.Amount, share.Percent,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListExpenses returns a room's expenses with their shares, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, roomID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_id, title, paid_by, amount, original_amount, original_currency, distribution, created_at
		 FROM expenses WHERE room_id = ? ORDER BY created_at DESC, id`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var distribution string
		if err := rows.Scan(&expense.ID, &expense.RoomID, &expense.Title, &expense.PaidBy,
			&expense.Amount, &expense.OriginalAmount, &expense.OriginalCurrency,
			&distribution, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Distribution = models.DistributionType(distribution)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	// Attach shares
	for _, expense := range expenses {
		shareRows, err := s.db.QueryContext(ctx,
			"SELECT participant_id, amount, percent FROM expense_shares WHERE expense_id = ? ORDER BY participant_id",
			expense.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get expense shares: %w", err)
		}

		for shareRows.Next() {
			var share models.ExpenseShare
			if err := shareRows.Scan(&share.ParticipantID, &share.Amount, &share.Percent); err != nil {
				shareRows.Close()
				return nil, fmt.Errorf("failed to scan expense share: %w", err)
			}
			expense.Shares = append(expense.Shares, share)
		}
		shareRows.Close()
		if err := shareRows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
		}
	}

	return expenses, nil
}

// DeleteExpense removes an expense; its shares cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: expense %s", storage.ErrNotFound, expenseID)
	}
	return nil
}
