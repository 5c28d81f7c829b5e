// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/chotta-app/chotta/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for room storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateRoom persists a new room together with its settings.
	// Missing ID and CreatedAt fields are populated by the store.
	CreateRoom(ctx context.Context, room *models.Room) error

	// GetRoom retrieves a room and its settings by ID.
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)

	// UpdateRoom updates a room's name, expiry and settings.
	UpdateRoom(ctx context.Context, room *models.Room) error

	// DeleteRoom removes a room and, via cascading deletes, everything in it.
	DeleteRoom(ctx context.Context, roomID string) error

	// AddParticipant adds a participant to a room.
	AddParticipant(ctx context.Context, p *models.Participant) error

	// ListParticipants returns a room's participants ordered by name.
	ListParticipants(ctx context.Context, roomID string) ([]*models.Participant, error)

	// RenameParticipant changes a participant's display name.
	RenameParticipant(ctx context.Context, participantID, name string) error

	// DeleteParticipant removes a participant from their room.
	DeleteParticipant(ctx context.Context, participantID string) error

	// CreateExpense persists an expense and its shares in one transaction.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses returns a room's expenses with their shares, newest first.
	ListExpenses(ctx context.Context, roomID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense and its shares.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateTransfer persists a direct payment record.
	CreateTransfer(ctx context.Context, transfer *models.Transfer) error

	// ListTransfers returns a room's transfers, newest first.
	ListTransfers(ctx context.Context, roomID string) ([]*models.Transfer, error)

	// DeleteTransfer removes a transfer.
	DeleteTransfer(ctx context.Context, transferID string) error

	// UpsertRate stores one base→target conversion rate.
	UpsertRate(ctx context.Context, base, target string, rate float64, updatedAt int64) error

	// GetRates returns the stored rates from base to each target currency.
	// Targets without a stored rate are absent from the result.
	GetRates(ctx context.Context, base string, targets []string) (map[string]float64, error)

	// Close releases any resources held by the store.
	Close() error
}
