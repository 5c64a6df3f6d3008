// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/billease/internal/models"
)

// ErrNotFound is returned (wrapped) when a bill or group does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for bill and group storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateBill persists a new bill.
	// The bill.ID, CreatedAt and UpdatedAt fields are populated by the store.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID, with items, participants and result.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// UpdateBill replaces the stored state of an existing bill.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// ListBills returns all bills without their items, newest first.
	ListBills(ctx context.Context) ([]*models.Bill, error)

	// DeleteBill removes a bill and everything attached to it.
	DeleteBill(ctx context.Context, billID string) error

	// CreateGroup persists a new group. ID and CreatedAt are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns all groups, ordered by name.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// Close releases any resources held by the store.
	Close() error
}
