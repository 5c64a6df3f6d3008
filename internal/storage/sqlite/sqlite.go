// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/billease/internal/models"
	"github.com/mmynk/billease/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are a per-connection setting, so pass them in the DSN
	// for every pooled connection.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateBill persists a new bill to the database.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	// Generate IDs if not set
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if bill.CreatedAt == 0 {
		bill.CreatedAt = now
	}
	bill.UpdatedAt = now
	if bill.Title == "" {
		bill.Title = generateTitle(bill.Participants)
	}
	if bill.State == "" {
		bill.State = models.StateUploading
	}

	resultJSON, err := encodeResult(bill.Result)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bills (id, title, state, discount_percent, misc_charge, payer_id, group_id, result_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.Title, string(bill.State), bill.DiscountPercent.String(), bill.MiscCharge.String(),
		bill.PayerID, nullable(bill.GroupID), resultJSON, bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	if err := insertBillChildren(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateBill overwrites the bill row and replaces its participants and items.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	bill.UpdatedAt = time.Now().Unix()

	resultJSON, err := encodeResult(bill.Result)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE bills
		 SET title = ?, state = ?, discount_percent = ?, misc_charge = ?, payer_id = ?, group_id = ?, result_json = ?, updated_at = ?
		 WHERE id = ?`,
		bill.Title, string(bill.State), bill.DiscountPercent.String(), bill.MiscCharge.String(),
		bill.PayerID, nullable(bill.GroupID), resultJSON, bill.UpdatedAt, bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	} else if n == 0 {
		return fmt.Errorf("bill %s: %w", bill.ID, storage.ErrNotFound)
	}

	for _, stmt := range []string{
		"DELETE FROM manual_shares WHERE item_id IN (SELECT id FROM items WHERE bill_id = ?)",
		"DELETE FROM item_assignments WHERE item_id IN (SELECT id FROM items WHERE bill_id = ?)",
		"DELETE FROM items WHERE bill_id = ?",
		"DELETE FROM participants WHERE bill_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, bill.ID); err != nil {
			return fmt.Errorf("failed to clear bill contents: %w", err)
		}
	}

	if err := insertBillChildren(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertBillChildren writes participants, items, assignments and manual shares.
func insertBillChildren(ctx context.Context, tx *sql.Tx, bill *models.Bill) error {
	for pos, name := range bill.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO participants (bill_id, position, name) VALUES (?, ?, ?)",
			bill.ID, pos, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for pos := range bill.Items {
		item := &bill.Items[pos]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO items (id, bill_id, position, description, amount, assigned) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, bill.ID, pos, item.Description, item.Amount.String(), item.Assigned,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for apos, participant := range item.Participants {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO item_assignments (item_id, position, participant) VALUES (?, ?, ?)",
				item.ID, apos, participant,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item assignment: %w", err)
			}
		}

		for spos, share := range item.ManualSplit {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO manual_shares (item_id, position, participant, amount) VALUES (?, ?, ?, ?)",
				item.ID, spos, share.Participant, share.Amount.String(),
			)
			if err != nil {
				return fmt.Errorf("failed to insert manual share: %w", err)
			}
		}
	}
	return nil
}

const billColumns = "id, title, state, discount_percent, misc_charge, payer_id, group_id, result_json, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (*models.Bill, error) {
	bill := &models.Bill{}
	var (
		state      string
		groupID    sql.NullString
		resultJSON sql.NullString
	)
	err := row.Scan(&bill.ID, &bill.Title, &state, &bill.DiscountPercent, &bill.MiscCharge,
		&bill.PayerID, &groupID, &resultJSON, &bill.CreatedAt, &bill.UpdatedAt)
	if err != nil {
		return nil, err
	}
	bill.State = models.BillState(state)
	bill.GroupID = groupID.String
	if resultJSON.Valid && resultJSON.String != "" {
		bill.Result = &models.Result{}
		if err := json.Unmarshal([]byte(resultJSON.String), bill.Result); err != nil {
			return nil, fmt.Errorf("failed to decode result: %w", err)
		}
	}
	return bill, nil
}

// GetBill retrieves a bill by ID, including all items and participants.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill, err := scanBill(s.db.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE id = ?",
		billID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	if bill.Participants, err = s.billParticipants(ctx, billID); err != nil {
		return nil, err
	}

	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount, assigned FROM items WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	for itemRows.Next() {
		var item models.Item
		if err := itemRows.Scan(&item.ID, &item.Description, &item.Amount, &item.Assigned); err != nil {
			itemRows.Close()
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		bill.Items = append(bill.Items, item)
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	for i := range bill.Items {
		item := &bill.Items[i]
		if item.Participants, err = s.itemAssignments(ctx, item.ID); err != nil {
			return nil, err
		}
		if item.ManualSplit, err = s.itemManualShares(ctx, item.ID); err != nil {
			return nil, err
		}
	}

	return bill, nil
}

// ListBills returns every bill with its participants, newest first.
// Items are not loaded.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+billColumns+" FROM bills ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	var bills []*models.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	for _, bill := range bills {
		if bill.Participants, err = s.billParticipants(ctx, bill.ID); err != nil {
			return nil, err
		}
	}
	return bills, nil
}

// DeleteBill removes a bill; participants, items and their rows cascade.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) billParticipants(ctx context.Context, billID string) ([]string, error) {
	return s.queryNames(ctx,
		"SELECT name FROM participants WHERE bill_id = ? ORDER BY position",
		billID, "participants",
	)
}

func (s *SQLiteStore) itemAssignments(ctx context.Context, itemID string) ([]string, error) {
	return s.queryNames(ctx,
		"SELECT participant FROM item_assignments WHERE item_id = ? ORDER BY position",
		itemID, "item assignments",
	)
}

func (s *SQLiteStore) queryNames(ctx context.Context, query, id, what string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", what, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", what, err)
	}
	return names, nil
}

func (s *SQLiteStore) itemManualShares(ctx context.Context, itemID string) ([]models.ManualShare, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant, amount FROM manual_shares WHERE item_id = ? ORDER BY position",
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get manual shares: %w", err)
	}
	defer rows.Close()

	var shares []models.ManualShare
	for rows.Next() {
		var share models.ManualShare
		if err := rows.Scan(&share.Participant, &share.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan manual share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate manual shares: %w", err)
	}
	return shares, nil
}

func encodeResult(result *models.Result) (any, error) {
	if result == nil {
		return nil, nil
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return string(raw), nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// generateTitle creates an auto-generated title from participants.
func generateTitle(participants []string) string {
	if len(participants) == 0 {
		return fmt.Sprintf("Bill - %s", time.Now().Format("Jan 2, 2006"))
	}
	if len(participants) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(participants, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(participants[:2], ", "),
		len(participants)-2,
	)
}
