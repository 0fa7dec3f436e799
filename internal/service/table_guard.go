package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tablepos/api/internal/database"
)

type guardMode int

const (
	guardCreate guardMode = iota
	guardEdit
)

// TableStore is the table lookup used by the availability guard.
type TableStore interface {
	GetTableForUpdate(ctx context.Context, arg database.GetTableForUpdateParams) (database.Table, error)
	GetLatestOrderByTable(ctx context.Context, tableID uuid.UUID) (database.Order, error)
}

// tableSnapshot is what the guard knows about a requested table.
type tableSnapshot struct {
	table        database.Table
	found        bool
	lastOrder    database.Order
	hasLastOrder bool
}

// loadTableSnapshot reads the table row under a row lock so concurrent
// claims on the same table serialize on the surrounding transaction.
// The latest order is only loaded for edits.
func loadTableSnapshot(ctx context.Context, store TableStore, userID, tableID uuid.UUID, mode guardMode) (tableSnapshot, error) {
	var snap tableSnapshot

	table, err := store.GetTableForUpdate(ctx, database.GetTableForUpdateParams{
		ID:     tableID,
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return snap, nil
		}
		return snap, fmt.Errorf("get table: %w", err)
	}
	snap.table = table
	snap.found = true

	if mode != guardEdit {
		return snap, nil
	}

	// Most recently updated order on the requested table, not necessarily
	// the order being edited.
	last, err := store.GetLatestOrderByTable(ctx, tableID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return snap, nil
		}
		return snap, fmt.Errorf("get latest order for table: %w", err)
	}
	snap.lastOrder = last
	snap.hasLastOrder = true
	return snap, nil
}

// checkTableAvailability decides whether the snapshot table can take the
// order. currentTableID is the edited order's table and is ignored on create.
func checkTableAvailability(mode guardMode, snap tableSnapshot, currentTableID uuid.UUID) error {
	if !snap.found {
		return ErrTableNotFound
	}

	switch mode {
	case guardCreate:
		if snap.table.Status == database.TableStatusOCCUPIED {
			return tableOccupied(snap.table.Name)
		}
	case guardEdit:
		if !snap.hasLastOrder {
			return ErrNoPreviousOrder
		}
		if snap.table.ID != currentTableID && snap.table.Status == database.TableStatusOCCUPIED {
			return tableMoveOccupied(snap.table.Name)
		}
	}
	return nil
}
