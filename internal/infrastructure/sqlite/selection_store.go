package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/traysheet/internal/tray"
)

// SelectionStore implements tray.SelectionStore with a single-row table.
type SelectionStore struct {
	db  *DB
	now func() time.Time
}

var _ tray.SelectionStore = (*SelectionStore)(nil)

// NewSelectionStore creates a store on db.
func NewSelectionStore(db *DB) *SelectionStore {
	return &SelectionStore{db: db, now: time.Now}
}

// Load returns the saved selection, if any.
func (s *SelectionStore) Load(ctx context.Context) (tray.Selection, bool, error) {
	var (
		sel       tray.Selection
		incognito int
	)
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT mode_id, model_id, incognito FROM tray_selection WHERE id = 1`,
	).Scan(&sel.ModeID, &sel.ModelID, &incognito)
	if errors.Is(err, sql.ErrNoRows) {
		return tray.Selection{}, false, nil
	}
	if err != nil {
		return tray.Selection{}, false, fmt.Errorf("loading selection: %w", err)
	}
	sel.Incognito = incognito != 0
	return sel, true, nil
}

// Save upserts the selection.
func (s *SelectionStore) Save(ctx context.Context, sel tray.Selection) error {
	incognito := 0
	if sel.Incognito {
		incognito = 1
	}
	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO tray_selection (id, mode_id, model_id, incognito, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode_id = excluded.mode_id,
			model_id = excluded.model_id,
			incognito = excluded.incognito,
			updated_at = excluded.updated_at`,
		sel.ModeID, sel.ModelID, incognito, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("saving selection: %w", err)
	}
	return nil
}
