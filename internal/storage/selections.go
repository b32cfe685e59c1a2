package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// SaveSelection records which bureau is correct for a field, replacing any earlier choice.
func (s *SQLiteStorage) SaveSelection(ctx context.Context, sel *model.BureauSelection) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSelection(sel); err != nil {
		return err
	}
	if sel.SelectedAt.IsZero() {
		sel.SelectedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bureau_selections (report_id, canonical_key, bureau, notes, selected_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(report_id, canonical_key) DO UPDATE SET
			bureau = excluded.bureau,
			notes = excluded.notes,
			selected_at = excluded.selected_at
	`, sel.ReportID, sel.CanonicalKey, string(sel.Bureau), sel.Notes, sel.SelectedAt)
	if err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

// GetSelection returns the selection for one field, or common.ErrNotFound.
func (s *SQLiteStorage) GetSelection(ctx context.Context, reportID, canonicalKey string) (*model.BureauSelection, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(reportID, "reportID"); err != nil {
		return nil, err
	}
	if err := validateString(canonicalKey, "canonicalKey"); err != nil {
		return nil, err
	}

	selections, err := s.querySelections(ctx, s.db, `
		SELECT report_id, canonical_key, bureau, notes, selected_at
		FROM bureau_selections
		WHERE report_id = ? AND canonical_key = ?
	`, reportID, canonicalKey)
	if err != nil {
		return nil, err
	}
	if len(selections) == 0 {
		return nil, fmt.Errorf("selection %s/%s: %w", reportID, canonicalKey, common.ErrNotFound)
	}
	return &selections[0], nil
}

// ListSelections returns every selection for a report ordered by canonical key.
func (s *SQLiteStorage) ListSelections(ctx context.Context, reportID string) ([]model.BureauSelection, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(reportID, "reportID"); err != nil {
		return nil, err
	}

	return s.querySelections(ctx, s.db, `
		SELECT report_id, canonical_key, bureau, notes, selected_at
		FROM bureau_selections
		WHERE report_id = ?
		ORDER BY canonical_key
	`, reportID)
}

// DeleteSelection removes the selection for one field.
func (s *SQLiteStorage) DeleteSelection(ctx context.Context, reportID, canonicalKey string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(reportID, "reportID"); err != nil {
		return err
	}
	if err := validateString(canonicalKey, "canonicalKey"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM bureau_selections WHERE report_id = ? AND canonical_key = ?
	`, reportID, canonicalKey)
	if err != nil {
		return fmt.Errorf("failed to delete selection: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("selection %s/%s: %w", reportID, canonicalKey, common.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStorage) querySelections(ctx context.Context, q queryable, query string, args ...any) ([]model.BureauSelection, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query selections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var selections []model.BureauSelection
	for rows.Next() {
		var sel model.BureauSelection
		var bureau string
		if err := rows.Scan(&sel.ReportID, &sel.CanonicalKey, &bureau, &sel.Notes, &sel.SelectedAt); err != nil {
			return nil, fmt.Errorf("failed to scan selection: %w", err)
		}
		sel.Bureau = model.Bureau(bureau)
		selections = append(selections, sel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate selections: %w", err)
	}
	return selections, nil
}
