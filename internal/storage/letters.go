package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// SaveLetterItem queues a dispute item for a letter. Re-adding an item refreshes its summary.
func (s *SQLiteStorage) SaveLetterItem(ctx context.Context, item *model.LetterItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateLetterItem(item); err != nil {
		return err
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO letter_items (report_id, item_id, bureau, summary, added_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(report_id, item_id) DO UPDATE SET
			bureau = excluded.bureau,
			summary = excluded.summary
	`, item.ReportID, item.ItemID, string(item.Bureau), item.Summary, item.AddedAt)
	if err != nil {
		return fmt.Errorf("failed to save letter item: %w", err)
	}
	return nil
}

// ListLetterItems returns the queued items for a report. An empty bureau lists all bureaus.
func (s *SQLiteStorage) ListLetterItems(ctx context.Context, reportID string, bureau model.Bureau) ([]model.LetterItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(reportID, "reportID"); err != nil {
		return nil, err
	}

	query := `
		SELECT report_id, item_id, bureau, summary, added_at
		FROM letter_items
		WHERE report_id = ?`
	args := []any{reportID}
	if bureau != "" {
		query += ` AND bureau = ?`
		args = append(args, string(bureau))
	}
	query += ` ORDER BY bureau, added_at, item_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query letter items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.LetterItem
	for rows.Next() {
		var item model.LetterItem
		var b string
		if err := rows.Scan(&item.ReportID, &item.ItemID, &b, &item.Summary, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan letter item: %w", err)
		}
		item.Bureau = model.Bureau(b)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate letter items: %w", err)
	}
	return items, nil
}

// ClearLetterItems drops every queued item for a report and returns how many were removed.
func (s *SQLiteStorage) ClearLetterItems(ctx context.Context, reportID string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(reportID, "reportID"); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM letter_items WHERE report_id = ?`, reportID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear letter items: %w", err)
	}
	return result.RowsAffected()
}
