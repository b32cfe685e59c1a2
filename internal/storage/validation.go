// Package storage persists bureau selections and queued letter items.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidSelection = errors.New("invalid bureau selection")
	ErrInvalidLetter    = errors.New("invalid letter item")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateSelection(sel *model.BureauSelection) error {
	if sel == nil {
		return fmt.Errorf("%w: selection", ErrNilParameter)
	}
	if strings.TrimSpace(sel.ReportID) == "" {
		return fmt.Errorf("%w: missing report ID", ErrInvalidSelection)
	}
	if strings.TrimSpace(sel.CanonicalKey) == "" {
		return fmt.Errorf("%w: missing canonical key", ErrInvalidSelection)
	}
	if !sel.Bureau.IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidSelection, model.ErrUnknownBureau, sel.Bureau)
	}
	return nil
}

func validateLetterItem(item *model.LetterItem) error {
	if item == nil {
		return fmt.Errorf("%w: letter item", ErrNilParameter)
	}
	if strings.TrimSpace(item.ReportID) == "" {
		return fmt.Errorf("%w: missing report ID", ErrInvalidLetter)
	}
	if strings.TrimSpace(item.ItemID) == "" {
		return fmt.Errorf("%w: missing item ID", ErrInvalidLetter)
	}
	if !item.Bureau.IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidLetter, model.ErrUnknownBureau, item.Bureau)
	}
	return nil
}
