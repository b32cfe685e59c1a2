// Package analysis runs the full report pipeline over a set of bureau reports.
package analysis

import (
	"fmt"

	"github.com/Veraticus/bureau-dispute-flow/internal/dispute"
	"github.com/Veraticus/bureau-dispute-flow/internal/fieldpath"
)

// Deps contains the components the engine delegates to.
type Deps struct {
	// Extractor turns flattened paths into dispute items.
	Extractor *dispute.Extractor
}

// Validate ensures all required dependencies are provided.
func (d *Deps) Validate() error {
	if d.Extractor == nil {
		return fmt.Errorf("extractor dependency is required")
	}
	return nil
}

// Config holds configuration options for the engine.
type Config struct {
	// Progress, when set, is told as each bureau finishes. It may be called
	// from several goroutines but never concurrently.
	Progress ProgressCallback
	// Limits bounds every flatten traversal.
	Limits fieldpath.Options
}

// ProgressCallback reports that one bureau's report has been processed.
type ProgressCallback func(stage string, done, total int)

// Engine runs the pipeline.
type Engine struct {
	deps Deps
	cfg  Config
}

// NewEngine creates an engine with the provided dependencies.
func NewEngine(deps Deps, cfg Config) (*Engine, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}
	return &Engine{deps: deps, cfg: cfg}, nil
}

// NewDefaultEngine uses the default rule set and traversal bounds.
func NewDefaultEngine() *Engine {
	return &Engine{
		deps: Deps{Extractor: dispute.NewExtractor(nil)},
		cfg:  Config{Limits: fieldpath.DefaultOptions()},
	}
}
