package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Veraticus/bureau-dispute-flow/internal/accounts"
	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/differential"
	"github.com/Veraticus/bureau-dispute-flow/internal/fieldpath"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
	"golang.org/x/sync/errgroup"
)

type bureauOutput struct {
	items  []model.DisputeItem
	result BureauResult
}

// Run flattens and extracts every present bureau concurrently, then compares
// the bureaus and groups their accounts. Documents are only read, so the
// goroutines share them without locking.
func (e *Engine) Run(ctx context.Context, set model.ReportSet) (*Report, error) {
	bureaus := set.Bureaus()
	if len(bureaus) == 0 {
		return nil, common.ErrNoReports
	}

	outputs := make([]bureauOutput, len(bureaus))
	progress := e.progress(len(bureaus))

	g, gctx := errgroup.WithContext(ctx)
	for i, b := range bureaus {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outputs[i] = e.processBureau(set[b], b)
			progress(b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze reports: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze reports: %w", err)
	}

	report := &Report{
		GeneratedAt: time.Now(),
		Bureaus:     make([]BureauResult, 0, len(bureaus)),
	}
	pathsByBureau := make(map[model.Bureau][]string, len(bureaus))
	for _, out := range outputs {
		report.Bureaus = append(report.Bureaus, out.result)
		report.DisputeItems = append(report.DisputeItems, out.items...)
		pathsByBureau[out.result.Bureau] = out.result.Paths
	}

	report.Differentials = differential.Compare(set, pathsByBureau)
	report.AccountGroups = accounts.SortByScore(accounts.GroupReports(set), true)

	common.LogInfo("Analyzed bureau reports", common.Fields{
		"bureaus":        len(bureaus),
		"dispute_items":  len(report.DisputeItems),
		"differentials":  len(report.Differentials),
		"mismatches":     len(report.Mismatches()),
		"account_groups": len(report.AccountGroups),
	})

	return report, nil
}

func (e *Engine) processBureau(doc model.ReportDocument, b model.Bureau) bureauOutput {
	flat := fieldpath.Flatten(doc, e.cfg.Limits)
	items := e.deps.Extractor.Extract(doc, flat.Paths, b)

	fields := common.Fields{
		"bureau":        string(b),
		"paths":         len(flat.Paths),
		"dispute_items": len(items),
	}
	if flat.Truncated {
		fields["truncated"] = true
	}
	common.LogInfo("Processed bureau report", fields)

	return bureauOutput{
		items: items,
		result: BureauResult{
			Bureau:    b,
			Paths:     flat.Paths,
			ItemCount: len(items),
			Truncated: flat.Truncated,
		},
	}
}

// progress serializes calls into the configured callback.
func (e *Engine) progress(total int) func(model.Bureau) {
	if e.cfg.Progress == nil {
		return func(model.Bureau) {}
	}
	var mu sync.Mutex
	done := 0
	return func(b model.Bureau) {
		mu.Lock()
		defer mu.Unlock()
		done++
		e.cfg.Progress(b.DisplayName(), done, total)
	}
}
