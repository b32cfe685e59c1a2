package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/bureau-dispute-flow/internal/analysis"
	"github.com/Veraticus/bureau-dispute-flow/internal/cli"
	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/config"
	"github.com/Veraticus/bureau-dispute-flow/internal/dispute"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
	"github.com/Veraticus/bureau-dispute-flow/internal/parser"
	"github.com/Veraticus/bureau-dispute-flow/internal/storage"
	"github.com/spf13/cobra"
)

const defaultReportID = "default"

// currentConfig returns the resolved configuration, loading defaults when the
// root pre-run hook did not run.
func currentConfig() *config.Config {
	if appConfig == nil {
		cfg, err := config.Load()
		if err != nil {
			slog.Warn("Falling back to default configuration", "error", err)
			cfg = &config.Config{Output: config.OutputConfig{Format: config.OutputTable}}
		}
		appConfig = cfg
	}
	return appConfig
}

// initStorage opens and migrates the database named by database.path.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, func(), error) {
	dbPath := currentConfig().Database.Path

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}
	return store, cleanup, nil
}

func newEngine() (*analysis.Engine, error) {
	return analysis.NewEngine(
		analysis.Deps{Extractor: dispute.NewExtractor(nil)},
		analysis.Config{Limits: currentConfig().Limits},
	)
}

// render prints v as JSON when requested, otherwise through table.
func render(cmd *cobra.Command, v any, table func(io.Writer) error) error {
	if currentConfig().Output.Format == config.OutputJSON {
		return cli.WriteJSON(cmd.OutOrStdout(), v)
	}
	return table(cmd.OutOrStdout())
}

func writeLine(w io.Writer, s string) {
	if _, err := fmt.Fprintln(w, s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().String("transunion", "", "TransUnion report file")
	cmd.Flags().String("experian", "", "Experian report file")
	cmd.Flags().String("equifax", "", "Equifax report file")
	cmd.Flags().String("combined", "", "single file holding all bureaus keyed by bureau name")
}

func addReportIDFlag(cmd *cobra.Command) {
	cmd.Flags().String("report", defaultReportID, "report identifier that selections and letter items are filed under")
}

func reportID(cmd *cobra.Command) string {
	id, _ := cmd.Flags().GetString("report")
	if id == "" {
		return defaultReportID
	}
	return id
}

// loadReportSet parses the files named by the report flags.
func loadReportSet(cmd *cobra.Command) (model.ReportSet, error) {
	if combined, _ := cmd.Flags().GetString("combined"); combined != "" {
		doc, err := parser.ParseFile(combined)
		if err != nil {
			return nil, common.NewUserError("could not read combined report", err)
		}
		set, err := parser.SplitBureaus(doc)
		if err != nil {
			return nil, common.NewUserError("combined report has no bureau sections", err)
		}
		return set, nil
	}

	files := make(map[model.Bureau]string)
	for _, b := range model.AllBureaus {
		if path, _ := cmd.Flags().GetString(string(b)); path != "" {
			files[b] = path
		}
	}
	if len(files) == 0 {
		return nil, common.NewUserError("pass --transunion, --experian, --equifax or --combined", common.ErrNoReports)
	}

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(files), "Loading reports")
	set := model.ReportSet{}
	for _, b := range model.AllBureaus {
		path, ok := files[b]
		if !ok {
			continue
		}
		doc, err := parser.ParseFile(path)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("could not read %s report", b.DisplayName()), err)
		}
		set[b] = doc
		cli.Advance(bar, b.DisplayName())
	}
	return set, nil
}

// loadSingle parses one report file.
func loadSingle(path string) (model.ReportDocument, error) {
	doc, err := parser.ParseFile(path)
	if err != nil {
		if errors.Is(err, common.ErrUnsupportedFormat) {
			return nil, common.NewUserError("report must be .json, .yaml, .xml or .html", err)
		}
		return nil, common.NewUserError("could not read report", err)
	}
	return doc, nil
}

func runAnalysis(cmd *cobra.Command) (*analysis.Report, error) {
	set, err := loadReportSet(cmd)
	if err != nil {
		return nil, err
	}
	engine, err := newEngine()
	if err != nil {
		return nil, err
	}
	return engine.Run(cmd.Context(), set)
}
