package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/accounts"
	"github.com/Veraticus/bureau-dispute-flow/internal/analysis"
	"github.com/Veraticus/bureau-dispute-flow/internal/cli"
	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/differential"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
	"github.com/spf13/cobra"
)

func diffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show fields the bureaus report differently",
		Long: `Compare the same logical field across bureau reports. Fields are
matched by their final key, so CREDIT_LIABILITY[*].@_AccountStatusType and
tradelines[*].accountStatusType line up even across different layouts.`,
		Args: cobra.NoArgs,
		RunE: runDiff,
	}
	addReportFlags(cmd)
	cmd.Flags().Bool("all", false, "include fields where the bureaus agree")
	return cmd
}

func runDiff(cmd *cobra.Command, _ []string) error {
	report, err := runAnalysis(cmd)
	if err != nil {
		return err
	}

	diffs := report.Differentials
	if all, _ := cmd.Flags().GetBool("all"); !all {
		diffs = differential.Mismatches(diffs)
	}

	return render(cmd, diffs, func(w io.Writer) error {
		return writeDiffTable(w, diffs)
	})
}

func writeDiffTable(w io.Writer, diffs []model.BureauDifferential) error {
	if len(diffs) == 0 {
		writeLine(w, cli.FormatSuccess("The bureaus agree on every shared field"))
		return nil
	}

	rows := make([][]string, 0, len(diffs))
	for _, d := range diffs {
		row := []string{d.CanonicalKey}
		for _, b := range model.AllBureaus {
			cell := "-"
			if v, ok := d.Value(b); ok {
				cell = cli.Truncate(model.FormatValue(v), 24)
			}
			row = append(row, cell)
		}
		marker := ""
		if d.Mismatch {
			marker = cli.WarningStyle.Render(cli.MismatchIcon)
		}
		rows = append(rows, append(row, marker))
	}
	return cli.WriteTable(w, []string{"Field", "TransUnion", "Experian", "Equifax", ""}, rows)
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Line up the same account across bureaus",
		Long: `Group tradelines from every bureau by creditor and the last four digits
of the account number, then rank the groups by how derogatory their status is.`,
		Args: cobra.NoArgs,
		RunE: runAccounts,
	}
	addReportFlags(cmd)
	cmd.Flags().String("type", "", "only show accounts of this type or subtype")
	cmd.Flags().String("status", string(accounts.FilterAll), "status filter (all, derogatory, clean)")
	cmd.Flags().Bool("ascending", false, "show the cleanest accounts first")
	return cmd
}

type accountRow struct {
	model.AccountGroup
	Score int `json:"score"`
}

func runAccounts(cmd *cobra.Command, _ []string) error {
	statusName, _ := cmd.Flags().GetString("status")
	status, err := accounts.ParseStatusFilter(statusName)
	if err != nil {
		return common.NewUserError("unknown --status value", err)
	}
	accountType, _ := cmd.Flags().GetString("type")
	ascending, _ := cmd.Flags().GetBool("ascending")

	report, err := runAnalysis(cmd)
	if err != nil {
		return err
	}

	groups := accounts.FilterByStatus(report.AccountGroups, status)
	groups = accounts.FilterByType(groups, accountType)
	groups = accounts.SortByScore(groups, !ascending)

	rows := make([]accountRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, accountRow{AccountGroup: g, Score: accounts.Score(g)})
	}

	return render(cmd, rows, func(w io.Writer) error {
		return writeAccountTable(w, rows)
	})
}

func writeAccountTable(w io.Writer, rows []accountRow) error {
	if len(rows) == 0 {
		writeLine(w, cli.FormatInfo("No accounts matched"))
		return nil
	}

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{
			cli.FormatScore(r.Score, accounts.DerogatoryThreshold),
			cli.Truncate(r.CreditorName(), 24),
			r.MatchKey,
			r.AccountType,
		}
		for _, b := range model.AllBureaus {
			cell := "-"
			if rec := r.Slot(b); rec != nil {
				cell = cli.Truncate(rec.Status, 18)
			}
			row = append(row, cell)
		}
		table = append(table, row)
	}
	return cli.WriteTable(w, []string{"Score", "Creditor", "Match", "Type", "TransUnion", "Experian", "Equifax"}, table)
}

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full pipeline over every bureau report",
		Args:  cobra.NoArgs,
		RunE:  runAnalyze,
	}
	addReportFlags(cmd)
	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	report, err := runAnalysis(cmd)
	if err != nil {
		return err
	}

	return render(cmd, report, func(w io.Writer) error {
		writeLine(w, cli.RenderBox("Summary", summarize(report)))
		if report.Truncated() {
			writeLine(w, cli.FormatWarning("Some reports were cut short; raise --max-keys to see every field"))
		}
		writeLine(w, "")
		if err := writeDisputeTable(w, report.DisputeItems); err != nil {
			return err
		}
		writeLine(w, "")
		return writeDiffTable(w, report.Mismatches())
	})
}

func summarize(report *analysis.Report) string {
	lines := make([]string, 0, len(report.Bureaus)+3)
	for _, b := range report.Bureaus {
		lines = append(lines, fmt.Sprintf("%-10s %5d fields  %3d dispute items", b.Bureau.DisplayName(), len(b.Paths), b.ItemCount))
	}
	derogatory := len(accounts.FilterByStatus(report.AccountGroups, accounts.FilterDerogatory))
	lines = append(lines,
		"",
		"Mismatched fields: "+strconv.Itoa(len(report.Mismatches())),
		fmt.Sprintf("Accounts: %d (%d derogatory)", len(report.AccountGroups), derogatory),
	)
	return strings.Join(lines, "\n")
}
