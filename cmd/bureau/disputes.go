package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/Veraticus/bureau-dispute-flow/internal/cli"
	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/dispute"
	"github.com/Veraticus/bureau-dispute-flow/internal/fieldpath"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
	"github.com/spf13/cobra"
)

func disputesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disputes <report>",
		Short: "List the negative items in one bureau's report",
		Long: `Flatten a report, classify every field and print the ones worth
disputing with their category, severity and reason.`,
		Args: cobra.ExactArgs(1),
		RunE: runDisputes,
	}

	cmd.Flags().String("bureau", "", "bureau that produced the report (transunion, experian, equifax)")
	cmd.Flags().String("severity", "", "only show items at or above this severity (low, medium, high)")
	_ = cmd.MarkFlagRequired("bureau")

	return cmd
}

func runDisputes(cmd *cobra.Command, args []string) error {
	bureauName, _ := cmd.Flags().GetString("bureau")
	bureau, err := model.ParseBureau(bureauName)
	if err != nil {
		return common.NewUserError("unknown bureau", err)
	}

	var floor model.Severity
	if name, _ := cmd.Flags().GetString("severity"); name != "" {
		floor, err = model.ParseSeverity(name)
		if err != nil {
			return common.NewUserError("unknown severity (use low, medium or high)", err)
		}
	}

	doc, err := loadSingle(args[0])
	if err != nil {
		return err
	}

	paths := fieldpath.Flatten(doc, currentConfig().Limits).Paths
	items := filterSeverity(dispute.Extract(doc, paths, bureau), floor)

	return render(cmd, items, func(w io.Writer) error {
		return writeDisputeTable(w, items)
	})
}

func filterSeverity(items []model.DisputeItem, floor model.Severity) []model.DisputeItem {
	if floor == "" {
		return items
	}
	kept := make([]model.DisputeItem, 0, len(items))
	for _, item := range items {
		if item.Severity.Rank() >= floor.Rank() {
			kept = append(kept, item)
		}
	}
	return kept
}

func writeDisputeTable(w io.Writer, items []model.DisputeItem) error {
	if len(items) == 0 {
		writeLine(w, cli.FormatSuccess("No dispute items found"))
		return nil
	}

	sorted := make([]model.DisputeItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Rank() > sorted[j].Severity.Rank()
	})

	writeLine(w, cli.FormatTitle(fmt.Sprintf("%d dispute items", len(items))))
	rows := make([][]string, 0, len(sorted))
	for _, item := range sorted {
		rows = append(rows, []string{
			cli.FormatSeverity(item.Severity),
			string(item.Category),
			item.Bureau.DisplayName(),
			cli.Truncate(item.CreditorName, 24),
			item.FieldName,
			cli.Truncate(model.FormatValue(item.Value), 20),
			item.Reason,
		})
	}
	return cli.WriteTable(w, []string{"Severity", "Category", "Bureau", "Creditor", "Field", "Value", "Reason"}, rows)
}
