package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/bureau-dispute-flow/internal/cli"
	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
	"github.com/spf13/cobra"
)

func letterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "letter",
		Short: "Queue dispute items for a dispute letter",
	}

	addCmd := &cobra.Command{
		Use:   "add <item-id>...",
		Short: "Queue dispute items by id (as printed by 'bureau analyze --format json')",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLetterAdd,
	}
	addReportFlags(addCmd)
	addReportIDFlag(addCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show queued items grouped by bureau",
		Args:  cobra.NoArgs,
		RunE:  runLetterList,
	}
	addReportIDFlag(listCmd)
	listCmd.Flags().String("bureau", "", "only list items for one bureau")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the letter queue",
		Args:  cobra.NoArgs,
		RunE:  runLetterClear,
	}
	addReportIDFlag(clearCmd)

	cmd.AddCommand(addCmd, listCmd, clearCmd)
	return cmd
}

func runLetterAdd(cmd *cobra.Command, args []string) error {
	report, err := runAnalysis(cmd)
	if err != nil {
		return err
	}

	byID := make(map[string]model.DisputeItem, len(report.DisputeItems))
	for _, item := range report.DisputeItems {
		byID[item.ID] = item
	}

	store, cleanup, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	id := reportID(cmd)
	for _, itemID := range args {
		item, ok := byID[itemID]
		if !ok {
			return common.NewUserError(fmt.Sprintf("no dispute item %s in these reports", itemID), common.ErrNotFound)
		}
		letterItem := &model.LetterItem{
			ReportID: id,
			ItemID:   item.ID,
			Bureau:   item.Bureau,
			Summary:  item.Summary(),
		}
		if err := store.SaveLetterItem(cmd.Context(), letterItem); err != nil {
			return fmt.Errorf("failed to queue %s: %w", itemID, err)
		}
		writeLine(cmd.OutOrStdout(), cli.FormatSuccess("Queued "+letterItem.Summary))
	}
	return nil
}

func runLetterList(cmd *cobra.Command, _ []string) error {
	var bureau model.Bureau
	if name, _ := cmd.Flags().GetString("bureau"); name != "" {
		b, err := model.ParseBureau(name)
		if err != nil {
			return common.NewUserError("unknown bureau", err)
		}
		bureau = b
	}

	store, cleanup, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	items, err := store.ListLetterItems(cmd.Context(), reportID(cmd), bureau)
	if err != nil {
		return fmt.Errorf("failed to list letter items: %w", err)
	}

	return render(cmd, items, func(w io.Writer) error {
		if len(items) == 0 {
			writeLine(w, cli.FormatInfo("The letter queue is empty"))
			return nil
		}
		var current model.Bureau
		for _, item := range items {
			if item.Bureau != current {
				current = item.Bureau
				writeLine(w, cli.FormatTitle(current.DisplayName()))
			}
			writeLine(w, "  • "+item.Summary)
		}
		return nil
	})
}

func runLetterClear(cmd *cobra.Command, _ []string) error {
	store, cleanup, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	removed, err := store.ClearLetterItems(cmd.Context(), reportID(cmd))
	if err != nil {
		return fmt.Errorf("failed to clear letter items: %w", err)
	}
	writeLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Removed %d queued items", removed)))
	return nil
}
