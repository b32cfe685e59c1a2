package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/bureau-dispute-flow/internal/cli"
	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
	"github.com/spf13/cobra"
)

func selectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select <field> <bureau>",
		Short: "Record which bureau is right about a field",
		Long: `Remember which bureau reports a mismatched field correctly. The field is
the canonical key shown by 'bureau diff'. Selecting again replaces the earlier choice.`,
		Args: cobra.ExactArgs(2),
		RunE: runSelect,
	}
	addReportIDFlag(cmd)
	cmd.Flags().String("notes", "", "free-form note stored with the selection")
	return cmd
}

func runSelect(cmd *cobra.Command, args []string) error {
	bureau, err := model.ParseBureau(args[1])
	if err != nil {
		return common.NewUserError("unknown bureau", err)
	}
	notes, _ := cmd.Flags().GetString("notes")

	store, cleanup, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	sel := &model.BureauSelection{
		ReportID:     reportID(cmd),
		CanonicalKey: args[0],
		Bureau:       bureau,
		Notes:        notes,
	}
	if err := store.SaveSelection(cmd.Context(), sel); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}

	slog.Debug("Saved bureau selection", "report", sel.ReportID, "field", sel.CanonicalKey, "bureau", sel.Bureau)
	writeLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s: using %s", sel.CanonicalKey, bureau.DisplayName())))
	return nil
}

func selectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selections",
		Short: "List recorded bureau selections",
		Args:  cobra.NoArgs,
		RunE:  runSelections,
	}
	addReportIDFlag(cmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <field>",
		Short: "Forget the selection for a field",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteSelection,
	}
	addReportIDFlag(deleteCmd)
	cmd.AddCommand(deleteCmd)

	return cmd
}

func runSelections(cmd *cobra.Command, _ []string) error {
	store, cleanup, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	selections, err := store.ListSelections(cmd.Context(), reportID(cmd))
	if err != nil {
		return fmt.Errorf("failed to list selections: %w", err)
	}

	return render(cmd, selections, func(w io.Writer) error {
		if len(selections) == 0 {
			writeLine(w, cli.FormatInfo("No selections recorded. Use 'bureau select <field> <bureau>' to add one."))
			return nil
		}
		rows := make([][]string, 0, len(selections))
		for _, s := range selections {
			rows = append(rows, []string{s.CanonicalKey, s.Bureau.DisplayName(), s.SelectedAt.Format("2006-01-02"), s.Notes})
		}
		return cli.WriteTable(w, []string{"Field", "Bureau", "Selected", "Notes"}, rows)
	})
}

func runDeleteSelection(cmd *cobra.Command, args []string) error {
	store, cleanup, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	if err := store.DeleteSelection(cmd.Context(), reportID(cmd), args[0]); err != nil {
		return common.NewUserError(fmt.Sprintf("no selection for %s", args[0]), err)
	}
	writeLine(cmd.OutOrStdout(), cli.FormatSuccess("Removed selection for "+args[0]))
	return nil
}
