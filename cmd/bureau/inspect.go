package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/classification"
	"github.com/Veraticus/bureau-dispute-flow/internal/cli"
	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/fieldpath"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
	"github.com/spf13/cobra"
)

func flattenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flatten <report>",
		Short: "List every leaf path in a report",
		Long: `Walk a report and print each distinct path to a leaf value. Array
elements collapse into [*], so repeated tradelines show up once.`,
		Args: cobra.ExactArgs(1),
		RunE: runFlatten,
	}
}

func runFlatten(cmd *cobra.Command, args []string) error {
	doc, err := loadSingle(args[0])
	if err != nil {
		return err
	}

	result := fieldpath.Flatten(doc, currentConfig().Limits)
	if result.Truncated {
		writeLine(cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf("Stopped after %d paths; raise --max-keys to see the rest", len(result.Paths))))
	}

	return render(cmd, result, func(w io.Writer) error {
		for _, p := range result.Paths {
			writeLine(w, p)
		}
		return nil
	})
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <report> <path>",
		Short: "Print the value at a path",
		Long: `Resolve a dotted path such as CREDIT_LIABILITY[2]._CREDITOR.@_Name.
A [*] step reads the first array element.`,
		Args: cobra.ExactArgs(2),
		RunE: runGet,
	}
}

type getResult struct {
	Value any    `json:"value"`
	Path  string `json:"path"`
	Found bool   `json:"found"`
}

func runGet(cmd *cobra.Command, args []string) error {
	doc, err := loadSingle(args[0])
	if err != nil {
		return err
	}

	value, found := fieldpath.Lookup(doc, args[1])
	if !found {
		return common.NewUserError(fmt.Sprintf("no value at %s", args[1]), common.ErrNotFound)
	}

	return render(cmd, getResult{Path: args[1], Value: value, Found: found}, func(w io.Writer) error {
		if fieldpath.IsPrimitive(value) {
			writeLine(w, model.FormatValue(value))
			return nil
		}
		return cli.WriteJSON(w, value)
	})
}

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <path> <value>",
		Short: "Show how a single field would be classified",
		Args:  cobra.ExactArgs(2),
		RunE:  runClassify,
	}
}

func runClassify(cmd *cobra.Command, args []string) error {
	verdict := classification.Classify(args[0], args[1])

	return render(cmd, verdict, func(w io.Writer) error {
		status := cli.FormatSuccess("not negative")
		if verdict.IsNegative {
			status = cli.FormatWarning("negative")
		}
		rows := [][]string{
			{"Negative", status},
			{"Category", string(verdict.Category)},
			{"Severity", cli.FormatSeverity(verdict.Severity)},
			{"Reason", verdict.Reason},
		}
		return cli.WriteTable(w, []string{"Field", strings.TrimSpace(args[0])}, rows)
	})
}
