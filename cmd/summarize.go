package cmd

import (
	"fmt"
	"os"

	"id-reconciler/core/report"
	"id-reconciler/core/table"

	"github.com/spf13/cobra"
)

var summarizeColumn string

// summarizeCmd prints the namespace frequency table of an existing table.
var summarizeCmd = &cobra.Command{
	Use:   "summarize <table>",
	Short: "Print the namespace frequencies of a classification or annotated table",
	Long: `Counts the values of a column (namespace by default) and prints them most common
first, with percentages and a TOTAL line.

Examples:
  id-reconciler summarize output/annotated.tsv
  id-reconciler summarize output/classification.tsv --column namespace`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeColumn, "column", table.ColumnNamespace, "Column to count")
	RootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return &table.InputError{Path: path, Err: err}
	}
	defer f.Close()

	counts, err := table.CountColumn(f, path, summarizeColumn)
	if err != nil {
		return err
	}

	pretty := prettyOutput()
	fmt.Fprint(cmd.OutOrStdout(), report.Render(report.Summarize(counts), pretty))
	if pretty {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
