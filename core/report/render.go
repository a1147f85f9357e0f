package report

import (
	"fmt"
	"strconv"
	"strings"

	"id-reconciler/core/resolve"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// FormatPercentage renders a percentage with two decimals.
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// Render formats the frequency table. pretty selects a rounded terminal table,
// otherwise the output is tab-separated with a header line.
func Render(rep *Report, pretty bool) string {
	if rep == nil {
		return ""
	}
	if !pretty {
		return renderPlain(rep)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Namespace", "Count", "Percentage"})
	for _, c := range rep.Counts {
		tw.AppendRow(table.Row{c.Namespace, c.Count, FormatPercentage(c.Percentage)})
	}
	tw.AppendFooter(table.Row{rep.Total.Namespace, rep.Total.Count, FormatPercentage(rep.Total.Percentage)})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}

func renderPlain(rep *Report) string {
	var b strings.Builder
	b.WriteString("namespace\tcount\tpercentage\n")
	for _, c := range rep.Counts {
		fmt.Fprintf(&b, "%s\t%d\t%s\n", c.Namespace, c.Count, FormatPercentage(c.Percentage))
	}
	fmt.Fprintf(&b, "%s\t%d\t%s\n", rep.Total.Namespace, rep.Total.Count, FormatPercentage(rep.Total.Percentage))
	return b.String()
}

// RenderClassifications formats classifications one per line, in order.
func RenderClassifications(classifications []resolve.Classification, pretty bool) string {
	if !pretty {
		var b strings.Builder
		b.WriteString("protein_id\tnamespace\tcanonical_id\tsource\n")
		for _, c := range classifications {
			fmt.Fprintf(&b, "%s\t%s\t%s\t%s\n", c.Identifier, c.Namespace, c.CanonicalID, c.Source)
		}
		return b.String()
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Identifier", "Namespace", "Canonical ID", "Source"})
	for _, c := range classifications {
		source := string(c.Source)
		if c.Err != nil {
			source = text.FgRed.Sprint(source)
		}
		tw.AppendRow(table.Row{c.Identifier, c.Namespace, c.CanonicalID, source})
	}
	return tw.Render()
}
