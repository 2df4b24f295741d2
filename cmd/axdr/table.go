package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/wippyai/axdr/schema"
	"github.com/wippyai/axdr/sequence"
)

var spanHeaders = []string{"Start", "End", "Path", "Kind", "Value"}

// printSpans writes one row per decoded primitive field.
func printSpans(w io.Writer, spans []sequence.Span) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(spanHeaders)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, sp := range spans {
		table.Append([]string{
			strconv.Itoa(sp.Start),
			strconv.Itoa(sp.End),
			sp.Path,
			sp.Kind.String(),
			schema.FormatValue(sp.Value),
		})
	}

	table.Render()
}
