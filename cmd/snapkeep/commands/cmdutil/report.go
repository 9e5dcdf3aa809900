package cmdutil

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/thoreinstein/snapkeep/internal/engine"
	"github.com/thoreinstein/snapkeep/internal/errors"
)

// Palette colors command output. Colors are disabled when the output is
// not a terminal.
var (
	Green  = color.New(color.FgGreen).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Bold   = color.New(color.Bold).SprintFunc()
	Gray   = color.New(color.FgHiBlack).SprintFunc()
)

func outcome(o engine.Outcome) string {
	switch o {
	case engine.OutcomeOK:
		return Green(string(o))
	case engine.OutcomeSkipped:
		return Yellow(string(o))
	default:
		return Red(string(o))
	}
}

// PrintReport renders a bulk operation report as a table followed by a
// summary line. It returns an error when any item failed.
func PrintReport(w io.Writer, r *engine.Report) error {
	if len(r.Results) == 0 {
		fmt.Fprintf(w, "No items selected for %s (%s).\n", r.Operation, r.Scope)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", Bold("ITEM"), Bold("STATUS"), Bold("SNAPSHOT"), Bold("DETAIL"))
	for _, res := range r.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", res.Item, outcome(res.Outcome), orDash(res.SnapshotID), detail(res))
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "writing report")
	}

	fmt.Fprintf(w, "\n%s %s: %d ok, %d skipped, %d failed\n",
		r.Operation, r.Scope, r.Succeeded(), r.Skipped(), r.Failed())
	if r.Cancelled {
		fmt.Fprintln(w, Yellow("cancelled before all items were processed"))
	}

	if r.Failed() > 0 {
		return errors.NewSystemError(r.Err(), "Re-run with -v for per-item logs")
	}
	return nil
}

func detail(res engine.ItemResult) string {
	var parts []string
	if res.Err != nil {
		parts = append(parts, fmt.Sprintf("%s: %v", res.Stage, res.Err))
	} else if res.Destination != "" {
		parts = append(parts, res.Destination)
	}
	if len(res.Pruned) > 0 {
		parts = append(parts, Gray(fmt.Sprintf("pruned %d", len(res.Pruned))))
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding output")
}
