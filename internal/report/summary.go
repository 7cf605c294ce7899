// Package report renders a mining run's results: the stderr summary block,
// an optional verbose per-label frequency table, and an optional structured
// dump to a JSON or YAML file.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Summary is the outcome of one mining run, reported to the user and
// optionally serialized to disk.
type Summary struct {
	DatabaseName   string  `json:"databaseName" yaml:"databaseName"`
	TreeCount      int     `json:"treeCount" yaml:"treeCount"`
	SupportPercent float64 `json:"supportPercent" yaml:"supportPercent"`
	MinSup         int     `json:"minSup" yaml:"minSup"`
	PatternCount   int     `json:"patternCount" yaml:"patternCount"`
	MaxPatternSize int     `json:"maxPatternSize" yaml:"maxPatternSize"`
	ElapsedMillis  int64   `json:"elapsedMillis" yaml:"elapsedMillis"`
}

// Print writes seven labeled summary lines to w: database name, tree count,
// support percent, min support, pattern count, max pattern size and elapsed
// milliseconds. When colorize is true
// the labels and values are painted with fatih/color; otherwise output is
// plain text.
func Print(w io.Writer, s Summary, colorize bool) {
	label := fmt.Sprintf
	value := fmt.Sprintf

	if colorize {
		labelColor := color.New(color.FgCyan)
		valueColor := color.New(color.FgGreen)
		label = labelColor.Sprintf
		value = valueColor.Sprintf
	}

	fmt.Fprintf(w, "%s %s\n", label("DB name:"), value("%s", s.DatabaseName))
	fmt.Fprintf(w, "%s %s\n", label("Num of trees:"), value("%s", humanize.Comma(int64(s.TreeCount))))
	fmt.Fprintf(w, "%s %s\n", label("Support percent:"), value("%g%%", s.SupportPercent))
	fmt.Fprintf(w, "%s %s\n", label("Min support:"), value("%d", s.MinSup))
	fmt.Fprintf(w, "%s %s\n", label("Num of frequent patterns:"), value("%s", humanize.Comma(int64(s.PatternCount))))
	fmt.Fprintf(w, "%s %s\n", label("Maxsize of frequent patterns:"), value("%d", s.MaxPatternSize))
	fmt.Fprintf(w, "%s %s\n", label("Time usage:"), value("%dms", s.ElapsedMillis))
}

// FrequencyTable renders a sorted, per-label seed-frequency breakdown using
// go-pretty. Labels are sorted ascending so output is deterministic.
func FrequencyTable(w io.Writer, freq map[int]int) {
	labels := make([]int, 0, len(freq))
	for label := range freq {
		labels = append(labels, label)
	}

	sort.Ints(labels)

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Label", "Tree occurrences"})

	for _, label := range labels {
		tbl.AppendRow(table.Row{label, freq[label]})
	}

	tbl.Render()
}

// WriteFile serializes s as JSON or YAML to path, per format ("json" or
// "yaml").
func WriteFile(path, format string, s Summary) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "json":
		data, err = json.MarshalIndent(s, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(s)
	default:
		return fmt.Errorf("report: unknown format %q, want %q or %q", format, "json", "yaml")
	}

	if err != nil {
		return fmt.Errorf("report: marshaling summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: writing %s: %w", path, err)
	}

	return nil
}
