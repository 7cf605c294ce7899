// Package commands implements the treeminer CLI command tree.
package commands

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sumatoshi-tech/treeminer/internal/config"
	"github.com/sumatoshi-tech/treeminer/internal/ingest"
	"github.com/sumatoshi-tech/treeminer/internal/observability"
	"github.com/sumatoshi-tech/treeminer/internal/report"
	"github.com/sumatoshi-tech/treeminer/pkg/mining"
	"github.com/sumatoshi-tech/treeminer/pkg/treedb"
)

// rootOptions holds the flag values bound to the root command, populated by
// cobra before RunE fires.
type rootOptions struct {
	configFile   string
	checked      bool
	dumpPatterns bool
	jsonLogs     bool
	logLevel     string
	metricsAddr  string
	noColor      bool
	reportFile   string
	reportFormat string
	verbose      bool
}

// NewRootCommand builds the treeminer root command: `treeminer <file>
// <percentage>` mines the file's tree database at the given support
// percentage and reports the result on stderr.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "treeminer <file> <percentage>",
		Short: "Mine frequent embedded ordered subtree patterns from a tree database",
		Args: func(c *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(c, args); err != nil {
				_ = c.Usage()

				return err
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "path to config file (default: .treeminer.yaml in CWD or $HOME)")
	cmd.Flags().BoolVar(&opts.checked, "checked", false, "enable stack-misuse and subnode-accounting assertions")
	cmd.Flags().BoolVar(&opts.dumpPatterns, "dump-patterns", false, "print each emitted pattern's serialization to stdout")
	cmd.Flags().BoolVar(&opts.jsonLogs, "json-logs", false, "emit logs as JSON instead of text")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus /metrics at this address (e.g. :9090)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colorized summary output")
	cmd.Flags().StringVar(&opts.reportFile, "report-file", "", "write a structured summary to this path")
	cmd.Flags().StringVar(&opts.reportFormat, "report-format", "", "structured summary format: json or yaml")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "also print a per-label seed-frequency table")

	return cmd
}

func run(filePath, percentArg string, opts *rootOptions) error {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return err
	}

	applyFlagOverrides(cfg, opts)

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := observability.NewLogger(observability.LogConfig{JSON: cfg.JSONLogs, Level: cfg.SlogLevel()})

	percent, err := strconv.ParseFloat(percentArg, 64)
	if err != nil {
		return fmt.Errorf("invalid percentage %q: %w", percentArg, err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening database file: %w", err)
	}
	defer f.Close()

	logger.Info("loading database", "file", filePath)

	db, err := ingest.LoadDatabase(f)
	if err != nil {
		return err
	}

	minSup := computeMinSup(db.Len(), percent, logger)

	var metrics *observability.Metrics

	if cfg.MetricsAddr != "" {
		metrics = observability.NewMetrics()

		shutdown, serveErr := metrics.Serve(cfg.MetricsAddr)
		if serveErr != nil {
			return serveErr
		}

		defer shutdown()

		logger.Info("metrics server listening", "addr", cfg.MetricsAddr)
	}

	logger.Info("mining started", "trees", db.Len(), "minSup", minSup)

	start := time.Now()

	miningOpts := mining.Options{Checked: cfg.Checked}
	if cfg.DumpPatterns {
		miningOpts.OnPattern = func(root *treedb.Node) {
			fmt.Fprintln(os.Stdout, formatVector(root.ToVector()))
		}
	}

	count, maxSize, err := mining.PrefixESpan(db, minSup, miningOpts)
	if err != nil {
		return fmt.Errorf("mining: %w", err)
	}

	elapsed := time.Since(start)

	if metrics != nil {
		metrics.Observe(count, maxSize, elapsed)
	}

	summary := report.Summary{
		DatabaseName:   filePath,
		TreeCount:      db.Len(),
		SupportPercent: percent,
		MinSup:         minSup,
		PatternCount:   count,
		MaxPatternSize: maxSize,
		ElapsedMillis:  elapsed.Milliseconds(),
	}

	color.NoColor = cfg.NoColor || color.NoColor
	report.Print(os.Stderr, summary, !cfg.NoColor)

	if opts.verbose {
		report.FrequencyTable(os.Stderr, seedFrequency(db))
	}

	if cfg.ReportFile != "" {
		if writeErr := report.WriteFile(cfg.ReportFile, cfg.ReportFormat, summary); writeErr != nil {
			return writeErr
		}
	}

	return nil
}

// applyFlagOverrides layers explicitly-set CLI flags on top of the loaded
// config, so a flag always wins over a config file or environment value.
func applyFlagOverrides(cfg *config.Config, opts *rootOptions) {
	if opts.checked {
		cfg.Checked = true
	}

	if opts.dumpPatterns {
		cfg.DumpPatterns = true
	}

	if opts.jsonLogs {
		cfg.JSONLogs = true
	}

	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	if opts.metricsAddr != "" {
		cfg.MetricsAddr = opts.metricsAddr
	}

	if opts.noColor {
		cfg.NoColor = true
	}

	if opts.reportFile != "" {
		cfg.ReportFile = opts.reportFile
	}

	if opts.reportFormat != "" {
		cfg.ReportFormat = opts.reportFormat
	}
}

// computeMinSup derives the absolute support threshold from a percentage of
// the database size, clamping to at least 1 (a zero threshold would make
// every possible extension trivially "frequent" forever) and logging when
// the clamp fires.
func computeMinSup(treeCount int, percent float64, logger interface {
	Warn(msg string, args ...any)
}) int {
	minSup := int(math.Floor(float64(treeCount) * percent / 100))
	if minSup < 1 {
		logger.Warn("support percentage rounds to zero trees, clamping to 1", "treeCount", treeCount, "percent", percent)

		minSup = 1
	}

	return minSup
}

// formatVector renders a pattern's vector as space-separated integers.
func formatVector(vec []int) string {
	var b strings.Builder

	for _, v := range vec {
		fmt.Fprintf(&b, "%d ", v)
	}

	return strings.TrimRight(b.String(), " ")
}

// seedFrequency rebuilds the per-label tree-occurrence counts the verbose
// table reports; it mirrors the index pkg/mining.PrefixESpan builds
// internally but is kept separate so report formatting never reaches into
// the mining engine's internals.
func seedFrequency(db *treedb.Database) map[int]int {
	freq := make(map[int]int)

	for _, tree := range db.Trees {
		for label := range tree.GetLabelMap() {
			freq[label]++
		}
	}

	return freq
}
