package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cropsight-org/cropsight/config"
	"github.com/cropsight-org/cropsight/engine"
	"github.com/cropsight-org/cropsight/extract"
	"github.com/cropsight-org/cropsight/schema"
)

// ============================================================================
// CROPSIGHT CLI — run one analysis view against the extracts
// ============================================================================

const version = "0.3.0"

type filterFlags []string

func (f *filterFlags) String() string { return strings.Join(*f, "; ") }
func (f *filterFlags) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	configPath := flag.String("config", "", "Path to YAML config (default: built-in source filenames)")
	dataDir := flag.String("data-dir", "", "Data directory override (or CROPSIGHT_DATA_DIR)")
	viewName := flag.String("view", "", "View to run: overview, weekly, wages (required)")
	title := flag.String("title", "", "Override the view title")
	format := flag.String("format", "json", "Output format: json, pretty, csv")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	showVersion := flag.Bool("version", false, "Print version and exit")

	var filters filterFlags
	flag.Var(&filters, "filter", "Dimension filter, e.g. -filter plant=P1|P2 (repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Cropsight — forecast accuracy & wages variance reporting

Usage:
  cropsight --view overview --filter fiscal_year=2024 --format csv
  cropsight --view weekly --filter product_category=Blueberry --filter plant=P1
  cropsight --view wages --data-dir ./data --format pretty

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  CROPSIGHT_DATA_DIR    Data directory (flag takes precedence); .env is honored

Views:
  overview   Weekly forecast accuracy (actuals vs roster, joined per bucket)
  weekly     Week-out horizon analysis (requires a product_category filter)
  wages      Hourly cost variance against the EA benchmark rate
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("cropsight %s\n", version)
		os.Exit(0)
	}
	if *viewName == "" {
		fmt.Fprintln(os.Stderr, "Error: --view is required")
		flag.Usage()
		os.Exit(1)
	}

	// ── Config ────────────────────────────────────────────────────────────
	_ = godotenv.Load() // optional .env; absence is fine

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fatalf("%v", err)
		}
		cfg = loaded
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	} else if env := os.Getenv("CROPSIGHT_DATA_DIR"); env != "" {
		cfg.DataDir = env
	}

	userFilters, err := parseFilters(filters)
	if err != nil {
		fatalf("%v", err)
	}

	// ── Run view ──────────────────────────────────────────────────────────
	store := extract.NewStore()
	opts := []engine.Option{}
	if *title != "" {
		opts = append(opts, engine.WithTitle(*title))
	}

	var result *engine.Result
	switch *viewName {
	case "overview":
		actuals, err := loadSource(store, cfg, config.SourceActuals, schema.Actuals)
		if err != nil {
			fatalf("%v", err)
		}
		forecast, err := loadSource(store, cfg, config.SourceForecastRoster, schema.ForecastRoster)
		if err != nil {
			fatalf("%v", err)
		}
		result, err = engine.RunAccuracyOverview(actuals, forecast, userFilters, opts...)
		if err != nil {
			fatalf("%v", err)
		}

	case "weekly":
		view, err := loadSource(store, cfg, config.SourceWeekOutSeason, schema.WeekOutSeason)
		if err != nil {
			fatalf("%v", err)
		}
		result, err = engine.RunWeeklyWeekOut(view, userFilters, opts...)
		if err != nil {
			fatalf("%v", err)
		}

	case "wages":
		view, err := loadSource(store, cfg, config.SourceWages, schema.Wages)
		if err != nil {
			fatalf("%v", err)
		}
		result, err = engine.RunWagesVariance(view, userFilters, opts...)
		if err != nil {
			fatalf("%v", err)
		}

	default:
		fatalf("unknown view %q (want overview, weekly, or wages)", *viewName)
	}

	// ── Render output ─────────────────────────────────────────────────────
	// The output file is opened only once the view has run, and closed
	// before any exit path so a render failure never leaves it half-flushed.
	var writer io.Writer = os.Stdout
	var out *os.File
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		out = f
		writer = f
	}

	var renderErr error
	switch *format {
	case "csv":
		renderErr = writeCSV(writer, result)
	default:
		renderErr = writeJSON(writer, result, *format)
	}
	if out != nil {
		if cerr := out.Close(); renderErr == nil {
			renderErr = cerr
		}
	}
	if renderErr != nil {
		fatalf("Failed to write output: %v", renderErr)
	}
	if *outFile != "" {
		log.Printf("cropsight: output written to %s", *outFile)
	}
}

// loadSource reads one extract through the store and normalizes it.
func loadSource(store *extract.Store, cfg *config.Config, name string, src schema.Source) (engine.RecordView, error) {
	path, err := cfg.Path(name)
	if err != nil {
		return nil, err
	}

	table, err := store.Load(name, func() (*schema.Table, error) {
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			return extract.ReadCSVFile(path)
		}
		return extract.ReadWorkbookSheet(path, cfg.Sheet(name))
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	records, err := schema.Normalize(table, src)
	if err != nil {
		return nil, err
	}
	return engine.NewSliceView(records), nil
}

// parseFilters turns repeated "dim=v1|v2" flags into an engine filter set.
func parseFilters(raw []string) (engine.Filters, error) {
	filters := engine.Filters{}
	for _, f := range raw {
		dim, vals, ok := strings.Cut(f, "=")
		if !ok || dim == "" {
			return nil, fmt.Errorf("bad filter %q (want dim=value|value)", f)
		}
		filters[dim] = engine.Of(strings.Split(vals, "|")...)
	}
	return filters, nil
}

// ============================================================================
// OUTPUT
// ============================================================================

func writeCSV(w io.Writer, result *engine.Result) error {
	cw := csv.NewWriter(w)

	if result == nil || result.Table == nil {
		if err := cw.Write([]string{"Result", "No data"}); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	}

	headers := make([]string, 0, len(result.Table.Columns))
	for _, c := range result.Table.Columns {
		headers = append(headers, c.Label)
	}
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range result.Table.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, v interface{}, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
