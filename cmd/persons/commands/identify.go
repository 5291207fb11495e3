package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SaschaSchweitzer/persons"
	"github.com/SaschaSchweitzer/persons/cmd/persons/internal"
	"github.com/SaschaSchweitzer/persons/exporter"
	"github.com/SaschaSchweitzer/persons/store"
	"github.com/SaschaSchweitzer/persons/tabular"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [input file]",
	Short: "Identify persons in a table of names",
	Long: "Identify unique persons in a table of name records. " +
		"Input may be a CSV file or a GEDCOM file; records sharing a person_id " +
		"in the output refer to the same individual.",
	Args: cobra.ExactArgs(1),
	RunE: runIdentify,
}

func init() {
	identifyCmd.Flags().StringP("output", "o", "", "Output file path")
	identifyCmd.Flags().StringP("format", "f", "csv", "Output format (csv/json/yaml)")
	identifyCmd.Flags().String("known", "", "CSV file with previously known unique persons")
	identifyCmd.Flags().Bool("interlaced", false, "Match interlaced (crossed) names")
	identifyCmd.Flags().Bool("no-subsets", false, "Disable subset matching")
	identifyCmd.Flags().Bool("middle-name-rule", false, "Require identical middle initials")
	identifyCmd.Flags().Bool("ignore-order", false, "Ignore the order of forenames")
	identifyCmd.Flags().Bool("no-absolute-position", false, "Do not require initials at the same position")
	identifyCmd.Flags().Bool("only-first", false, "Keep only the first forename component")
	identifyCmd.Flags().Bool("keep-particles", false, "Keep noble particles in surnames")
	identifyCmd.Flags().Bool("split-time-gap", false, "Split clusters at oversized year gaps")
	identifyCmd.Flags().Bool("report-time-gap", false, "Report maximum year gaps instead of splitting")
	identifyCmd.Flags().Int("max-time-gap", 0, "Maximum accepted year gap")
	identifyCmd.Flags().Int("max-graph-size", 0, "Cap for the graph simplification stage")
	identifyCmd.Flags().String("store", "", "Persist the run (sqlite/badger/postgres)")
	identifyCmd.Flags().String("store-path", "", "Path of the run store")
	identifyCmd.Flags().String("database-url", "", "PostgreSQL connection string for --store postgres")
}

// GetIdentifyCommand returns the identify command.
func GetIdentifyCommand() *cobra.Command {
	return identifyCmd
}

func runIdentify(cmd *cobra.Command, args []string) error {
	inputFile := args[0]

	config, err := internal.LoadConfig("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	internal.InitColor(config.Output.Color)

	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		internal.PrintError("✗ File not found: %s\n", inputFile)
		return fmt.Errorf("file not found: %s", inputFile)
	}

	opts := config.EngineOptions()
	applyFlags(cmd, opts)

	table, err := readInput(inputFile)
	if err != nil {
		internal.PrintError("✗ Failed to read input: %v\n", err)
		return err
	}

	var known *tabular.Table
	if knownFile, _ := cmd.Flags().GetString("known"); knownFile != "" {
		known, err = tabular.ReadCSV(knownFile)
		if err != nil {
			internal.PrintError("✗ Failed to read known persons: %v\n", err)
			return err
		}
	}

	opts.Status = func(message string) {
		internal.PrintInfo("ℹ %s\n", message)
	}
	var bar *internal.ProgressBar
	if config.Output.Progress && !internal.IsQuietMode() {
		opts.Progress = func(done, total int) {
			if bar == nil {
				bar = internal.NewProgressBar(int64(total), "Clustering...")
			}
			bar.Set(int64(done))
		}
	}

	engine := persons.New(opts)
	start := time.Now()
	result, err := engine.PersonsFromNames(cmd.Context(), table, known)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		internal.PrintError("✗ Identification failed: %v\n", err)
		return err
	}

	personCount := countPersons(result)
	internal.PrintSuccess("✓ Identified %d persons in %d records (%s)\n",
		personCount, len(result.Rows), time.Since(start).Round(time.Millisecond))

	outputFile, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	if outputFile != "" {
		exp, err := exporter.New(format)
		if err != nil {
			return err
		}
		if err := exp.ExportToFile(result, outputFile); err != nil {
			internal.PrintError("✗ Export failed: %v\n", err)
			return err
		}
		internal.PrintInfo("ℹ Result written to %s\n", outputFile)
	} else {
		content, err := exporter.NewCSVExporter().ExportToString(result)
		if err != nil {
			return err
		}
		fmt.Print(content)
	}

	if backend, _ := cmd.Flags().GetString("store"); backend != "" {
		if err := persistRun(cmd, config, backend, result); err != nil {
			internal.PrintError("✗ Failed to persist run: %v\n", err)
			return err
		}
	}
	return nil
}

func applyFlags(cmd *cobra.Command, opts *persons.Options) {
	if v, _ := cmd.Flags().GetBool("interlaced"); v {
		opts.MatchInterlaced = true
	}
	if v, _ := cmd.Flags().GetBool("no-subsets"); v {
		opts.MatchSubsets = false
	}
	if v, _ := cmd.Flags().GetBool("middle-name-rule"); v {
		opts.MiddleNameRule = true
	}
	if v, _ := cmd.Flags().GetBool("ignore-order"); v {
		opts.IgnoreOrderOfForenames = true
	}
	if v, _ := cmd.Flags().GetBool("no-absolute-position"); v {
		opts.AbsolutePositionMatters = false
	}
	if v, _ := cmd.Flags().GetBool("only-first"); v {
		opts.OnlyFirstForename = true
	}
	if v, _ := cmd.Flags().GetBool("keep-particles"); v {
		opts.RemoveParticlesSuffixes = false
	}
	if v, _ := cmd.Flags().GetBool("split-time-gap"); v {
		opts.SplitByTimeGap = true
		opts.TimeGapAction = persons.TimeGapActionSplit
	}
	if v, _ := cmd.Flags().GetBool("report-time-gap"); v {
		opts.SplitByTimeGap = true
		opts.TimeGapAction = persons.TimeGapActionReport
	}
	if v, _ := cmd.Flags().GetInt("max-time-gap"); v > 0 {
		opts.MaximumTimeGap = v
	}
	if v, _ := cmd.Flags().GetInt("max-graph-size"); v > 0 {
		opts.MaxGraphSize = v
	}
}

func readInput(path string) (*tabular.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ged", ".gedcom":
		return tabular.ReadGEDCOM(path)
	default:
		return tabular.ReadCSV(path)
	}
}

func countPersons(result *tabular.ResultTable) int {
	seen := make(map[string]struct{})
	for _, row := range result.Rows {
		seen[row[tabular.PersonIDColumn]] = struct{}{}
	}
	return len(seen)
}

func persistRun(cmd *cobra.Command, config *internal.Config, backend string, result *tabular.ResultTable) error {
	s, err := openStore(cmd, config, backend)
	if err != nil {
		return err
	}
	defer s.Close()

	run := store.NewRun(result, time.Now())
	if err := s.SaveRun(cmd.Context(), run); err != nil {
		return err
	}
	internal.PrintInfo("ℹ Run stored as %s\n", run.ID)
	return nil
}

func openStore(cmd *cobra.Command, config *internal.Config, backend string) (store.Store, error) {
	path, _ := cmd.Flags().GetString("store-path")
	if path == "" {
		path = config.Store.Path
	}
	switch backend {
	case "sqlite":
		return store.NewSQLiteStore(path + ".db")
	case "badger":
		return store.NewBadgerStore(path)
	case "postgres":
		databaseURL, _ := cmd.Flags().GetString("database-url")
		if databaseURL == "" {
			databaseURL = config.Store.DatabaseURL
		}
		return store.NewPostgresStore(databaseURL)
	}
	return nil, fmt.Errorf("unsupported store backend: %s", backend)
}
