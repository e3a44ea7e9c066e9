package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/race-lens/internal/analysis"
	"github.com/yourusername/race-lens/internal/config"
	"github.com/yourusername/race-lens/internal/logger"
	"github.com/yourusername/race-lens/internal/models"
	"github.com/yourusername/race-lens/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile  string
	date        string
	raceNumber  string
	inputFile   string
	outputFile  string
	minPriority int
	appLog      *logrus.Logger
	cfg         *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&date, "date", "", "Race date (YYYY-MM-DD), resolved against the data directory")
	rootCmd.Flags().StringVar(&raceNumber, "race", "", "Race number, resolved against the data directory")
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Analyze a single race data JSON file instead of the data directory")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the filtered export JSON to this file (default: stdout report)")
	rootCmd.Flags().IntVarP(&minPriority, "min-priority", "p", -1, "Only report alerts at or above this priority (default: config threshold)")

	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "race-lens-analyze",
	Short: "Analyze a race odds snapshot",
	Long:  `Runs the full detector battery over one race snapshot and reports the ranked alerts and market highlights.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("race-lens-analyze %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runAnalysis() error {
	threshold := minPriority
	if threshold < 0 {
		threshold = cfg.Analysis.PriorityThreshold
	}

	analyzer := analysis.NewAnalyzerWithTakeout(appLog, cfg.Analysis.Takeout)

	var (
		data *models.RaceData
		err  error
	)
	switch {
	case inputFile != "":
		data, err = loadSnapshotFile(inputFile)
	case date != "" && raceNumber != "":
		loader := service.NewRaceDataLoader(cfg.Data.RaceDataDir, appLog)
		data, err = loader.Load(date, raceNumber)
	default:
		return fmt.Errorf("either --input or both --date and --race are required")
	}
	if err != nil {
		return err
	}

	result, err := analyzer.AnalyzeRace(data)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if outputFile != "" {
		export := models.NewAnalysisExport(data.RaceInfo, data.HorseInfo, result.Alerts, threshold, result.AnalyzedAt)
		return writeExport(export, outputFile)
	}

	printReport(result, threshold)
	return nil
}

func loadSnapshotFile(path string) (*models.RaceData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}
	data := &models.RaceData{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("parsing snapshot file: %w", err)
	}
	return data, nil
}

func writeExport(export models.AnalysisExport, path string) error {
	out, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	appLog.WithFields(logrus.Fields{
		"file":     path,
		"findings": len(export.Findings),
	}).Info("Export written")
	return nil
}

func printReport(result *models.RaceAnalysis, threshold int) {
	fmt.Printf("Race %s #%s (run %s)\n", result.RaceDate, result.RaceNumber, result.RunID)
	fmt.Printf("Alerts: %d total, showing priority >= %d\n\n", len(result.Alerts), threshold)

	for _, alert := range result.Alerts {
		if alert.Priority < threshold {
			continue
		}
		fmt.Printf("  [%3d] %-9s %-7s horse %-5s %s\n",
			alert.Priority, alert.Purpose, alert.Target, alert.HorseNumber, alert.Message)
	}

	fmt.Printf("\nHighlights:\n")
	fmt.Printf("  Win:            %v\n", result.Highlights.Win)
	fmt.Printf("  Place:          %v\n", result.Highlights.Place)
	fmt.Printf("  Quinella:       %v\n", result.Highlights.Quinella)
	fmt.Printf("  Place Quinella: %v\n", result.Highlights.PlaceQuinella)
}
