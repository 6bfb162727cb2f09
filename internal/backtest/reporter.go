package backtest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteReport persists the backtest report as JSON.
func WriteReport(report *Report, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}

// GenerateConsoleReport formats the headline metrics for terminal output.
func GenerateConsoleReport(report *Report) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Games: %d (scored %d, skipped %d, pushes %d)\n",
		report.TotalGames, report.Scored, report.Skipped, report.Pushes))
	builder.WriteString(fmt.Sprintf("Accuracy: %.3f\n", report.Accuracy))
	builder.WriteString(fmt.Sprintf("Avg Log Loss: %.4f\n", report.AvgLogLoss))
	builder.WriteString(fmt.Sprintf("Avg CRPS: %.4f\n", report.AvgCRPS))
	builder.WriteString(fmt.Sprintf("PIT uniformity deviation: %.4f\n", report.PITUniformityDeviation()))

	builder.WriteString("PIT histogram:\n")
	for i, count := range report.PITHistogram {
		builder.WriteString(fmt.Sprintf("  [%.1f-%.1f): %d\n",
			float64(i)/PITBins, float64(i+1)/PITBins, count))
	}

	if len(report.ConfidenceBrackets) > 0 {
		builder.WriteString("Confidence brackets:\n")
		for _, key := range []string{"<0.55", "0.55-0.65", "0.65-0.75", ">0.75"} {
			if b, ok := report.ConfidenceBrackets[key]; ok {
				builder.WriteString(fmt.Sprintf("  %s: %d games, %.3f accuracy\n", key, b.Games, b.Accuracy))
			}
		}
	}
	if len(report.EdgeBuckets) > 0 {
		builder.WriteString("Edge buckets:\n")
		for _, key := range []string{"0-2%", "2-5%", "5-10%", ">10%"} {
			if b, ok := report.EdgeBuckets[key]; ok {
				builder.WriteString(fmt.Sprintf("  %s: %d games, %.3f accuracy, %.3f ROI\n", key, b.Games, b.Accuracy, b.ROI))
			}
		}
	}
	return builder.String()
}
