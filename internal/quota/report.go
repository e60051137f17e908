package quota

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ReportEntry is one scan result in the YAML report.
type ReportEntry struct {
	Timestamp   string `yaml:"timestamp"`
	Message     string `yaml:"message"`
	Zone        string `yaml:"zone"`
	WaitSeconds int64  `yaml:"waitseconds"`
	ResumeAt    string `yaml:"resumeat"`
}

// Report is the full scan report written by `wayfinder quota scan`.
type Report struct {
	LogPath     string        `yaml:"logpath"`
	DefaultZone string        `yaml:"defaultzone"`
	GeneratedAt string        `yaml:"generatedat"`
	Results     []ReportEntry `yaml:"results"`
}

// SaveReport writes scan results to a YAML file.
func SaveReport(path, logPath, defaultZone string, results []ScanResult) error {
	report := Report{
		LogPath:     logPath,
		DefaultZone: defaultZone,
		GeneratedAt: time.Now().Format(time.RFC3339),
	}

	for _, r := range results {
		report.Results = append(report.Results, ReportEntry{
			Timestamp:   r.Timestamp.Format(time.RFC3339),
			Message:     r.Message,
			Zone:        r.Zone,
			WaitSeconds: r.WaitSeconds,
			ResumeAt:    r.ResumeAt.Format(time.RFC3339),
		})
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return nil
}
