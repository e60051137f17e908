package quota

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
)

// LogRecord is one vendor API request-log entry. The analytics console
// exports these as JSONL; bulk exports arrive as Parquet.
type LogRecord struct {
	Timestamp string `json:"timestamp" parquet:"timestamp"`
	Message   string `json:"message" parquet:"message"`
}

// Loader reads vendor request-log exports.
type Loader struct {
	logPath string
}

// NewLoader creates a loader for the given export file.
func NewLoader(logPath string) *Loader {
	return &Loader{logPath: logPath}
}

// Load reads all records from the export file (JSONL or Parquet).
func (l *Loader) Load() ([]LogRecord, error) {
	ext := strings.ToLower(filepath.Ext(l.logPath))

	switch ext {
	case ".parquet":
		return l.loadParquet()
	case ".jsonl", ".json":
		return l.loadJSONL()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func (l *Loader) loadJSONL() ([]LogRecord, error) {
	slog.Debug("Opening JSONL export", "path", l.logPath)

	file, err := os.Open(l.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open log export: %w", err)
	}
	defer file.Close()

	var records []LogRecord
	scanner := bufio.NewScanner(file)

	// Vendor log lines can carry large stack traces
	const maxCapacity = 1024 * 1024 // 1MB per line
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		var record LogRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading log export: %w", err)
	}

	slog.Debug("Finished reading JSONL export", "total_records", len(records))

	return records, nil
}

func (l *Loader) loadParquet() ([]LogRecord, error) {
	slog.Debug("Opening Parquet export", "path", l.logPath)

	file, err := os.Open(l.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet export: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[LogRecord](pf)
	defer reader.Close()

	var records []LogRecord
	rows := make([]LogRecord, 128) // Read in batches

	for {
		n, err := reader.Read(rows)
		if n > 0 {
			records = append(records, rows[:n]...)
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading Parquet export", "total_records", len(records))

	return records, nil
}

// ScanResult is the outcome for one record that carried a reset time.
type ScanResult struct {
	Timestamp   time.Time
	ResumeAt    time.Time
	Message     string
	Zone        string
	WaitSeconds int64
}

// Scan walks log records looking for quota reset messages and computes the
// wait for each. Records without a parsable reset time are skipped quietly;
// records with an invalid timestamp are skipped with an error log, since no
// wait can be computed from them. An unresolvable zone aborts the scan:
// that is a configuration problem, not a property of one record.
func Scan(records []LogRecord, defaultZone string) ([]ScanResult, error) {
	var results []ScanResult
	for i, rec := range records {
		spec, ok := ParseResetMessage(rec.Message)
		if !ok {
			continue
		}

		instant, err := time.Parse(time.RFC3339, rec.Timestamp)
		if err != nil {
			slog.Error("Skipping record with invalid timestamp", "record", i, "timestamp", rec.Timestamp, "err", fmt.Errorf("%w: %v", ErrBadTimestamp, err))
			continue
		}

		zone := spec.Zone
		if zone == "" {
			zone = defaultZone
		}
		loc, err := ResolveZone(zone)
		if err != nil {
			return nil, err
		}

		secs, err := SecondsUntilReset(instant, spec.Hour, spec.Minute, loc)
		if err != nil {
			return nil, err
		}

		results = append(results, ScanResult{
			Timestamp:   instant,
			ResumeAt:    instant.Add(time.Duration(secs) * time.Second),
			Message:     rec.Message,
			Zone:        zone,
			WaitSeconds: secs,
		})
	}
	return results, nil
}
