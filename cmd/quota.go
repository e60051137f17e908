package cmd

import (
	"fmt"
	"time"

	"github.com/lehigh-university-libraries/wayfinder/internal/quota"
	"github.com/spf13/cobra"
)

func newQuotaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Work with vendor API quota resets",
	}

	cmd.AddCommand(newQuotaWaitCmd())
	cmd.AddCommand(newQuotaScanCmd())

	return cmd
}

func newQuotaWaitCmd() *cobra.Command {
	var message string
	var at string
	var defaultZone string

	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Compute how many seconds until a quota reset",
		Long: `Parses a quota reset message ("resets 9pm (Asia/Jerusalem)") and prints
the number of seconds until that wall-clock time next occurs in the zone.
Pipe the result to sleep, or into whatever resumes the paused job.`,
		Example: `  wayfinder quota wait --message "Daily quota exceeded, resets 9pm (Asia/Jerusalem)"
  wayfinder quota wait --message "resets 15:00" --zone America/New_York
  wayfinder quota wait --message "resets 15:00" --at 2024-03-09T14:00:00Z`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, ok := quota.ParseResetMessage(message)
			if !ok {
				// Unparsable text means "cannot act", not a failure.
				fmt.Println("no reset time found")
				return nil
			}

			instant := time.Now()
			if at != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("%w %q: %v", quota.ErrBadTimestamp, at, err)
				}
				instant = parsed
			}

			zone := spec.Zone
			if zone == "" {
				zone = defaultZone
			}
			loc, err := quota.ResolveZone(zone)
			if err != nil {
				return err
			}

			secs, err := quota.SecondsUntilReset(instant, spec.Hour, spec.Minute, loc)
			if err != nil {
				return err
			}

			fmt.Println(secs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Quota message to parse")
	cmd.Flags().StringVar(&at, "at", "", "Instant to measure from, RFC 3339 (default: now)")
	cmd.Flags().StringVarP(&defaultZone, "zone", "z", "UTC", "Zone to assume when the message names none")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func newQuotaScanCmd() *cobra.Command {
	var logPath string
	var outPath string
	var defaultZone string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a request-log export for quota resets",
		Long: `Reads a vendor request-log export (JSONL or Parquet), finds every
record carrying a quota reset time, and writes a YAML report of the
computed wait durations.`,
		Example: `  wayfinder quota scan --log requests.jsonl --out report.yaml
  wayfinder quota scan --log export.parquet --zone Asia/Jerusalem`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := quota.NewLoader(logPath).Load()
			if err != nil {
				return err
			}

			results, err := quota.Scan(records, defaultZone)
			if err != nil {
				return err
			}

			fmt.Printf("%d of %d records carried a reset time\n", len(results), len(records))
			for _, r := range results {
				fmt.Printf("  %s  wait %ds  resume %s\n",
					r.Timestamp.Format(time.RFC3339), r.WaitSeconds, r.ResumeAt.Format(time.RFC3339))
			}

			if outPath != "" {
				if err := quota.SaveReport(outPath, logPath, defaultZone, results); err != nil {
					return err
				}
				fmt.Printf("report written to %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logPath, "log", "", "Request-log export (.jsonl or .parquet)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write a YAML report to this path")
	cmd.Flags().StringVarP(&defaultZone, "zone", "z", "UTC", "Zone to assume when a message names none")
	_ = cmd.MarkFlagRequired("log")

	return cmd
}
