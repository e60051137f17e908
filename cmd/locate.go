package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/lehigh-university-libraries/wayfinder/internal/callnum"
	"github.com/lehigh-university-libraries/wayfinder/internal/shelf"
	"github.com/spf13/cobra"
)

func newLocateCmd() *cobra.Command {
	var rangesPath string
	var library string
	var collection string

	cmd := &cobra.Command{
		Use:   "locate CALLNUMBER",
		Short: "Look up the shelf location of a call number",
		Args:  cobra.ExactArgs(1),
		Example: `  wayfinder locate "QA76.73.G63 C49 2015" --library "Main Library"
  wayfinder locate PS3562 --library "Main Library" --collection Stacks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := shelf.LoadTable(rangesPath)
			if err != nil {
				return err
			}

			raw := args[0]
			ctx := shelf.Context{
				CallNumber:    callnum.StripCutter(callnum.Normalize(raw)),
				RawCallNumber: raw,
				Library:       library,
				Collection:    collection,
			}

			matches := table.Match(ctx)
			if len(matches) == 0 {
				color.Yellow("No shelf found for %s", raw)
				return nil
			}

			bold := color.New(color.Bold)
			for _, m := range matches {
				bold.Printf("%s", m.SVGCode)
				fmt.Printf("  %s to %s", m.CallNumberLow, m.CallNumberHigh)
				if m.Floor != "" {
					fmt.Printf("  floor %s", m.Floor)
				}
				if m.Description != "" {
					fmt.Printf("  %s", m.Description)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&rangesPath, "ranges", "r", "config/ranges.yaml", "Path to the shelf range table")
	cmd.Flags().StringVarP(&library, "library", "l", "", "Library name to match")
	cmd.Flags().StringVarP(&collection, "collection", "c", "", "Collection name to match")

	return cmd
}
