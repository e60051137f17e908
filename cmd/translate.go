package cmd

import (
	"fmt"

	"github.com/lehigh-university-libraries/wayfinder/internal/shelf"
	"github.com/lehigh-university-libraries/wayfinder/internal/translate"
	"github.com/spf13/cobra"
)

func newTranslateCmd() *cobra.Command {
	var rangesPath string
	var providerName string
	var model string
	var language string

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Fill in missing localized shelf descriptions",
		Long: `Translates the description of every shelf range that has no localized
description yet and writes the table back in place. Existing localized
descriptions are never overwritten.`,
		Example: `  wayfinder translate --ranges config/ranges.yaml --lang Hebrew
  wayfinder translate --provider ollama --model llama3.2 --lang Hebrew`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := shelf.LoadTable(rangesPath)
			if err != nil {
				return err
			}

			service, err := translate.NewService(providerName, model, language)
			if err != nil {
				return err
			}

			filled, err := service.FillMissing(cmd.Context(), table)
			if err != nil {
				return err
			}
			if filled == 0 {
				fmt.Println("nothing to translate")
				return nil
			}

			if err := shelf.SaveTable(rangesPath, table); err != nil {
				return err
			}
			fmt.Printf("translated %d descriptions\n", filled)
			return nil
		},
	}

	cmd.Flags().StringVarP(&rangesPath, "ranges", "r", "config/ranges.yaml", "Path to the shelf range table")
	cmd.Flags().StringVar(&providerName, "provider", "gemini", "Translation provider (gemini or ollama)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (provider default when empty)")
	cmd.Flags().StringVar(&language, "lang", "Hebrew", "Target language")

	return cmd
}
