// Package translate fills in missing localized shelf descriptions using an
// LLM provider. The discovery UI shows DescriptionLocalized when the
// interface runs in the local language; librarians usually configure only
// the English description.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/wayfinder/internal/gemini"
	"github.com/lehigh-university-libraries/wayfinder/internal/ollama"
	"github.com/lehigh-university-libraries/wayfinder/internal/providers"
	"github.com/lehigh-university-libraries/wayfinder/internal/shelf"
)

type Service struct {
	provider providers.Provider
	model    string
	language string
}

// NewService builds a translation service for the named provider
// ("gemini" or "ollama") and target language.
func NewService(providerName, model, language string) (*Service, error) {
	var provider providers.Provider
	switch providerName {
	case "gemini":
		provider = gemini.New()
	case "ollama":
		provider = ollama.New()
	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}

	if model == "" {
		model = defaultModel(providerName)
	}

	return &Service{
		provider: provider,
		model:    model,
		language: language,
	}, nil
}

func defaultModel(providerName string) string {
	if providerName == "gemini" {
		return "gemini-1.5-flash"
	}
	return "llama3.2"
}

// FillMissing translates the Description of every range that has no
// DescriptionLocalized yet, writing results back into the table. It
// returns the number of ranges filled. A failed translation skips the
// range and keeps going; partially filled tables are still useful.
func (s *Service) FillMissing(ctx context.Context, table *shelf.Table) (int, error) {
	filled := 0
	for i := range table.Ranges {
		r := &table.Ranges[i]
		if r.Description == "" || r.DescriptionLocalized != "" {
			continue
		}

		translated, err := s.translateOne(ctx, r.Description)
		if err != nil {
			slog.Error("Failed to translate shelf description", "range", i, "description", r.Description, "err", err)
			continue
		}

		r.DescriptionLocalized = translated
		filled++
		slog.Debug("Translated shelf description", "range", i, "description", r.Description, "translated", translated)
	}

	if filled == 0 && len(table.Ranges) > 0 {
		slog.Info("No shelf descriptions needed translation")
	}
	return filled, nil
}

func (s *Service) translateOne(ctx context.Context, description string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following library shelf description to %s. Reply with the translation only, no explanation.\n\n%s",
		s.language, description)

	result, err := s.provider.GenerateText(ctx, providers.Config{
		Model:       s.model,
		Temperature: 0.2,
		Prompt:      prompt,
	})
	if err != nil {
		return "", err
	}

	result = strings.TrimSpace(result)
	if result == "" {
		return "", fmt.Errorf("provider returned an empty translation")
	}
	return result, nil
}
