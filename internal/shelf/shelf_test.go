package shelf

import (
	"os"
	"path/filepath"
	"testing"
)

func testTable() *Table {
	return &Table{
		Policy: MatchContains,
		Ranges: []Range{
			{Library: "Main Library", Collection: "Stacks", CallNumberLow: "QA1", CallNumberHigh: "QA76", SVGCode: "m2-east-01", Floor: "2"},
			{Library: "Main Library", Collection: "Stacks", CallNumberLow: "QA76", CallNumberHigh: "QA99", SVGCode: "m2-east-02", Floor: "2"},
			{Library: "Science Library", CallNumberLow: "QA1", CallNumberHigh: "QZ999", SVGCode: "s1-north-04", Floor: "1"},
		},
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		wantSVGs []string
	}{
		{
			name:     "single match",
			ctx:      Context{CallNumber: "QA50", Library: "Main Library", Collection: "Stacks"},
			wantSVGs: []string{"m2-east-01"},
		},
		{
			name:     "boundary call number hits both overlapping ranges in order",
			ctx:      Context{CallNumber: "QA76", Library: "Main Library", Collection: "Stacks"},
			wantSVGs: []string{"m2-east-01", "m2-east-02"},
		},
		{
			name:     "empty collection matcher accepts any collection",
			ctx:      Context{CallNumber: "QB54", Library: "Science Library", Collection: "Oversize"},
			wantSVGs: []string{"s1-north-04"},
		},
		{
			name:     "decorated library name still matches under contains",
			ctx:      Context{CallNumber: "QA50", Library: "Main Library - 2nd Floor", Collection: "Stacks"},
			wantSVGs: []string{"m2-east-01"},
		},
		{
			name:     "english translation of library name matches",
			ctx:      Context{CallNumber: "QA50", Library: "הספרייה המרכזית", LibraryEnglish: "Main Library", Collection: "Stacks"},
			wantSVGs: []string{"m2-east-01"},
		},
		{
			name:     "call number outside all ranges",
			ctx:      Context{CallNumber: "Z665", Library: "Main Library", Collection: "Stacks"},
			wantSVGs: nil,
		},
		{
			name:     "wrong library",
			ctx:      Context{CallNumber: "QA50", Library: "Law Library", Collection: "Stacks"},
			wantSVGs: nil,
		},
		{
			name:     "empty call number short-circuits",
			ctx:      Context{CallNumber: "", Library: "Main Library", Collection: "Stacks"},
			wantSVGs: nil,
		},
	}

	table := testTable()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := table.Match(tt.ctx)

			if len(matches) != len(tt.wantSVGs) {
				t.Fatalf("Match returned %d ranges, want %d", len(matches), len(tt.wantSVGs))
			}
			for i, want := range tt.wantSVGs {
				if matches[i].SVGCode != want {
					t.Errorf("match %d: svg code %q, want %q", i, matches[i].SVGCode, want)
				}
			}
		})
	}
}

func TestMatchExactPolicy(t *testing.T) {
	table := testTable()
	table.Policy = MatchExact

	ctx := Context{CallNumber: "QA50", Library: "Main Library - 2nd Floor", Collection: "Stacks"}
	if matches := table.Match(ctx); matches != nil {
		t.Errorf("exact policy matched decorated library name, got %d ranges", len(matches))
	}

	ctx.Library = "main library"
	matches := table.Match(ctx)
	if len(matches) != 1 {
		t.Fatalf("exact policy is case-insensitive, got %d ranges, want 1", len(matches))
	}
}

func TestLoadTable(t *testing.T) {
	table, err := LoadTable(filepath.Join("testdata", "ranges.yaml"))
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}

	if table.Policy != MatchContains {
		t.Errorf("policy %q, want %q", table.Policy, MatchContains)
	}
	if len(table.Ranges) != 3 {
		t.Fatalf("loaded %d ranges, want 3", len(table.Ranges))
	}
	if table.Ranges[1].DescriptionLocalized == "" {
		t.Error("expected localized description on second range")
	}

	// The loaded table should behave like the hand-built one.
	matches := table.Match(Context{CallNumber: "QA76", Library: "Main Library", Collection: "General Stacks"})
	if len(matches) != 2 {
		t.Errorf("loaded table matched %d ranges for boundary call number, want 2", len(matches))
	}
}

func TestLoadTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown policy",
			content: "match: fuzzy\nranges:\n  - low: A1\n    high: A9\n    svg: x\n",
		},
		{
			name:    "missing bounds",
			content: "ranges:\n  - svg: x\n",
		},
		{
			name:    "missing svg code",
			content: "ranges:\n  - low: A1\n    high: A9\n",
		},
		{
			name:    "malformed yaml",
			content: "ranges: [\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ranges.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadTable(path); err == nil {
				t.Error("expected LoadTable to fail")
			}
		})
	}
}

func TestSaveTableRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranges.yaml")
	if err := SaveTable(path, testTable()); err != nil {
		t.Fatalf("SaveTable failed: %v", err)
	}

	loaded, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable after save failed: %v", err)
	}
	if len(loaded.Ranges) != 3 {
		t.Errorf("round trip lost ranges: got %d, want 3", len(loaded.Ranges))
	}
}
