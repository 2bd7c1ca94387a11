package themes

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/wordhunt/internal/puzzle"
	"github.com/vovakirdan/wordhunt/internal/storage"
	"github.com/vovakirdan/wordhunt/internal/wordbank"
)

func TestParseYAML(t *testing.T) {
	themes, err := ParseYAML([]byte(`
language: en
themes:
  - name: " Birds "
    words: [owl, hawk]
  - name: Fish
    language: de
    words: [hai]
`))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if len(themes) != 2 {
		t.Fatalf("expected 2 themes, got %d", len(themes))
	}
	if themes[0].Name != "Birds" || themes[0].Language != "en" {
		t.Errorf("unexpected first theme %+v", themes[0])
	}
	if themes[1].Language != "de" {
		t.Errorf("expected language override, got %q", themes[1].Language)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid yaml", "themes: [unclosed"},
		{"no themes", "language: en\n"},
		{"unnamed theme", "themes:\n  - words: [a, b, c]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoaderLoadAll(t *testing.T) {
	themes, err := NewDirLoader("testdata").LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(themes) != 2 {
		t.Fatalf("expected 2 themes, got %d", len(themes))
	}

	// Sorted by name
	if themes[0].Name != "Planets" || themes[1].Name != "Tools" {
		t.Errorf("unexpected order: %s, %s", themes[0].Name, themes[1].Name)
	}
	// Tools is defined in two files.
	if len(themes[1].Words) != 5 {
		t.Errorf("expected merged Tools with 5 words, got %v", themes[1].Words)
	}
}

func TestLoaderRejectsBrokenFile(t *testing.T) {
	fsys := fstest.MapFS{
		"good.yaml": {Data: []byte("themes:\n  - name: A\n    words: [x, y, z]\n")},
		"bad.yaml":  {Data: []byte("themes: [")},
	}
	_, err := NewLoader(fsys).LoadAll()
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("expected error naming bad.yaml, got %v", err)
	}
}

func TestBuiltinPacksArePlayable(t *testing.T) {
	themes, err := Builtin().LoadAll()
	if err != nil {
		t.Fatalf("builtin packs failed to load: %v", err)
	}
	if len(themes) < 5 {
		t.Fatalf("expected at least 5 builtin themes, got %d", len(themes))
	}

	for _, th := range themes {
		eligible := wordbank.Eligible(th.Words, 15)
		if len(eligible) < wordbank.MinWords {
			t.Errorf("theme %s has only %d usable words", th.Name, len(eligible))
		}
		if len(eligible) != len(th.Words) {
			t.Errorf("theme %s has unusable or duplicate words", th.Name)
		}
	}
}

func TestBuiltinCyrillicAlphabet(t *testing.T) {
	themes, err := Builtin().LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	for _, th := range themes {
		if th.Language != "ru" {
			continue
		}
		words := wordbank.Eligible(th.Words, 0)
		if got := len(puzzle.AlphabetFor(words)); got != 33 {
			t.Errorf("theme %s: expected Cyrillic alphabet of 33 letters, got %d", th.Name, got)
		}
		return
	}
	t.Fatal("no Russian theme in builtin packs")
}

func TestImportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	first, err := Seed(ctx, store)
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if first.Themes == 0 || first.Words == 0 {
		t.Fatalf("nothing imported: %+v", first)
	}

	second, err := Seed(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	if second.Words != 0 {
		t.Errorf("re-seeding added %d words", second.Words)
	}

	listed, err := store.ListEligibleThemes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != first.Themes {
		t.Errorf("expected %d themes listed, got %d", first.Themes, len(listed))
	}
}
