// Package themes loads word-search theme packs from YAML files and ships
// a set of built-in packs.
package themes

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed packs/*.yaml
var builtin embed.FS

// Theme is a theme read from a pack file.
type Theme struct {
	Name     string
	Language string
	Words    []string
	Source   string // File the theme came from
}

// Loader reads theme packs from a file system.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// NewDirLoader creates a loader for a directory on disk.
func NewDirLoader(root string) *Loader {
	return NewLoader(os.DirFS(root))
}

// Builtin returns a loader for the packs compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtin, "packs")
	if err != nil {
		panic(err) // embedded path is fixed
	}
	return NewLoader(sub)
}

// LoadAll recursively loads every pack file. Themes are returned sorted by
// name; a name defined twice keeps the words of both definitions.
func (l *Loader) LoadAll() ([]Theme, error) {
	byName := make(map[string]*Theme)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		themes, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		for _, t := range themes {
			t := t // per-iteration copy; go.mod targets go 1.21 loop semantics
			if prev, ok := byName[t.Name]; ok {
				prev.Words = append(prev.Words, t.Words...)
				continue
			}
			byName[t.Name] = &t
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("themes: %w", err)
	}

	out := make([]Theme, 0, len(byName))
	for _, t := range byName {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// LoadFile loads the themes of a single pack file.
func (l *Loader) LoadFile(name string) ([]Theme, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", name, err)
	}

	themes, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", name, err)
	}
	for i := range themes {
		themes[i].Source = name
	}
	return themes, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Importer stores themes. Implemented by the storage backends.
type Importer interface {
	ImportTheme(ctx context.Context, name string, words []string) (id int64, added int, err error)
}

// ImportResult summarizes an import.
type ImportResult struct {
	Themes int // Themes touched
	Words  int // Words added
}

// Import stores every theme through imp. Importing the same themes again
// adds nothing.
func Import(ctx context.Context, imp Importer, themes []Theme) (ImportResult, error) {
	var res ImportResult
	for _, t := range themes {
		_, added, err := imp.ImportTheme(ctx, t.Name, t.Words)
		if err != nil {
			return res, fmt.Errorf("themes: import %q: %w", t.Name, err)
		}
		res.Themes++
		res.Words += added
	}
	return res, nil
}

// Seed imports the built-in packs.
func Seed(ctx context.Context, imp Importer) (ImportResult, error) {
	themes, err := Builtin().LoadAll()
	if err != nil {
		return ImportResult{}, err
	}
	return Import(ctx, imp, themes)
}
