package render

import (
	"embed"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed themes
var themeFS embed.FS

// EmbeddedThemeStore serves the themes compiled into the binary.
type EmbeddedThemeStore struct{}

// NewEmbeddedThemeStore creates a store over the built-in themes.
func NewEmbeddedThemeStore() *EmbeddedThemeStore {
	return &EmbeddedThemeStore{}
}

func (s *EmbeddedThemeStore) Load(id string) (*Theme, error) {
	html, err := themeFS.ReadFile("themes/" + id + "/template.html")
	if err != nil {
		return nil, &UnknownThemeError{ID: id}
	}
	css, err := themeFS.ReadFile("themes/" + id + "/style.css")
	if err != nil {
		return nil, &UnknownThemeError{ID: id}
	}
	// letter.html is optional per theme.
	letter, _ := themeFS.ReadFile("themes/" + id + "/letter.html")
	return &Theme{ID: id, HTML: string(html), Letter: string(letter), CSS: string(css)}, nil
}

func (s *EmbeddedThemeStore) List() []string {
	entries, err := themeFS.ReadDir("themes")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids
}

// DirThemeStore serves themes from a directory, one subdirectory per theme
// holding a template.html, a style.css and optionally a letter.html. It lets
// deployments ship themes without a rebuild.
type DirThemeStore struct {
	dir string
}

// NewDirThemeStore creates a store over the given directory.
func NewDirThemeStore(dir string) *DirThemeStore {
	return &DirThemeStore{dir: dir}
}

func (s *DirThemeStore) Load(id string) (*Theme, error) {
	// Theme ids are plain names; anything path-like stays out of the
	// filesystem lookup.
	if id == "" || strings.ContainsAny(id, "/\\.") {
		return nil, &UnknownThemeError{ID: id}
	}
	html, err := os.ReadFile(filepath.Join(s.dir, id, "template.html"))
	if err != nil {
		return nil, &UnknownThemeError{ID: id}
	}
	css, err := os.ReadFile(filepath.Join(s.dir, id, "style.css"))
	if err != nil {
		return nil, &UnknownThemeError{ID: id}
	}
	letter, _ := os.ReadFile(filepath.Join(s.dir, id, "letter.html"))
	return &Theme{ID: id, HTML: string(html), Letter: string(letter), CSS: string(css)}, nil
}

func (s *DirThemeStore) List() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids
}
