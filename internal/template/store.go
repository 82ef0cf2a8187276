package template

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/timvw/tmx/internal/logger"
)

// FileExt is the extension of template files in the store directory.
const FileExt = ".toml"

// Store maps template names to files in a single directory.
// Each template lives in <Dir>/<name>.toml. There is no locking: concurrent
// writers of the same template race and the last write wins.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir. The directory is created on the
// first Save.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Path returns the file path for the named template.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name+FileExt)
}

// List returns every readable template in the store, sorted by name.
// Files that cannot be read or decoded are skipped so one broken template
// does not hide the rest. A missing directory yields an empty list.
func (s *Store) List() ([]SessionTemplate, error) {
	log := logger.WithComponent("store")

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []SessionTemplate{}, nil
		}
		return nil, fmt.Errorf("reading template directory %s: %w", s.Dir, err)
	}

	templates := make([]SessionTemplate, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FileExt) {
			continue
		}
		path := filepath.Join(s.Dir, entry.Name())
		t, err := readFile(path)
		if err != nil {
			log.Warn("skipping template", "path", path, "error", err)
			continue
		}
		templates = append(templates, *t)
	}

	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Template.Name < templates[j].Template.Name
	})
	return templates, nil
}

// Load reads a single named template. Unlike List, a file that does not
// decode is an error.
func (s *Store) Load(name string) (*SessionTemplate, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	t, err := readFile(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("template %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("template %q: %w", name, err)
	}
	return t, nil
}

// Save writes t to the file keyed by its name, replacing any previous
// contents. The store directory is created if needed.
func (s *Store) Save(t *SessionTemplate) error {
	name := t.Template.Name
	if err := ValidateName(name); err != nil {
		return err
	}
	data, err := Encode(t)
	if err != nil {
		return fmt.Errorf("template %q: %w", name, err)
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("creating template directory %s: %w", s.Dir, err)
	}
	path := s.Path(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("saving template %q: %w", name, err)
	}
	logger.WithComponent("store").Debug("template saved", "name", name, "path", path)
	return nil
}

// Delete removes the named template. A missing template is ErrNotFound.
func (s *Store) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.Remove(s.Path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("template %q: %w", name, ErrNotFound)
		}
		return fmt.Errorf("deleting template %q: %w", name, err)
	}
	logger.WithComponent("store").Debug("template deleted", "name", name)
	return nil
}

// Exists reports whether a template file exists for name.
func (s *Store) Exists(name string) bool {
	if ValidateName(name) != nil {
		return false
	}
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Encode serializes a template to its on-disk TOML form.
func Encode(t *SessionTemplate) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("encoding template: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses the on-disk TOML form of a template. Empty window and
// pane lists decode as nil, whether the file spells them out or omits them.
func Decode(data []byte) (*SessionTemplate, error) {
	var t SessionTemplate
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if len(t.Windows) == 0 {
		t.Windows = nil
	}
	for i := range t.Windows {
		if len(t.Windows[i].Panes) == 0 {
			t.Windows[i].Panes = nil
		}
	}
	return &t, nil
}

func readFile(path string) (*SessionTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Decode(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return t, nil
}
