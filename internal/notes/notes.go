// Package notes stores news items in a flat directory of markdown documents,
// one file per topic.
package notes

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Suffix is the file extension of note documents.
const Suffix = ".md"

var (
	ErrExists   = errors.New("note already exists")
	ErrNotFound = errors.New("note not found")
	ErrBadName  = errors.New("bad note name")
)

// Repository reads and writes note documents under a single directory.
// Documents are only ever created or appended to, never rewritten.
type Repository struct {
	fs  afero.Fs
	dir string
}

func NewRepository(fs afero.Fs, dir string) *Repository {
	return &Repository{fs: fs, dir: dir}
}

// List returns the file names of all notes at the top level of the note
// directory, sorted by name so that menus built from it are stable. A missing
// directory counts as an empty one.
func (r *Repository) List() ([]string, error) {
	infos, err := afero.ReadDir(r.fs, r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), Suffix) {
			continue
		}
		names = append(names, info.Name())
	}
	return names, nil
}

// Exists reports whether a note with exactly the given file name is present.
func (r *Repository) Exists(filename string) (bool, error) {
	_, err := r.fs.Stat(filepath.Join(r.dir, filename))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ValidateTitle rejects titles that are empty or would escape the note
// directory when joined into a file path.
func ValidateTitle(title string) error {
	if title == "" || title == "." || title == ".." {
		return ErrBadName
	}
	if strings.ContainsAny(title, "/\\\x00") {
		return ErrBadName
	}
	return nil
}

// Title is the display name of a note file: the name without its suffix.
func Title(filename string) string {
	return strings.TrimSuffix(filename, Suffix)
}

// Create writes a new note named "<title>.md" containing a level-1 heading
// followed by the item body. The create is exclusive: an existing note is
// never overwritten, and ErrExists is returned instead.
func (r *Repository) Create(title, text string, images []string) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}
	name := title + Suffix
	f, err := r.fs.OpenFile(filepath.Join(r.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s: %w", name, ErrExists)
		}
		return err
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.Write(body(text, images))
	if _, err := f.Write(b.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Append adds an item to the end of an existing note, separated from the
// prior content by a blank line. The prior content is left untouched.
func (r *Repository) Append(filename, text string, images []string) error {
	f, err := r.fs.OpenFile(filepath.Join(r.dir, filename), os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", filename, ErrNotFound)
		}
		return err
	}
	var b bytes.Buffer
	b.WriteByte('\n')
	b.Write(body(text, images))
	if _, err := f.Write(b.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// body renders the shared content rule: the text (if any) followed by a
// newline, then each image reference on a line of its own. No placeholder
// line is emitted for missing text.
func body(text string, images []string) []byte {
	var b bytes.Buffer
	if text != "" {
		b.WriteString(text)
		b.WriteByte('\n')
	}
	for _, image := range images {
		b.WriteString(image)
		b.WriteByte('\n')
	}
	return b.Bytes()
}
