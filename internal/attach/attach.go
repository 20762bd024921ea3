// Package attach saves incoming images next to the notes and hands back
// markdown references to link them from note content.
package attach

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
)

// Dir is the subdirectory of the note root where images are stored. Note
// content references images relative to the note root, "attachments/<name>".
const Dir = "attachments"

const ext = ".jpg"

// FetchFunc retrieves the raw bytes of an image given its transport file
// handle.
type FetchFunc func(ctx context.Context, fileID string) ([]byte, error)

// Ingestor downloads images into the attachments directory under generated
// ULID names. Files are immutable once written.
type Ingestor struct {
	fs      afero.Fs
	root    string
	fetch   FetchFunc
	now     func() time.Time
	entropy io.Reader
}

func NewIngestor(fs afero.Fs, root string, fetch FetchFunc) *Ingestor {
	return &Ingestor{
		fs:      fs,
		root:    root,
		fetch:   fetch,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Ingest downloads the image identified by fileID, writes it to the
// attachments directory (creating it if needed), and returns the markdown
// image reference to put in a note. The timestamp in the reference is the
// ingestion time. Fetch and write failures are returned as-is; nothing is
// retried here.
func (i *Ingestor) Ingest(ctx context.Context, fileID string) (string, error) {
	data, err := i.fetch(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("fetch %q: %w", fileID, err)
	}
	dir := filepath.Join(i.root, Dir)
	if err := i.fs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	now := i.now()
	name := ulid.MustNew(ulid.Timestamp(now), i.entropy).String() + ext
	if err := afero.WriteFile(i.fs, filepath.Join(dir, name), data, 0o644); err != nil {
		return "", err
	}
	return fmt.Sprintf("![Image %s](%s/%s)", now.Format("2006-01-02 15:04:05"), Dir, name), nil
}
