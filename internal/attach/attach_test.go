package attach

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngest(t *testing.T) {
	fs := afero.NewMemMapFs()
	payload := []byte{0xff, 0xd8, 0xff, 0xe0}
	ingestor := NewIngestor(fs, "/vault", func(_ context.Context, fileID string) ([]byte, error) {
		assert.Equal(t, "file-123", fileID)
		return payload, nil
	})
	ingestor.now = func() time.Time {
		return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	}

	ref, err := ingestor.Ingest(context.Background(), "file-123")
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^!\[Image 2026-08-31 10:00:00\]\(attachments/([0-9A-HJKMNP-TV-Z]{26})\.jpg\)$`)
	m := pattern.FindStringSubmatch(ref)
	require.NotNil(t, m, "unexpected reference %q", ref)

	content, err := afero.ReadFile(fs, "/vault/attachments/"+m[1]+".jpg")
	require.NoError(t, err)
	assert.Equal(t, payload, content)
}

func TestIngestUniqueNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	ingestor := NewIngestor(fs, "/vault", func(context.Context, string) ([]byte, error) {
		return []byte("img"), nil
	})

	first, err := ingestor.Ingest(context.Background(), "a")
	require.NoError(t, err)
	second, err := ingestor.Ingest(context.Background(), "b")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestIngestFetchFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	boom := errors.New("boom")
	ingestor := NewIngestor(fs, "/vault", func(context.Context, string) ([]byte, error) {
		return nil, boom
	})

	_, err := ingestor.Ingest(context.Background(), "file-123")
	assert.ErrorIs(t, err, boom)

	// Nothing was written.
	exists, err := afero.DirExists(fs, "/vault/attachments")
	require.NoError(t, err)
	assert.False(t, exists)
}
