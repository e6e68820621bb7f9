package exchange

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/timecapsule/internal/demo"
	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/storage/sqlite"
)

var now = time.Date(2026, 7, 4, 12, 0, 0, 0, time.UTC)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	recs := demo.Capsules(now)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, recs, now))
	assert.Contains(t, buf.String(), "version = 1")
	assert.Contains(t, buf.String(), "[[capsules]]")
	assert.Contains(t, buf.String(), "[[capsules.media]]")

	got, err := Decode(&buf, now)
	require.NoError(t, err)
	require.Len(t, got, len(recs))

	for i := range recs {
		assert.Equal(t, recs[i].ID, got[i].ID)
		assert.Equal(t, recs[i].Title, got[i].Title)
		assert.Equal(t, recs[i].Message, got[i].Message)
		assert.Equal(t, len(recs[i].Media), len(got[i].Media))
		assert.True(t, recs[i].UnlockAt.Equal(got[i].UnlockAt), "unlock_at for %s", recs[i].Title)
	}
}

func TestDecodeHandWritten(t *testing.T) {
	doc := `
version = 1

[[capsules]]
title = "Letter to 2030"
message = "Hi!"
unlock_at = 2030-01-01T00:00:00Z

  [[capsules.media]]
  ref = "holiday.jpeg"
`
	got, err := Decode(strings.NewReader(doc), now)
	require.NoError(t, err)
	require.Len(t, got, 1)

	rec := got[0]
	assert.NotEmpty(t, rec.ID, "missing id is generated")
	assert.Equal(t, now, rec.CreatedAt)
	assert.Equal(t, []models.Media{{Kind: models.MediaImage, Ref: "holiday.jpeg"}}, rec.Media)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"wrong version", "version = 2\n", ErrUnsupportedVersion},
		{"missing version", "[[capsules]]\ntitle = \"x\"\n", ErrUnsupportedVersion},
		{"missing title", "version = 1\n[[capsules]]\nunlock_at = 2030-01-01T00:00:00Z\n", ErrInvalidEntry},
		{"missing message", "version = 1\n[[capsules]]\ntitle = \"x\"\nunlock_at = 2030-01-01T00:00:00Z\n", ErrInvalidEntry},
		{"blank message", "version = 1\n[[capsules]]\ntitle = \"x\"\nmessage = \"  \\n \"\nunlock_at = 2030-01-01T00:00:00Z\n", ErrInvalidEntry},
		{"missing unlock", "version = 1\n[[capsules]]\ntitle = \"x\"\nmessage = \"m\"\n", ErrInvalidEntry},
		{"bad media", "version = 1\n[[capsules]]\ntitle = \"x\"\nmessage = \"m\"\nunlock_at = 2030-01-01T00:00:00Z\n[[capsules.media]]\nref = \"a.txt\"\n", ErrInvalidEntry},
		{"kind mismatch", "version = 1\n[[capsules]]\ntitle = \"x\"\nmessage = \"m\"\nunlock_at = 2030-01-01T00:00:00Z\n[[capsules.media]]\nkind = \"video\"\nref = \"a.png\"\n", ErrInvalidEntry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), now)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Decode(strings.NewReader("version = 1\nsurprise = true\n"), now)
	assert.Error(t, err, "unknown fields are rejected")
}

func TestExportImportBetweenStores(t *testing.T) {
	dir := t.TempDir()

	src := sqlite.NewStore(filepath.Join(dir, "src.db"))
	require.NoError(t, src.Init())
	defer src.Close()

	recs := demo.Capsules(now)
	for _, r := range recs {
		require.NoError(t, src.AddCapsule(r))
	}
	require.NoError(t, src.DeleteCapsule(recs[0].ID))

	file := filepath.Join(dir, "capsules.toml")
	n, err := Export(src, file, now)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "deleted capsules are not exported")

	dst := sqlite.NewStore(filepath.Join(dir, "dst.db"))
	require.NoError(t, dst.Init())
	defer dst.Close()

	res, err := Import(dst, file, now)
	require.NoError(t, err)
	assert.Equal(t, Result{Added: 3}, res)

	res, err = Import(dst, file, now)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 3}, res, "re-import skips existing ids")

	all, err := dst.GetAllCapsules(false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
