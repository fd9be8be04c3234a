package bulkupload

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "upload.zip")
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestExtractZip(t *testing.T) {
	t.Run("extracts allowed files flattened", func(t *testing.T) {
		zipPath := writeTemp(t, buildZip(t, map[string]string{
			"reports/annual.pdf":    "pdf",
			"data.csv":              "a,b",
			"__MACOSX/._annual.pdf": "junk",
			".DS_Store":             "junk",
		}))
		dir := t.TempDir()

		files, err := ExtractZip(zipPath, dir)
		require.NoError(t, err)

		names := map[string]bool{}
		for _, f := range files {
			names[f.Filename] = true
			b, err := os.ReadFile(f.Path)
			require.NoError(t, err)
			assert.NotEmpty(t, b)
		}
		assert.Equal(t, map[string]bool{"annual.pdf": true, "data.csv": true}, names)
	})

	t.Run("not a zip", func(t *testing.T) {
		_, err := ExtractZip(writeTemp(t, []byte("plain text, not an archive")), t.TempDir())

		var zerr *ZipError
		require.ErrorAs(t, err, &zerr)
		assert.Equal(t, []string{"is not a zip file"}, zerr.Messages)
	})

	t.Run("no files", func(t *testing.T) {
		_, err := ExtractZip(writeTemp(t, buildZip(t, map[string]string{"__MACOSX/x.pdf": "x"})), t.TempDir())

		var zerr *ZipError
		require.ErrorAs(t, err, &zerr)
		assert.Equal(t, []string{"contains no files"}, zerr.Messages)
	})

	t.Run("disallowed files", func(t *testing.T) {
		_, err := ExtractZip(writeTemp(t, buildZip(t, map[string]string{"run.exe": "MZ", "ok.pdf": "pdf"})), t.TempDir())

		var zerr *ZipError
		require.ErrorAs(t, err, &zerr)
		assert.Equal(t, []string{"contains invalid files: run.exe"}, zerr.Messages)
	})

	t.Run("same file name in two folders", func(t *testing.T) {
		dir := t.TempDir()
		_, err := ExtractZip(writeTemp(t, buildZip(t, map[string]string{
			"2023/report.pdf": "old",
			"2024/report.pdf": "new",
			"annex.csv":       "a,b",
		})), dir)

		var zerr *ZipError
		require.ErrorAs(t, err, &zerr)
		assert.Equal(t, []string{"contains duplicate file names: report.pdf"}, zerr.Messages)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestDiskFileCache(t *testing.T) {
	cache, err := NewDiskFileCache(t.TempDir())
	require.NoError(t, err)

	token, err := cache.Put("../../escape.pdf", bytes.NewBufferString("pdf"))
	require.NoError(t, err)

	name, err := cache.Filename(token)
	require.NoError(t, err)
	assert.Equal(t, "escape.pdf", name)

	id, _, _ := strings.Cut(token, "/")
	for _, bad := range []string{
		"", "nope", "not-a-uuid/file.pdf", "9b2f9f44-8a44-4d0b-9d5f-2a8b6c1b8f11/missing.pdf",
		id + "/..", id + "/.", id + "/", id + "/escape.pdf/..",
	} {
		_, err := cache.Filename(bad)
		assert.ErrorIs(t, err, ErrUnknownFileCache, bad)
	}
}
