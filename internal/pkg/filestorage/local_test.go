package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSaveAndReadFile(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	content := []byte("dear admissions committee")
	fileHeader := makeFileHeader(t, "essay.pdf", "application/pdf", content)

	stored, err := storage.SaveFile(fileHeader, "student_10")
	require.NoError(t, err)

	assert.Equal(t, "essay.pdf", stored.OriginalName)
	assert.Equal(t, "application/pdf", stored.MimeType)
	assert.Equal(t, int64(len(content)), stored.Size)
	assert.True(t, strings.HasPrefix(stored.Path, "student_10/"))
	assert.True(t, strings.HasSuffix(stored.Filename, ".pdf"))

	read, err := storage.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, content, read)
}

func TestSaveFile_UniqueNames(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	first, err := storage.SaveFile(makeFileHeader(t, "essay.pdf", "application/pdf", []byte("v1")), "")
	require.NoError(t, err)
	second, err := storage.SaveFile(makeFileHeader(t, "essay.pdf", "application/pdf", []byte("v2")), "")
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
}

func TestDeleteFile(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base)
	require.NoError(t, err)

	stored, err := storage.SaveFile(makeFileHeader(t, "notes.txt", "text/plain", []byte("x")), "student_10")
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(stored.Path))
	_, err = os.Stat(filepath.Join(base, filepath.FromSlash(stored.Path)))
	assert.True(t, os.IsNotExist(err))

	// Deleting again is a no-op.
	assert.NoError(t, storage.DeleteFile(stored.Path))
	assert.NoError(t, storage.DeleteFile(""))
}

func TestReadFile_RejectsEscapingPaths(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.ReadFile("../outside.txt")
	assert.Error(t, err)
	_, err = storage.ReadFile("/etc/passwd")
	assert.Error(t, err)

	assert.Error(t, storage.DeleteFile("../outside.txt"))
}

func TestReadFile_Missing(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.ReadFile("student_10/missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
