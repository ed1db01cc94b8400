package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ujjwal0011/job-portal/internal/apperrors"
)

func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["resume"][0]
}

func TestDiskStoreSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	resume, err := store.Save(ctx, uploadHeader(t, "my cv.pdf", []byte("%PDF-1.4 hello")))
	require.NoError(t, err)
	assert.Equal(t, "my cv.pdf", resume.FileName)
	assert.True(t, strings.HasPrefix(resume.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(resume.FileID, ".pdf"))

	data, err := os.ReadFile(filepath.Join(dir, resume.FileID))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 hello", string(data))

	require.NoError(t, store.Delete(ctx, resume.FileID))
	_, err = os.Stat(filepath.Join(dir, resume.FileID))
	assert.True(t, os.IsNotExist(err))

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, resume.FileID))
}

func TestDiskStoreRejectsBadUploads(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Save(ctx, uploadHeader(t, "malware.exe", []byte("nope")))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))

	big := uploadHeader(t, "big.pdf", []byte("x"))
	big.Size = MaxResumeSize + 1
	_, err = store.Save(ctx, big)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestDiskStoreDeleteRejectsPathTraversal(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	err = store.Delete(context.Background(), "../etc/passwd")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}
