package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ujjwal0011/job-portal/internal/apperrors"
	"github.com/ujjwal0011/job-portal/internal/models"
)

// MaxResumeSize caps uploads at 5 MB.
const MaxResumeSize = 5 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// DiskStore keeps resumes on the local filesystem under dir, served back
// under baseURL.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Save(ctx context.Context, file *multipart.FileHeader) (models.Resume, error) {
	if file.Size > MaxResumeSize {
		return models.Resume{}, apperrors.Validation("Resume file is too large (max 5 MB).")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return models.Resume{}, apperrors.Validation("Invalid resume file type. Use PDF, PNG, JPEG or WEBP.")
	}

	fileID := uuid.NewString() + ext
	dst := filepath.Join(s.dir, fileID)

	src, err := file.Open()
	if err != nil {
		logrus.WithError(err).Error("DiskStore: failed to open uploaded file")
		return models.Resume{}, apperrors.Upload("Failed to read uploaded resume.")
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		logrus.WithError(err).Error("DiskStore: failed to create destination file")
		return models.Resume{}, apperrors.Upload("Failed to store resume.")
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst) // no half-written files
		logrus.WithError(err).Error("DiskStore: failed to write resume")
		return models.Resume{}, apperrors.Upload("Failed to store resume.")
	}

	return models.Resume{
		FileID:   fileID,
		URL:      s.baseURL + "/" + fileID,
		FileName: file.Filename,
	}, nil
}

func (s *DiskStore) Delete(ctx context.Context, fileID string) error {
	if fileID == "" {
		return nil
	}
	// fileID is always a generated uuid name; reject anything path-like.
	if filepath.Base(fileID) != fileID {
		return apperrors.Validation("Invalid file reference.")
	}
	err := os.Remove(filepath.Join(s.dir, fileID))
	if err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("DiskStore: failed to remove resume file")
		return apperrors.Upload("Failed to remove stored resume.")
	}
	return nil
}
