// Package storage is the boundary to the resume file-storage provider.
package storage

import (
	"context"
	"mime/multipart"

	"github.com/ujjwal0011/job-portal/internal/models"
)

// ResumeStore saves and removes uploaded resume files. A failed Save aborts
// the whole operation that triggered it; no record is persisted without its
// file.
type ResumeStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (models.Resume, error)
	Delete(ctx context.Context, fileID string) error
}
