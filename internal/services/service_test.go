package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ujjwal0011/job-portal/internal/apperrors"
	"github.com/ujjwal0011/job-portal/internal/dtos"
	"github.com/ujjwal0011/job-portal/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Job{}, &models.Application{}))
	return db
}

// fakeStore records uploads without touching the filesystem.
type fakeStore struct {
	saves    int
	deleted  []string
	failSave bool
}

func (f *fakeStore) Save(_ context.Context, file *multipart.FileHeader) (models.Resume, error) {
	if f.failSave {
		return models.Resume{}, apperrors.Upload("storage provider unavailable")
	}
	f.saves++
	id := fmt.Sprintf("file-%d.pdf", f.saves)
	return models.Resume{FileID: id, URL: "/uploads/" + id, FileName: file.Filename}, nil
}

func (f *fakeStore) Delete(_ context.Context, fileID string) error {
	f.deleted = append(f.deleted, fileID)
	return nil
}

// multipartResume builds a real *multipart.FileHeader the way gin would
// hand it to a handler.
func multipartResume(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 test resume"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["resume"][0]
}

func newTestUserService(db *gorm.DB, store *fakeStore) *UserService {
	return NewUserService(db, store, "test-secret", time.Hour)
}

// createUser seeds an account directly, bypassing registration.
func createUser(t *testing.T, db *gorm.DB, role models.Role, email string, withResume bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:     "Test " + string(role),
		Email:    email,
		Phone:    "1112223333",
		Address:  "42 Test Street",
		Password: string(hash),
		Role:     role,
	}
	if withResume {
		user.Resume = models.Resume{FileID: "seed.pdf", URL: "/uploads/seed.pdf", FileName: "seed.pdf"}
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func postTestJob(t *testing.T, db *gorm.DB, employer *models.User, title, city, niche string) *models.Job {
	t.Helper()
	jobs := NewJobService(db)
	job, err := jobs.PostJob(context.Background(), employer, &dtos.PostJobRequest{
		Title:            title,
		JobType:          "Full-time",
		Location:         city,
		CompanyName:      "Acme Corp",
		Introduction:     "An intro.",
		Responsibilities: "Do things.",
		Qualifications:   "Know things.",
		JobNiche:         niche,
		Salary:           "10 LPA",
	})
	require.NoError(t, err)
	return job
}
