package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ujjwal0011/job-portal/internal/config"
	"github.com/ujjwal0011/job-portal/internal/middleware"
	"github.com/ujjwal0011/job-portal/internal/models"
	"github.com/ujjwal0011/job-portal/internal/services"
	"github.com/ujjwal0011/job-portal/internal/storage"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Job{}, &models.Application{}))

	cfg := &config.Config{
		JWTSecret:    testSecret,
		JWTExpiry:    time.Hour,
		CookieExpiry: time.Hour,
		UploadDir:    t.TempDir(),
	}
	store, err := storage.NewDiskStore(cfg.UploadDir, "/uploads")
	require.NoError(t, err)

	userService := services.NewUserService(db, store, cfg.JWTSecret, cfg.JWTExpiry)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db, store, false)

	r := gin.New()
	RegisterRoutes(r, db, cfg,
		NewUserHandler(userService, cfg.CookieExpiry, false),
		NewJobHandler(jobService, nil),
		NewApplicationHandler(applicationService),
	)
	return r, db
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role, email string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name: "Test", Email: email, Phone: "1112223333", Address: "42 Test St",
		Password: string(hash), Role: role,
		Resume: models.Resume{FileID: "seed.pdf", URL: "/uploads/seed.pdf", FileName: "seed.pdf"},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func sessionCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.TokenCookieName, Value: signed}
}

func postJobBody() *bytes.Buffer {
	body, _ := json.Marshal(map[string]string{
		"title":            "Backend Engineer",
		"jobType":          "Full-time",
		"location":         "Pune",
		"companyName":      "Acme Corp",
		"introduction":     "Intro",
		"responsibilities": "Responsibilities",
		"qualifications":   "Qualifications",
		"jobNiche":         "Web Development",
		"salary":           "10 LPA",
	})
	return bytes.NewBuffer(body)
}

func jobCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Job{}).Count(&count).Error)
	return count
}

// Anonymous callers get 401, authenticated seekers get 403, and in neither
// case is a job created.
func TestPostJobGate(t *testing.T) {
	r, db := newTestRouter(t)
	seeker := seedUser(t, db, models.RoleJobSeeker, "seeker@example.com")
	employer := seedUser(t, db, models.RoleEmployer, "employer@example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/job/post", postJobBody())
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.EqualValues(t, 0, jobCount(t, db))

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/v1/job/post", postJobBody())
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, seeker))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.EqualValues(t, 0, jobCount(t, db))

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/v1/job/post", postJobBody())
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, employer))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, jobCount(t, db))
}

func TestListJobsIsPublic(t *testing.T) {
	r, db := newTestRouter(t)
	employer := seedUser(t, db, models.RoleEmployer, "employer@example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/job/post", postJobBody())
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, employer))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/job/all?city=Pune", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "Backend Engineer")
}

func TestGetJobNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/job/9999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRegisterLoginMeFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	// Multipart registration with a resume file.
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fields := map[string]string{
		"role":     string(models.RoleJobSeeker),
		"name":     "Sita Sharma",
		"email":    "sita@example.com",
		"phone":    "9876543210",
		"address":  "Pune",
		"password": "supersecret",
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("resume", "cv.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/user/register", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.TokenCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "registration must set the session cookie")
	assert.True(t, cookie.HttpOnly)

	// The cookie authenticates /user/me.
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/user/me", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sita@example.com")

	// Bad credentials on login.
	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/v1/user/login",
		strings.NewReader(`{"role":"Job Seeker","email":"sita@example.com","password":"wrong-password"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApplyGate(t *testing.T) {
	r, db := newTestRouter(t)
	employer := seedUser(t, db, models.RoleEmployer, "employer@example.com")
	seeker := seedUser(t, db, models.RoleJobSeeker, "seeker@example.com")

	// Post a job to apply to.
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/job/post", postJobBody())
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, employer))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var job models.Job
	require.NoError(t, db.First(&job).Error)
	applyPath := fmt.Sprintf("/api/v1/application/post/%d", job.ID)

	applyBody := `{"name":"S","email":"seeker@example.com","phone":"1","address":"a","coverLetter":"hi"}`

	// Employers cannot apply.
	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", applyPath, strings.NewReader(applyBody))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, employer))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Seekers can.
	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", applyPath, strings.NewReader(applyBody))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, seeker))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
