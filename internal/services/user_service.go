package services

import (
	"context"
	"errors"
	"mime/multipart"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ujjwal0011/job-portal/internal/apperrors"
	"github.com/ujjwal0011/job-portal/internal/dtos"
	"github.com/ujjwal0011/job-portal/internal/models"
	"github.com/ujjwal0011/job-portal/internal/storage"
)

type UserService struct {
	DB        *gorm.DB
	Store     storage.ResumeStore
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewUserService(db *gorm.DB, store storage.ResumeStore, jwtSecret string, jwtExpiry time.Duration) *UserService {
	return &UserService{
		DB:        db,
		Store:     store,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
	}
}

// Register creates an account and issues a session token. Job seekers must
// attach a resume; niche and cover-letter fields are ignored for employers.
func (s *UserService) Register(ctx context.Context, req *dtos.RegisterRequest, resumeFile *multipart.FileHeader) (*models.User, string, error) {
	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, "", apperrors.Validation("Invalid role provided.")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, "", apperrors.Validation("Invalid email address.")
	}
	if len(req.Password) < 8 || len(req.Password) > 32 {
		return nil, "", apperrors.Validation("Password must be between 8 and 32 characters.")
	}

	user := &models.User{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Role:    role,
	}

	if role == models.RoleJobSeeker {
		for _, niche := range []string{req.FirstNiche, req.SecondNiche, req.ThirdNiche} {
			if niche != "" && !models.ValidNiche(niche) {
				return nil, "", apperrors.Validation("Unknown niche: " + niche)
			}
		}
		if resumeFile == nil {
			return nil, "", apperrors.Validation("Job seekers must upload a resume.")
		}
		user.FirstNiche = req.FirstNiche
		user.SecondNiche = req.SecondNiche
		user.ThirdNiche = req.ThirdNiche
		user.CoverLetter = req.CoverLetter
	}

	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, "", apperrors.Conflict("Email is already registered.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("Register: failed to check existing email")
		return nil, "", apperrors.Internal("Failed to register user.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Register: failed to hash password")
		return nil, "", apperrors.Internal("Failed to register user.")
	}
	user.Password = string(hashed)

	if role == models.RoleJobSeeker {
		resume, err := s.Store.Save(ctx, resumeFile)
		if err != nil {
			return nil, "", err
		}
		user.Resume = resume
	}

	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		// Clean up the just-uploaded file so no orphan is left behind.
		if user.Resume.Present() {
			_ = s.Store.Delete(ctx, user.Resume.FileID)
		}
		logrus.WithError(err).Error("Register: failed to create user")
		return nil, "", apperrors.Internal("Failed to register user.")
	}

	token, err := s.generateToken(user)
	if err != nil {
		logrus.WithError(err).Error("Register: failed to sign token")
		return nil, "", apperrors.Internal("Failed to register user.")
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User registered")
	return user, token, nil
}

// Login authenticates the email/password/role triple. Any mismatch,
// including a role mismatch against the stored account, reads the same to
// the client.
func (s *UserService) Login(ctx context.Context, req *dtos.LoginRequest) (*models.User, string, error) {
	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, "", apperrors.Validation("Invalid role provided.")
	}

	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).Error("Login: failed to look up user")
		}
		return nil, "", apperrors.Unauthenticated("Invalid email or password.")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		logrus.WithField("user_id", user.ID).Warn("Login: invalid password attempt")
		return nil, "", apperrors.Unauthenticated("Invalid email or password.")
	}
	if user.Role != role {
		logrus.WithField("user_id", user.ID).Warn("Login: role mismatch")
		return nil, "", apperrors.Unauthenticated("Invalid email or password.")
	}

	token, err := s.generateToken(&user)
	if err != nil {
		logrus.WithError(err).Error("Login: failed to sign token")
		return nil, "", apperrors.Internal("Login failed.")
	}

	logrus.WithField("user_id", user.ID).Info("User logged in")
	return &user, token, nil
}

// UpdateProfile mutates only the caller's own record. Empty fields keep
// their current value; a supplied resume file replaces the stored one.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, req *dtos.UpdateProfileRequest, resumeFile *multipart.FileHeader) (*models.User, error) {
	if req.Email != "" && req.Email != user.Email {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return nil, apperrors.Validation("Invalid email address.")
		}
		var existing models.User
		err := s.DB.WithContext(ctx).Where("email = ? AND id <> ?", req.Email, user.ID).First(&existing).Error
		if err == nil {
			return nil, apperrors.Conflict("Email is already registered.")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).Error("UpdateProfile: failed to check email")
			return nil, apperrors.Internal("Failed to update profile.")
		}
		user.Email = req.Email
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}

	if user.Role == models.RoleJobSeeker {
		for _, niche := range []string{req.FirstNiche, req.SecondNiche, req.ThirdNiche} {
			if niche != "" && !models.ValidNiche(niche) {
				return nil, apperrors.Validation("Unknown niche: " + niche)
			}
		}
		if req.FirstNiche != "" {
			user.FirstNiche = req.FirstNiche
		}
		if req.SecondNiche != "" {
			user.SecondNiche = req.SecondNiche
		}
		if req.ThirdNiche != "" {
			user.ThirdNiche = req.ThirdNiche
		}
		if req.CoverLetter != "" {
			user.CoverLetter = req.CoverLetter
		}

		if resumeFile != nil {
			resume, err := s.Store.Save(ctx, resumeFile)
			if err != nil {
				return nil, err
			}
			if user.Resume.Present() {
				_ = s.Store.Delete(ctx, user.Resume.FileID)
			}
			user.Resume = resume
		}
	}

	if err := s.DB.WithContext(ctx).Save(user).Error; err != nil {
		logrus.WithError(err).Error("UpdateProfile: failed to save user")
		return nil, apperrors.Internal("Failed to update profile.")
	}

	logrus.WithField("user_id", user.ID).Info("Profile updated")
	return user, nil
}

// UpdatePassword replaces the stored hash after verifying the old password
// and the new/confirm pair. On any failure the stored hash is untouched.
func (s *UserService) UpdatePassword(ctx context.Context, user *models.User, req *dtos.UpdatePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.Validation("New password and confirm password do not match.")
	}
	if len(req.NewPassword) < 8 || len(req.NewPassword) > 32 {
		return apperrors.Validation("Password must be between 8 and 32 characters.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return apperrors.Unauthenticated("Old password is incorrect.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("UpdatePassword: failed to hash password")
		return apperrors.Internal("Failed to update password.")
	}

	if err := s.DB.WithContext(ctx).Model(user).Update("password", string(hashed)).Error; err != nil {
		logrus.WithError(err).Error("UpdatePassword: failed to save password")
		return apperrors.Internal("Failed to update password.")
	}

	logrus.WithField("user_id", user.ID).Info("Password updated")
	return nil
}

func (s *UserService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     now.Add(s.jwtExpiry).Unix(),
		"iat":     now.Unix(),
	})
	return token.SignedString(s.jwtSecret)
}
