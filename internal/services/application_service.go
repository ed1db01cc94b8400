package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ujjwal0011/job-portal/internal/apperrors"
	"github.com/ujjwal0011/job-portal/internal/dtos"
	"github.com/ujjwal0011/job-portal/internal/models"
	"github.com/ujjwal0011/job-portal/internal/storage"
)

type ApplicationService struct {
	DB    *gorm.DB
	Store storage.ResumeStore

	// AllowDuplicates permits more than one application per seeker per job.
	AllowDuplicates bool
}

func NewApplicationService(db *gorm.DB, store storage.ResumeStore, allowDuplicates bool) *ApplicationService {
	return &ApplicationService{DB: db, Store: store, AllowDuplicates: allowDuplicates}
}

// Apply submits an application to a job. The applicant's fields and the job
// title are snapshotted into the application row; the resume comes from the
// uploaded file if present, otherwise from the seeker's stored profile.
func (s *ApplicationService) Apply(ctx context.Context, seeker *models.User, jobID uint, req *dtos.ApplyRequest, resumeFile *multipart.FileHeader) (*models.Application, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Job not found.")
		}
		logrus.WithError(err).Error("Apply: failed to load job")
		return nil, apperrors.Internal("Failed to submit application.")
	}

	if !s.AllowDuplicates {
		var count int64
		err := s.DB.WithContext(ctx).Model(&models.Application{}).
			Where("job_id = ? AND seeker_id = ?", jobID, seeker.ID).
			Count(&count).Error
		if err != nil {
			logrus.WithError(err).Error("Apply: duplicate check failed")
			return nil, apperrors.Internal("Failed to submit application.")
		}
		if count > 0 {
			return nil, apperrors.Conflict("You have already applied to this job.")
		}
	}

	resume := seeker.Resume
	if resumeFile != nil {
		uploaded, err := s.Store.Save(ctx, resumeFile)
		if err != nil {
			return nil, err
		}
		resume = uploaded
	}
	if !resume.Present() {
		return nil, apperrors.Validation("A resume is required to apply. Upload one or add it to your profile.")
	}

	app := &models.Application{
		JobInfo: models.JobInfo{
			JobID:    job.ID,
			JobTitle: job.Title,
		},
		JobSeekerInfo: models.SeekerInfo{
			SeekerID:    seeker.ID,
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			Address:     req.Address,
			CoverLetter: req.CoverLetter,
			Resume:      resume,
		},
		EmployerID: job.PostedByID,
	}

	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		logrus.WithError(err).Error("Apply: failed to create application")
		return nil, apperrors.Internal("Failed to submit application.")
	}

	logrus.WithFields(logrus.Fields{
		"application_id": app.ID,
		"job_id":         job.ID,
		"seeker_id":      seeker.ID,
	}).Info("Application submitted")
	return app, nil
}

// ListForEmployer returns every application received against the caller's
// postings, newest first.
func (s *ApplicationService) ListForEmployer(ctx context.Context, employerID uint) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		logrus.WithError(err).Error("ListForEmployer: query failed")
		return nil, apperrors.Internal("Failed to fetch applications.")
	}
	return apps, nil
}

// ListForSeeker returns every application the caller has submitted,
// newest first.
func (s *ApplicationService) ListForSeeker(ctx context.Context, seekerID uint) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Where("seeker_id = ?", seekerID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		logrus.WithError(err).Error("ListForSeeker: query failed")
		return nil, apperrors.Internal("Failed to fetch applications.")
	}
	return apps, nil
}

// Delete removes an application. Allowed for exactly two callers: the
// seeker who submitted it and the employer it was submitted to.
func (s *ApplicationService) Delete(ctx context.Context, applicationID uint, caller *models.User) error {
	var app models.Application
	err := s.DB.WithContext(ctx).First(&app, applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Application not found.")
		}
		logrus.WithError(err).Error("Delete application: query failed")
		return apperrors.Internal("Failed to delete application.")
	}

	if caller.ID != app.JobSeekerInfo.SeekerID && caller.ID != app.EmployerID {
		return apperrors.Forbidden("You are not allowed to delete this application.")
	}

	if err := s.DB.WithContext(ctx).Delete(&app).Error; err != nil {
		logrus.WithError(err).Error("Delete application: delete failed")
		return apperrors.Internal("Failed to delete application.")
	}

	logrus.WithFields(logrus.Fields{
		"application_id": app.ID,
		"deleted_by":     caller.ID,
	}).Info("Application deleted")
	return nil
}
