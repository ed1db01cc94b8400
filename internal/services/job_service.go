package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ujjwal0011/job-portal/internal/apperrors"
	"github.com/ujjwal0011/job-portal/internal/dtos"
	"github.com/ujjwal0011/job-portal/internal/models"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db}
}

// PostJob persists a new posting owned by the calling employer. The role
// itself is checked upstream by the authorization gate.
func (s *JobService) PostJob(ctx context.Context, employer *models.User, req *dtos.PostJobRequest) (*models.Job, error) {
	if req.JobType != "Full-time" && req.JobType != "Internship" {
		return nil, apperrors.Validation("Job type must be Full-time or Internship.")
	}
	if !models.ValidCity(req.Location) {
		return nil, apperrors.Validation("Unknown city: " + req.Location)
	}
	if !models.ValidNiche(req.JobNiche) {
		return nil, apperrors.Validation("Unknown niche: " + req.JobNiche)
	}
	hiring := req.HiringMultipleCandidates
	if hiring == "" {
		hiring = "No"
	}
	if hiring != "Yes" && hiring != "No" {
		return nil, apperrors.Validation("Hiring multiple candidates must be Yes or No.")
	}
	// Website title and URL come as a pair or not at all.
	if (req.PersonalWebsiteTitle == "") != (req.PersonalWebsiteURL == "") {
		return nil, apperrors.Validation("Provide both website title and URL, or neither.")
	}

	job := &models.Job{
		Title:                    req.Title,
		JobType:                  req.JobType,
		Location:                 req.Location,
		CompanyName:              req.CompanyName,
		Introduction:             req.Introduction,
		Responsibilities:         req.Responsibilities,
		Qualifications:           req.Qualifications,
		Offers:                   req.Offers,
		JobNiche:                 req.JobNiche,
		Salary:                   req.Salary,
		HiringMultipleCandidates: hiring,
		PersonalWebsite: models.PersonalWebsite{
			Title: req.PersonalWebsiteTitle,
			URL:   req.PersonalWebsiteURL,
		},
		PostedByID:  employer.ID,
		JobPostedOn: time.Now(),
	}

	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		logrus.WithError(err).Error("PostJob: failed to create job")
		return nil, apperrors.Internal("Failed to post job.")
	}

	logrus.WithFields(logrus.Fields{"job_id": job.ID, "employer_id": employer.ID}).Info("Job posted")
	return job, nil
}

// ListJobs is the public, optionally filtered listing. City and niche match
// exactly; the keyword is a case-insensitive substring match on the title.
func (s *JobService) ListJobs(ctx context.Context, filter dtos.JobFilter) ([]models.Job, error) {
	q := s.DB.WithContext(ctx).Model(&models.Job{})
	if filter.City != "" {
		q = q.Where("location = ?", filter.City)
	}
	if filter.Niche != "" {
		q = q.Where("job_niche = ?", filter.Niche)
	}
	if filter.Keyword != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Keyword)+"%")
	}

	var jobs []models.Job
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		logrus.WithError(err).Error("ListJobs: query failed")
		return nil, apperrors.Internal("Failed to fetch jobs.")
	}
	return jobs, nil
}

func (s *JobService) GetJob(ctx context.Context, jobID uint) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Job not found.")
		}
		logrus.WithError(err).Error("GetJob: query failed")
		return nil, apperrors.Internal("Failed to fetch job.")
	}
	return &job, nil
}

// MyJobs lists the postings owned by the calling employer.
func (s *JobService) MyJobs(ctx context.Context, employerID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).
		Where("posted_by_id = ?", employerID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		logrus.WithError(err).Error("MyJobs: query failed")
		return nil, apperrors.Internal("Failed to fetch jobs.")
	}
	return jobs, nil
}

// DeleteJob removes a posting owned by the caller. Applications already
// submitted against it are kept; they carry their own snapshot of the job.
func (s *JobService) DeleteJob(ctx context.Context, jobID uint, caller *models.User) error {
	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Job not found.")
		}
		logrus.WithError(err).Error("DeleteJob: query failed")
		return apperrors.Internal("Failed to delete job.")
	}

	if job.PostedByID != caller.ID {
		return apperrors.Forbidden("You can only delete your own job postings.")
	}

	if err := s.DB.WithContext(ctx).Delete(&job).Error; err != nil {
		logrus.WithError(err).Error("DeleteJob: delete failed")
		return apperrors.Internal("Failed to delete job.")
	}

	logrus.WithFields(logrus.Fields{"job_id": job.ID, "employer_id": caller.ID}).Info("Job deleted")
	return nil
}
