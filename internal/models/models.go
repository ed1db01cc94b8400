package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of account types. Authorization compares against
// these exact values, never ad-hoc strings.
type Role string

const (
	RoleEmployer  Role = "Employer"
	RoleJobSeeker Role = "Job Seeker"
)

func (r Role) Valid() bool {
	return r == RoleEmployer || r == RoleJobSeeker
}

// Niches is the closed category set shared by seeker preferences and job
// postings.
var Niches = []string{
	"Software Development",
	"Web Development",
	"Cybersecurity",
	"Data Science",
	"Artificial Intelligence",
	"Cloud Computing",
	"DevOps",
	"Mobile App Development",
	"Blockchain",
	"Database Administration",
	"Network Administration",
	"UI/UX Design",
	"Game Development",
	"IoT (Internet of Things)",
	"Big Data",
	"Machine Learning",
	"IT Project Management",
	"IT Support and Helpdesk",
	"Systems Administration",
	"IT Consulting",
}

// Cities is the closed set of posting locations.
var Cities = []string{
	"Bengaluru", "Hyderabad", "Chennai", "Pune", "Mumbai", "Delhi", "Noida",
	"Gurgaon", "Kolkata", "Ahmedabad", "Chandigarh", "Jaipur", "Kochi",
	"Trivandrum", "Indore", "Nagpur", "Vadodara", "Coimbatore", "Mysore",
	"Visakhapatnam",
}

func ValidNiche(n string) bool {
	for _, v := range Niches {
		if v == n {
			return true
		}
	}
	return false
}

func ValidCity(c string) bool {
	for _, v := range Cities {
		if v == c {
			return true
		}
	}
	return false
}

// Resume is a reference to an uploaded file held by the storage provider.
type Resume struct {
	FileID   string `json:"fileId,omitempty"`
	URL      string `json:"url,omitempty"`
	FileName string `json:"fileName,omitempty"`
}

func (r Resume) Present() bool { return r.URL != "" }

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Phone    string `gorm:"not null" json:"phone"`
	Address  string `gorm:"not null" json:"address"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null" json:"role"`

	// Job-seeker only fields. Meaningless for employers.
	FirstNiche  string `json:"firstNiche,omitempty"`
	SecondNiche string `json:"secondNiche,omitempty"`
	ThirdNiche  string `json:"thirdNiche,omitempty"`
	CoverLetter string `gorm:"type:text" json:"coverLetter,omitempty"`
	Resume      Resume `gorm:"embedded;embeddedPrefix:resume_" json:"resume"`
}

type PersonalWebsite struct {
	Title string `gorm:"column:personal_website_title" json:"title,omitempty"`
	URL   string `gorm:"column:personal_website_url" json:"url,omitempty"`
}

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title                    string          `gorm:"not null" json:"title"`
	JobType                  string          `gorm:"not null" json:"jobType"`
	Location                 string          `gorm:"not null;index" json:"location"`
	CompanyName              string          `gorm:"not null" json:"companyName"`
	Introduction             string          `gorm:"type:text;not null" json:"introduction"`
	Responsibilities         string          `gorm:"type:text;not null" json:"responsibilities"`
	Qualifications           string          `gorm:"type:text;not null" json:"qualifications"`
	Offers                   string          `gorm:"type:text" json:"offers,omitempty"`
	JobNiche                 string          `gorm:"not null;index" json:"jobNiche"`
	Salary                   string          `gorm:"not null" json:"salary"`
	HiringMultipleCandidates string          `gorm:"default:'No'" json:"hiringMultipleCandidates"`
	PersonalWebsite          PersonalWebsite `gorm:"embedded" json:"personalWebsite"`

	PostedByID  uint      `gorm:"not null;index" json:"postedBy"`
	PostedBy    User      `gorm:"foreignKey:PostedByID" json:"-"`
	JobPostedOn time.Time `json:"jobPostedOn"`
}

// JobInfo is the point-in-time copy of the posting an application was
// submitted against. It is never re-read from the Job row.
type JobInfo struct {
	JobID    uint   `gorm:"column:job_id;not null;index" json:"jobId"`
	JobTitle string `gorm:"column:job_title;not null" json:"jobTitle"`
}

// SeekerInfo is the point-in-time copy of the applicant's profile. Later
// profile edits must not change it.
type SeekerInfo struct {
	SeekerID    uint   `gorm:"column:seeker_id;not null;index" json:"id"`
	Name        string `gorm:"column:seeker_name;not null" json:"name"`
	Email       string `gorm:"column:seeker_email;not null" json:"email"`
	Phone       string `gorm:"column:seeker_phone;not null" json:"phone"`
	Address     string `gorm:"column:seeker_address;not null" json:"address"`
	CoverLetter string `gorm:"column:seeker_cover_letter;type:text" json:"coverLetter"`
	Resume      Resume `gorm:"embedded;embeddedPrefix:seeker_resume_" json:"resume"`
}

type Application struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	JobInfo       JobInfo    `gorm:"embedded" json:"jobInfo"`
	JobSeekerInfo SeekerInfo `gorm:"embedded" json:"jobSeekerInfo"`

	// EmployerID is the owner of the job at submission time; gives the
	// employer side its view of received applications.
	EmployerID uint `gorm:"not null;index" json:"employerID"`
}
