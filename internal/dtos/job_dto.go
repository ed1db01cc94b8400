package dtos

type PostJobRequest struct {
	Title            string `json:"title" form:"title" binding:"required"`
	JobType          string `json:"jobType" form:"jobType" binding:"required"`
	Location         string `json:"location" form:"location" binding:"required"`
	CompanyName      string `json:"companyName" form:"companyName" binding:"required"`
	Introduction     string `json:"introduction" form:"introduction" binding:"required"`
	Responsibilities string `json:"responsibilities" form:"responsibilities" binding:"required"`
	Qualifications   string `json:"qualifications" form:"qualifications" binding:"required"`
	JobNiche         string `json:"jobNiche" form:"jobNiche" binding:"required"`
	Salary           string `json:"salary" form:"salary" binding:"required"`

	// Optional fields
	Offers                   string `json:"offers" form:"offers"`
	HiringMultipleCandidates string `json:"hiringMultipleCandidates" form:"hiringMultipleCandidates"`
	PersonalWebsiteTitle     string `json:"personalWebsiteTitle" form:"personalWebsiteTitle"`
	PersonalWebsiteURL       string `json:"personalWebsiteUrl" form:"personalWebsiteUrl"`
}

// JobFilter is the public listing filter; empty fields match everything.
type JobFilter struct {
	City    string `form:"city"`
	Niche   string `form:"niche"`
	Keyword string `form:"keyword"`
}

type ExtractJobRequest struct {
	RawText string `json:"raw_text" binding:"required"`
}
