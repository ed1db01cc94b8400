package dtos

// ApplyRequest is the seeker-supplied part of an application. The form is
// prefilled client-side from the profile but every value is snapshotted
// server-side at submission time. The resume file, if any, arrives in the
// multipart body alongside these fields.
type ApplyRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Email       string `json:"email" form:"email" binding:"required"`
	Phone       string `json:"phone" form:"phone" binding:"required"`
	Address     string `json:"address" form:"address" binding:"required"`
	CoverLetter string `json:"coverLetter" form:"coverLetter" binding:"required"`
}
