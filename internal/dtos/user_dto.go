package dtos

// Register and profile-update requests arrive as multipart form data when a
// resume file rides along, JSON otherwise, so every field carries both tags.

type RegisterRequest struct {
	Role     string `json:"role" form:"role" binding:"required"`
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Phone    string `json:"phone" form:"phone" binding:"required"`
	Address  string `json:"address" form:"address" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`

	// Job-seeker only
	FirstNiche  string `json:"firstNiche" form:"firstNiche"`
	SecondNiche string `json:"secondNiche" form:"secondNiche"`
	ThirdNiche  string `json:"thirdNiche" form:"thirdNiche"`
	CoverLetter string `json:"coverLetter" form:"coverLetter"`
}

type LoginRequest struct {
	Role     string `json:"role" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest fields are all optional; only non-empty values are
// applied so a partial update leaves the rest of the profile untouched.
type UpdateProfileRequest struct {
	Name        string `json:"name" form:"name"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
	Address     string `json:"address" form:"address"`
	FirstNiche  string `json:"firstNiche" form:"firstNiche"`
	SecondNiche string `json:"secondNiche" form:"secondNiche"`
	ThirdNiche  string `json:"thirdNiche" form:"thirdNiche"`
	CoverLetter string `json:"coverLetter" form:"coverLetter"`
}

type UpdatePasswordRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}
