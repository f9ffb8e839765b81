package dto

type ProfileOutput struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profilePicture"`
}

type UpdateProfilePictureInput struct {
	ProfilePicture string `json:"profilePicture"`
}

type CheckOutput struct {
	IsAuthenticated bool `json:"isAuthenticated"`
}
