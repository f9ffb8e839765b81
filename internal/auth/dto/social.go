package dto

type SocialLoginInput struct {
	Token        string `json:"token" validate:"required"`
	StayLoggedIn bool   `json:"stayLoggedIn"`
	DeviceID     string `json:"-"`
	IPAddress    string `json:"-"`
	UserAgent    string `json:"-"`
}
