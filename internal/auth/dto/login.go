package dto

type LoginInput struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	StayLoggedIn bool   `json:"stayLoggedIn"`
	DeviceID     string `json:"-"`
	IPAddress    string `json:"-"`
	UserAgent    string `json:"-"`
}
