package dto

type RefreshInput struct {
	RefreshToken string `json:"-"`
	DeviceID     string `json:"-"`
	IPAddress    string `json:"-"`
	UserAgent    string `json:"-"`
}
