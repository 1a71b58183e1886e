package dto

type LoginURLResponse struct {
	Url string `json:"url"`
}

type AuthTokenResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}
