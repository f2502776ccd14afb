package dto

type AuthResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
}
