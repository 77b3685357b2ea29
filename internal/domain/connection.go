package domain

import "time"

// MetaConnection é a credencial que liga um dono a uma identidade do Meta
type MetaConnection struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	MetaUserID     string     `json:"meta_user_id"`
	AccessToken    string     `json:"-"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type MetaUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MetaToken struct {
	AccessToken string
	ExpiresAt   *time.Time
}

type OAuthCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state,omitempty"`
}

type OAuthCallbackResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	MetaUser MetaUser `json:"meta_user"`
}

type OAuthURLResponse struct {
	URL string `json:"url"`
}
