package auth

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the expired (or expiring) access token plus
// the opaque refresh token it was issued with. Both are required.
type RefreshTokenRequest struct {
	Token        string `json:"token" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse is the wire shape for every endpoint that can yield a token
// pair.
type AuthResponse struct {
	Token        string   `json:"token,omitempty"`
	RefreshToken string   `json:"refreshToken,omitempty"`
	Success      bool     `json:"success"`
	Errors       []string `json:"errors"`
}

// RegistrationResponse is the reduced shape for registration failures that
// never reach token issuance.
type RegistrationResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}
