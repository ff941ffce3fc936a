package jwt

type Role int

const (
	RoleStaff Role = iota
)

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type RegisterStaff struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Staff struct {
	Id           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}
