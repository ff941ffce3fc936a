package dto

type RegisterStaffRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type StaffResponse struct {
	StaffID   string `json:"staffId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Online    bool   `json:"online"`
	CreatedAt string `json:"createdAt"`
}

type AuthResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken,omitempty"`
	Staff        StaffResponse `json:"staff"`
}

type MeResponse struct {
	Staff StaffResponse `json:"staff"`
}

type ListStaffResponse struct {
	Staff []StaffResponse `json:"staff"`
}

type SetPresenceRequest struct {
	Online bool `json:"online"`
}
