package dto

// RegisterRequest entrada para registro: crea la empresa y su primer usuario.
type RegisterRequest struct {
	CompanyName string `json:"company_name"`
	Login       string `json:"login"`
	Password    string `json:"password"`
}

// RegisterResponse salida del registro.
type RegisterResponse struct {
	CompanyID string `json:"company_id"`
	UserID    string `json:"user_id"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
}
