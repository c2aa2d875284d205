package model

type User struct {
	ID      int64  `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Role    string `json:"role" yaml:"role"`
	Company string `json:"company" yaml:"company"`
}

// AuthResponse is returned by the login endpoint.
type AuthResponse struct {
	Token string `json:"token"`
	Type  string `json:"type"`
	User  User   `json:"user"`
}
