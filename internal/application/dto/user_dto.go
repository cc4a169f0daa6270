package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT y la primera sección permitida.
type LoginResponse struct {
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
	Landing string       `json:"landing"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	Username string   `json:"username"`
	Role     string   `json:"role"`
	Access   []string `json:"access"`
}

// SaveUserRequest alta o edición de un usuario (password en texto, se hashea en use case).
type SaveUserRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Role     string   `json:"role"`   // admin | user
	Access   []string `json:"access"` // requerido para role user
}
