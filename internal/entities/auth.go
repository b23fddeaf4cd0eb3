package entities

type LoginRequest struct {
	Email string `json:"email"`
	Clave string `json:"clave"`
}

type LoginResponse struct {
	Token   string       `json:"token"`
	Usuario UserResponse `json:"usuario"`
}

type RegisterRequest struct {
	Email         string `json:"email"`
	Nombre        string `json:"nombre"`
	Clave         string `json:"clave"`
	IDTipoUsuario int    `json:"idTipoUsuario"`
}
