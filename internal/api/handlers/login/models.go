package login

// LoginRequest HTTP request model
type LoginRequest struct {
	Username string `json:"username" validate:"notblank,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}
