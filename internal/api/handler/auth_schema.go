package handler

import (
	"github.com/ucetportal/campus-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=student alumni admin"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// loginRequest accepts the identifier under either key: "identifier" matches
// username or email, "email" is kept for the older login form.
type loginRequest struct {
	Identifier string `json:"identifier" validate:"required_without=Email"`
	Email      string `json:"email"      validate:"required_without=Identifier"`
	Password   string `json:"password"   validate:"required"`
	Role       string `json:"role"       validate:"omitempty,oneof=student alumni admin"`
}

func (r loginRequest) identifier() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	return r.Email
}

type loginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type listUsersResponse struct {
	Users []ports.UserSummary `json:"users"`
}
