package dto

// SignUpRequest represents the sign-up form
type SignUpRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Surname   string `json:"surname" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,password,max=72"`
	Birthdate string `json:"birthdate" validate:"required,datetime=2006-01-02"`
	City      string `json:"city" validate:"required,max=255"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionUser is the denormalized identity carried by a session
type SessionUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SessionResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"`
	User      SessionUser `json:"user"`
}
