package auth

import (
	"strings"
	"unicode"

	"github.com/staffdir/employee-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	if r.Username == "" {
		errs = errs.Add("username", validator.CodeRequired, "username is required")
	}
	if r.Password == "" {
		errs = errs.Add("password", validator.CodeRequired, "password is required")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // defaults to employee
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	if n := len(r.Username); n < 3 || n > 50 {
		errs = errs.Add("username", validator.CodeOutOfRange, "username must be 3-50 characters")
	}
	if !validator.IsValidEmail(r.Email) {
		errs = errs.Add("email", validator.CodePattern, "invalid email address")
	}
	errs = append(errs, checkPasswordStrength(r.Password)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Passwords need at least 8 characters with one lowercase, one uppercase and
// one digit.
func checkPasswordStrength(password string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if len(password) < 8 {
		return errs.Add("password", validator.CodeTooShort, "password must be at least 8 characters long")
	}
	var hasLower, hasUpper, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit {
		errs = errs.Add("password", validator.CodePattern, "password must contain a lowercase letter, an uppercase letter and a digit")
	}
	return errs
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	TokenType    string `json:"token_type"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
