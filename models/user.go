package models

import (
	"strings"
	"time"
)

// User is a row of the "users" table.
//
// Passwords are stored in plain text: this template is a development
// scaffold and deliberately skips hashing. PasswordHash is retained only
// for compatibility with older test fixtures and is never read by the
// application itself.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FullName     *string    `json:"full_name,omitempty"`
	Password     string     `json:"-"`
	PasswordHash *string    `json:"-"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	AvatarURL    *string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// UserResponse is the wire representation of a user. It carries the same
// fields as [User] minus the credential columns.
type UserResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  *string    `json:"full_name"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	AvatarURL *string    `json:"avatar_url"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// NewUserResponse maps a database row to its wire representation.
func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserResponses maps a slice of rows, always returning a non-nil slice
// so that empty pages serialize as "[]" rather than "null".
func NewUserResponses(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, NewUserResponse(u))
	}
	return responses
}

// UserCreate is the request body of POST /api/v1/users/.
type UserCreate struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  *string `json:"full_name"`
	Password  string  `json:"password"`
	AvatarURL *string `json:"avatar_url"`
}

// Normalize lowercases the username and email the same way on every write
// path, so uniqueness checks compare canonical values.
func (c *UserCreate) Normalize() {
	c.Username = strings.ToLower(strings.TrimSpace(c.Username))
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
}

// Validate checks field-level constraints and returns one entry per
// violated rule. Password strength is a business rule and is checked
// separately by the service layer.
func (c *UserCreate) Validate() []ValidationError {
	var errs []ValidationError

	if len(c.Username) < 3 || len(c.Username) > 50 {
		errs = append(errs, ValidationError{Field: "username", Message: "username must be 3-50 characters long"})
	}
	if !isValidUsername(c.Username) {
		errs = append(errs, ValidationError{Field: "username", Message: "username can only contain letters, numbers, underscores, and hyphens"})
	}
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		errs = append(errs, ValidationError{Field: "email", Message: "email address is not valid"})
	}
	if len(c.Email) > 255 {
		errs = append(errs, ValidationError{Field: "email", Message: "email must be no more than 255 characters long"})
	}
	if c.FullName != nil && len(*c.FullName) > 100 {
		errs = append(errs, ValidationError{Field: "full_name", Message: "full name must be no more than 100 characters long"})
	}

	return errs
}

// UserUpdate is the request body of PUT /api/v1/users/{id}.
// Nil fields were absent from the request and must not be touched.
type UserUpdate struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FullName  *string `json:"full_name"`
	Password  *string `json:"password"`
	IsActive  *bool   `json:"is_active"`
	AvatarURL *string `json:"avatar_url"`
}

// IsEmpty reports whether no field is present in the update.
func (u *UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil && u.FullName == nil &&
		u.Password == nil && u.IsActive == nil && u.AvatarURL == nil
}

// Normalize lowercases username and email when they are present.
func (u *UserUpdate) Normalize() {
	if u.Username != nil {
		lowered := strings.ToLower(strings.TrimSpace(*u.Username))
		u.Username = &lowered
	}
	if u.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*u.Email))
		u.Email = &lowered
	}
}

// Validate checks field-level constraints on the fields that are present.
func (u *UserUpdate) Validate() []ValidationError {
	var errs []ValidationError

	if u.Username != nil {
		if len(*u.Username) < 3 || len(*u.Username) > 50 {
			errs = append(errs, ValidationError{Field: "username", Message: "username must be 3-50 characters long"})
		}
		if !isValidUsername(*u.Username) {
			errs = append(errs, ValidationError{Field: "username", Message: "username can only contain letters, numbers, underscores, and hyphens"})
		}
	}
	if u.Email != nil {
		if *u.Email == "" || !strings.Contains(*u.Email, "@") {
			errs = append(errs, ValidationError{Field: "email", Message: "email address is not valid"})
		}
		if len(*u.Email) > 255 {
			errs = append(errs, ValidationError{Field: "email", Message: "email must be no more than 255 characters long"})
		}
	}
	if u.FullName != nil && len(*u.FullName) > 100 {
		errs = append(errs, ValidationError{Field: "full_name", Message: "full name must be no more than 100 characters long"})
	}

	return errs
}

// UserLogin is the request body of POST /api/v1/users/login.
// Username accepts either the username or the email address.
type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func isValidUsername(username string) bool {
	if username == "" {
		return false
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
