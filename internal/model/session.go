package model

// Role is the backend's privilege level for a user.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// DefaultRole is assigned on registration when none is chosen.
const DefaultRole = RoleViewer

// User is the profile kept alongside the bearer token.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// Session pairs a user with its token. Both are set or both are empty.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Complete reports whether both halves of the session are present.
func (s Session) Complete() bool {
	return s.User != nil && s.Token != ""
}

// Empty reports whether neither half is present.
func (s Session) Empty() bool {
	return s.User == nil && s.Token == ""
}

// LoginRequest is posted to the backend login endpoint.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RegisterRequest is posted to the backend register endpoint.
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3"`
	Password string `json:"password" form:"password" validate:"required,min=5"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	FullName string `json:"fullName" form:"fullName" validate:"required"`
	Role     Role   `json:"role,omitempty" form:"role" validate:"omitempty,oneof=ADMIN EDITOR VIEWER"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	Token    string `json:"token" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// Session converts the response into a complete session.
func (r AuthResponse) Session() Session {
	return Session{
		Token: r.Token,
		User: &User{
			Username: r.Username,
			Email:    r.Email,
			FullName: r.FullName,
			Role:     r.Role,
		},
	}
}
