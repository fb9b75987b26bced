package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a user entity.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Tokens       []string
	Following    []string
	Followers    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatchFields are the keys PATCH /users/me accepts.
var UserPatchFields = []string{"name", "email", "password"}

// RegisterRequest represents a sign-up request.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Normalize trims all fields and lowercases the email.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	r.Password = strings.TrimSpace(r.Password)
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Normalize trims and lowercases the email. The password is used as given.
func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

// UpdateUserRequest is a decoded PATCH /users/me body. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// Normalize trims the present fields and lowercases the email.
func (r *UpdateUserRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Email != nil {
		v := NormalizeEmail(*r.Email)
		r.Email = &v
	}
	if r.Password != nil {
		v := strings.TrimSpace(*r.Password)
		r.Password = &v
	}
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidID reports whether id is a well-formed entity id.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// RelationRef is one entry of a user's following or followers set.
type RelationRef struct {
	User string `json:"user"`
}

// UserResponse is a user in API responses. It never carries the password
// hash or session tokens.
type UserResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Following []RelationRef `json:"following"`
	Followers []RelationRef `json:"followers"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ToResponse converts User to UserResponse.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Following: toRefs(u.Following),
		Followers: toRefs(u.Followers),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toRefs(ids []string) []RelationRef {
	refs := make([]RelationRef, len(ids))
	for i, id := range ids {
		refs[i] = RelationRef{User: id}
	}
	return refs
}

// UserSummary is a populated reference to another user.
type UserSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ToSummary converts User to UserSummary.
func (u *User) ToSummary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// PopulatedRelation is a following or followers entry with the user resolved.
type PopulatedRelation struct {
	User UserSummary `json:"user"`
}

// AuthResponse is returned by sign-up and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// Profile is a user together with the posts they authored.
type Profile struct {
	User  UserResponse `json:"user"`
	Posts []Post       `json:"posts"`
}
