package model

import (
	"time"

	"marketapi/internal/query"
	"marketapi/internal/repository"
)

// User is an account identified by a unique email. The credential is stored
// hashed; the plaintext never reaches the model.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Name           string    `json:"name"`
	Phone          *string   `json:"phone,omitempty"`
	IsVerified     bool      `json:"is_verified"`
	RoleID         int64     `json:"role_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserRegister is the validated registration payload.
type UserRegister struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
}

// UserUpdate serves both full updates and sparse patches. Credentials are not
// editable through this path.
type UserUpdate struct {
	Email      *string `json:"email"`
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	IsVerified *bool   `json:"is_verified"`
}

// EditFields implements repository.FieldSource.
func (u UserUpdate) EditFields(excludeUnset bool) repository.Fields {
	f := repository.Fields{}
	if !excludeUnset || u.Email != nil {
		f["email"] = query.Value(u.Email)
	}
	if !excludeUnset || u.Name != nil {
		f["name"] = query.Value(u.Name)
	}
	if !excludeUnset || u.Phone != nil {
		f["phone"] = query.Value(u.Phone)
	}
	if !excludeUnset || u.IsVerified != nil {
		f["is_verified"] = query.Value(u.IsVerified)
	}
	return f
}
