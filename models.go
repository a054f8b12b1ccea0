package hobbies

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserStatus is the lifecycle status of a user account
type UserStatus = string

const (
	// UserStatusActive marks an account that can authenticate
	UserStatusActive UserStatus = "Active"
	// UserStatusInactive marks an account that is kept but cannot authenticate
	UserStatusInactive UserStatus = "Inactive"
)

// User is the user model
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role           UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	FirstName      string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName       string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Email          string     `bun:"email,notnull" json:"email,omitempty"`
	Phone          string     `bun:"phone_number" json:"phone_number,omitempty"`
	PasswordHash   string     `bun:"password_hash" json:"-"`
	Status         UserStatus `bun:"status,notnull" json:"status,omitempty"`
	Photo          string     `bun:"user_photo" json:"user_photo,omitempty"`
	LoginAttempts  int        `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt *time.Time `bun:"login_attempt_at" json:"login_attempt_at,omitempty"`
	LoggedInAt     *time.Time `bun:"loggedin_at" json:"loggedin_at,omitempty"`
	Hobbies        []*Hobby   `bun:"m2m:hobby_user,join:User=Hobby" json:"hobbies,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EnsureStatus backfills the status column for records created before the
// column existed.
func (u *User) EnsureStatus() {
	if u.Status == "" {
		u.Status = UserStatusActive
	}
}

// AsData flattens the user into the shape used as envelope data. The password
// hash never leaves the model.
func (u *User) AsData() map[string]any {
	data := map[string]any{
		"id":         u.ID.String(),
		"user_role":  string(u.Role),
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"status":     u.Status,
	}
	if u.Phone != "" {
		data["phone_number"] = u.Phone
	}
	if u.Photo != "" {
		data["user_photo"] = u.Photo
	}
	if u.CreatedAt != nil {
		data["created_at"] = u.CreatedAt
	}
	if u.UpdatedAt != nil {
		data["updated_at"] = u.UpdatedAt
	}
	return data
}

// Hobby is a named interest users can associate with
type Hobby struct {
	bun.BaseModel `bun:"table:hobbies,alias:hob"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull,unique" json:"name,omitempty"`
	Users         []*User    `bun:"m2m:hobby_user,join:Hobby=User" json:"users,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// UserHobby is the join model for the users<->hobbies relation. It carries no
// attributes of its own and must be registered with bun for the m2m relation
// to resolve.
type UserHobby struct {
	bun.BaseModel `bun:"table:hobby_user,alias:huj"`
	UserID        uuid.UUID `bun:"user_id,pk,type:uuid" json:"user_id,omitempty"`
	User          *User     `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	HobbyID       uuid.UUID `bun:"hobby_id,pk,type:uuid" json:"hobby_id,omitempty"`
	Hobby         *Hobby    `bun:"rel:belongs-to,join:hobby_id=id" json:"hobby,omitempty"`
}

// RevokedToken is the server-side denylist entry for a logged-out JWT. The ID
// is the token's jti claim. Signing alone cannot revoke, so logout records the
// token here and the middleware rejects it until it would have expired anyway.
type RevokedToken struct {
	bun.BaseModel `bun:"table:revoked_tokens,alias:rvt"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,type:uuid" json:"user_id,omitempty"`
	ExpiresAt     *time.Time `bun:"expires_at" json:"expires_at,omitempty"`
	RevokedAt     *time.Time `bun:"revoked_at,nullzero,default:current_timestamp" json:"revoked_at,omitempty"`
}
