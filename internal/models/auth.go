package models

import "time"

const ProviderCredential = "credential"

type Session struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Session) TableName() string { return "sessions" }

// Account holds the credential for an organization. Only the email/password
// provider exists today.
type Account struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AccountID  string    `json:"account_id" gorm:"not null"`
	ProviderID string    `json:"provider_id" gorm:"not null"`
	UserID     string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Password   string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Principal is the caller of an action, resolved from a valid session.
type Principal struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	IsFirstLogin bool   `json:"is_first_login"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

func PrincipalOf(org *Organization) *Principal {
	return &Principal{
		ID:           org.ID,
		Email:        org.Email,
		Name:         org.Name,
		Role:         org.Role,
		IsFirstLogin: org.IsFirstLogin,
	}
}

type SignUpInput struct {
	Email        string
	Password     string
	Name         string
	Role         Role
	Description  string
	IsFirstLogin bool
}

type SessionMeta struct {
	IPAddress string
	UserAgent string
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *Organization `json:"user"`
	// Page the client should open next.
	Redirect string `json:"redirect"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

const ErrCodeInvalidCurrentPassword = "INVALID_CURRENT_PASSWORD"

// ChangePasswordResult reports the user-correctable failure of a wrong
// current password without turning it into an error.
type ChangePasswordResult struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}
