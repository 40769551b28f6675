package models

import "time"

type Role string

const (
	RoleOrganization Role = "organization"
	RoleAdmin        Role = "admin"
)

type ContactType string

const (
	ContactEmail    ContactType = "email"
	ContactWhatsApp ContactType = "whatsapp"
	ContactLink     ContactType = "link"
)

type Contact struct {
	Type  ContactType `json:"type" validate:"required,contact_type"`
	Value string      `json:"value" validate:"required"`
}

// Organization is also the authentication principal. Admin accounts live in
// the same table with Role = admin.
type Organization struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string    `json:"name" gorm:"not null;default:''"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	EmailVerified bool      `json:"email_verified" gorm:"not null;default:false"`
	Image         *string   `json:"image"`
	Description   string    `json:"description" gorm:"default:''"`
	Contacts      []Contact `json:"contacts" gorm:"type:text;serializer:json"`
	Role          Role      `json:"role" gorm:"type:varchar(32);not null;default:'organization'"`
	IsFirstLogin  bool      `json:"is_first_login" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Events   []Event   `json:"-" gorm:"foreignKey:OrgID;constraint:OnDelete:CASCADE"`
	Sessions []Session `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Accounts []Account `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Organization) TableName() string { return "organizations" }

// OrganizationOption is the public projection used by the listing filters.
type OrganizationOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProvisionOrganizationRequest struct {
	Email        string `json:"email" validate:"required,email"`
	TempPassword string `json:"temp_password" validate:"omitempty,min=6"`
}

type ProvisionOrganizationResponse struct {
	Organization *Organization `json:"organization"`
	TempPassword string        `json:"temp_password"`
}

// UpdateOrganizationRequest lists every field editable through the profile
// path. Role, email and the first-login flag are not editable here.
type UpdateOrganizationRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	Image       *string    `json:"image"`
	Contacts    *[]Contact `json:"contacts" validate:"omitempty,dive"`
}
