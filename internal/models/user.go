package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProfile is the application-facing account record. Its ID is shared with
// the identity record (the auth user row in Postgres mode, the managed
// identity in BaaS mode) and is never reused.
type UserProfile struct {
	ID         string  `gorm:"primaryKey;type:uuid" json:"id"`
	Email      string  `gorm:"uniqueIndex;not null" json:"email"`
	FullName   *string `json:"full_name,omitempty"`
	Username   *string `gorm:"uniqueIndex" json:"username,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Country    *string `json:"country,omitempty"`
	Address    *string `json:"address,omitempty"`
	Occupation *string `json:"occupation,omitempty"`
	Experience *string `json:"experience,omitempty"`

	// Linked Telegram identity, populated by LinkTelegram.
	TelegramID        *int64  `gorm:"index" json:"telegram_id,omitempty"`
	TelegramUsername  *string `json:"telegram_username,omitempty"`
	TelegramFirstName *string `json:"telegram_first_name,omitempty"`
	TelegramLastName  *string `json:"telegram_last_name,omitempty"`
	TelegramPhotoURL  *string `json:"telegram_photo_url,omitempty"`

	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// ProfileUpdate carries a partial profile mutation. Only non-nil fields are
// written; both backends build their column or body list from Fields.
type ProfileUpdate struct {
	FullName   *string
	Username   *string
	Phone      *string
	Country    *string
	Address    *string
	Occupation *string
	Experience *string

	TelegramID        *int64
	TelegramUsername  *string
	TelegramFirstName *string
	TelegramLastName  *string
	TelegramPhotoURL  *string

	IsVerified *bool
}

// Fields returns the column-name keyed map of the supplied values. The keys
// double as PostgREST body keys on the managed backend.
func (u ProfileUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if u.FullName != nil {
		fields["full_name"] = *u.FullName
	}
	if u.Username != nil {
		fields["username"] = *u.Username
	}
	if u.Phone != nil {
		fields["phone"] = *u.Phone
	}
	if u.Country != nil {
		fields["country"] = *u.Country
	}
	if u.Address != nil {
		fields["address"] = *u.Address
	}
	if u.Occupation != nil {
		fields["occupation"] = *u.Occupation
	}
	if u.Experience != nil {
		fields["experience"] = *u.Experience
	}
	if u.TelegramID != nil {
		fields["telegram_id"] = *u.TelegramID
	}
	if u.TelegramUsername != nil {
		fields["telegram_username"] = *u.TelegramUsername
	}
	if u.TelegramFirstName != nil {
		fields["telegram_first_name"] = *u.TelegramFirstName
	}
	if u.TelegramLastName != nil {
		fields["telegram_last_name"] = *u.TelegramLastName
	}
	if u.TelegramPhotoURL != nil {
		fields["telegram_photo_url"] = *u.TelegramPhotoURL
	}
	if u.IsVerified != nil {
		fields["is_verified"] = *u.IsVerified
	}
	return fields
}

// AuthUser is the identity row owned by this layer when the Postgres backend
// is active. The BaaS backend has its own identity service and never touches
// this table.
type AuthUser struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	LastSignInAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (AuthUser) TableName() string { return "auth_users" }
