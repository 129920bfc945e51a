package models

import "time"

const (
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

const (
	PermissionCreateUsers         = "CREATE_USERS"
	PermissionDeleteUsers         = "DELETE_USERS"
	PermissionCreateCompanyRecord = "CREATE_COMPANY_RECORD"
	PermissionDeleteCompanyRecord = "DELETE_COMPANY_RECORDS"
	PermissionViewAllRecords      = "VIEW_ALL_RECORDS"
)

// Challenge is a pending second-factor code bound to a user. The zero value
// means no challenge is outstanding.
type Challenge struct {
	Code      string    `gorm:"column:code"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
}

func (challenge Challenge) Pending() bool {
	return challenge.Code != ""
}

type User struct {
	ID           string    `gorm:"primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:agent"`
	Permissions  []string  `gorm:"serializer:json"`
	Challenge    Challenge `gorm:"embedded;embeddedPrefix:challenge_"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (user User) HasPermission(permission string) bool {
	for _, granted := range user.Permissions {
		if granted == permission {
			return true
		}
	}
	return false
}

// Redacted strips the hashed secret and any transient challenge state before
// the user leaves the service layer.
func (user User) Redacted() User {
	user.PasswordHash = ""
	user.Challenge = Challenge{}
	return user
}

// AgentDefaultPermissions is the fixed capability set granted at self-service
// registration.
func AgentDefaultPermissions() []string {
	return []string{PermissionViewAllRecords}
}
