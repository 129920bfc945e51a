package models

import "time"

const (
	StatusPending          = "Pending"
	StatusAwaitingResponse = "Awaiting Response"
	StatusFiled            = "Filed"
	StatusOverdue          = "Overdue"
)

// ReturnsStatuses lists every filing status a record may carry. Manual
// override allows direct assignment to any of them.
func ReturnsStatuses() []string {
	return []string{StatusPending, StatusAwaitingResponse, StatusFiled, StatusOverdue}
}

func ValidReturnsStatus(status string) bool {
	for _, known := range ReturnsStatuses() {
		if known == status {
			return true
		}
	}
	return false
}

// Company is a single company/filing-year annual-returns entry.
type Company struct {
	ID              string    `gorm:"primaryKey"`
	CompanyName     string    `gorm:"not null"`
	AgentEmail      string    `gorm:"not null"`
	ClientEmail     string    `gorm:"not null"`
	FilingYear      int       `gorm:"not null"`
	ReturnsStatus   string    `gorm:"not null;default:Pending"`
	LastContactDate time.Time `gorm:"type:date;not null"`
	CreatedAt       time.Time `gorm:"not null"`
}
