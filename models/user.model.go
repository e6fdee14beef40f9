package models

import (
	"time"
)

// User can be enrolled in any number of courses through CourseUserRelation.
// IsAdmin is stored but carries no access-control behaviour.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"firstname" gorm:"size:30"`
	LastName     string    `json:"lastname" gorm:"size:30"`
	Email        string    `json:"email" gorm:"size:100"`
	IsAdmin      bool      `json:"isAdmin" gorm:"not null"`
	CreationDate time.Time `json:"creationdate" gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
