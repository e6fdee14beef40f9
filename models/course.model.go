package models

import (
	"time"
)

// TrainingCourse is the root entity of the API. Name is unique across all
// courses; the unique index enforces it and handlers translate violations
// into 409 responses.
type TrainingCourse struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Name           string     `json:"name" gorm:"size:30;uniqueIndex;not null"`
	CreationDate   time.Time  `json:"creationdate" gorm:"autoCreateTime"`
	StartDate      *time.Time `json:"startdate"`
	EndDate        *time.Time `json:"enddate"`
	CourseDataJSON string     `json:"coursedatajson"` // opaque blob, stored and returned untouched
}

func (TrainingCourse) TableName() string {
	return "trainingcourses"
}
