package models

import (
	"time"
)

// CourseUserRelation is the enrollment join between courses and users.
// Completion score and date are reserved columns: no endpoint writes them.
type CourseUserRelation struct {
	CourseID              uint       `json:"courseid" gorm:"primaryKey;autoIncrement:false"`
	UserID                uint       `json:"userid" gorm:"primaryKey;autoIncrement:false"`
	AddedToCourse         time.Time  `json:"addedtocourse"`
	CanModify             bool       `json:"canModify"`
	CourseCompletionScore *int       `json:"courseCompletionScore"`
	CourseCompletionDate  *time.Time `json:"courseCompletionDate"`
}

func (CourseUserRelation) TableName() string {
	return "courseuserrelation"
}
