package models

// CourseMedia is an attachment belonging to at most one course. The owning
// reference is nullable: deleting a course keeps its media rows around with
// CourseID set to null.
type CourseMedia struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	URL      string `json:"url" gorm:"size:255"`
	Type     string `json:"type" gorm:"size:20"`
	CourseID *uint  `json:"courseid" gorm:"index"`
}

func (CourseMedia) TableName() string {
	return "coursemedias"
}
