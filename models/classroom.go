package models

import "gorm.io/datatypes"

// Classroom ties a teacher to the roster of a class in a course.
type Classroom struct {
	ID       uint                      `json:"id" gorm:"primary_key"`
	Course   string                    `json:"course" gorm:"index:idx_classroom_owner"`
	Class    string                    `json:"class" gorm:"index:idx_classroom_owner"`
	UserID   uint                      `json:"user_id" gorm:"index:idx_classroom_owner"`
	Students datatypes.JSONSlice[uint] `json:"students"`
}
