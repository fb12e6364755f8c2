package repositories

import (
	"ClassFeed/models"
	"context"
)

type ClassroomRepository interface {
	FindForTeacher(ctx context.Context, course, class string, teacherID uint) (models.Classroom, error)
}
