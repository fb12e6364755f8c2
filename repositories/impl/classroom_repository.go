package impl

import (
	"ClassFeed/models"
	"ClassFeed/repositories"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type ClassroomRepositoryImpl struct {
	DB *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) repositories.ClassroomRepository {
	return &ClassroomRepositoryImpl{DB: db}
}

func (r *ClassroomRepositoryImpl) FindForTeacher(ctx context.Context, course, class string, teacherID uint) (models.Classroom, error) {
	var classroom models.Classroom
	err := r.DB.WithContext(ctx).
		Where("course = ? AND class = ? AND user_id = ?", course, class, teacherID).
		First(&classroom).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Classroom{}, fmt.Errorf("classroom %s/%s: %w", course, class, repositories.ErrNotFound)
	}
	if err != nil {
		return models.Classroom{}, err
	}
	return classroom, nil
}
