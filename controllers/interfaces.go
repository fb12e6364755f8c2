package controllers

import (
	"ClassFeed/models"
	"ClassFeed/services"
	"context"
)

// MessageServiceInterface is the feed API the handlers depend on
type MessageServiceInterface interface {
	Visualisation(ctx context.Context, course, class, duration string) (services.Chart, error)
	CreateMessage(ctx context.Context, in services.CreateMessageInput) (*services.CreateMessageResult, error)
	LikeMessage(ctx context.Context, course string, messageID, userID uint) (models.Message, error)
	GetMessage(ctx context.Context, course string, id uint) (models.Message, error)
	ListRange(ctx context.Context, course, class string, start, end int) ([]models.Message, error)
	ListSummary(ctx context.Context, course, class string, start, end int) ([]models.Message, error)
	ListOwn(ctx context.Context, course, class string, userID uint) ([]models.Message, error)
	ListForTeacher(ctx context.Context, course, class string, teacherID uint) ([]models.Message, error)
	ListForAdmin(ctx context.Context, course, class string) ([]models.Message, error)
}
