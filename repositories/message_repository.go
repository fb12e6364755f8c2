package repositories

import (
	"ClassFeed/models"
	"context"
)

// MessageFilter scopes a feed query to a tenant and class.
type MessageFilter struct {
	Course string
	Class  string
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	FindByID(ctx context.Context, id uint) (models.Message, error)
	CountInSegment(ctx context.Context, filter MessageFilter, segment int) (int64, error)
	CountBySegment(ctx context.Context, filter MessageFilter) ([]models.SegmentCount, error)
	LatestTopLevelInSegment(ctx context.Context, filter MessageFilter, segment int) (models.Message, error)
	ListTopLevelInRange(ctx context.Context, filter MessageFilter, start, end, limit int) ([]models.Message, error)
	ListByAuthors(ctx context.Context, filter MessageFilter, userIDs []uint, limit int) ([]models.Message, error)
	ListByClass(ctx context.Context, filter MessageFilter, limit int) ([]models.Message, error)
	UpdateText(ctx context.Context, id uint, text string) error
	AppendReply(ctx context.Context, parentID, replyID uint) error
	AppendLike(ctx context.Context, messageID, userID uint) error
}
