package impl

import (
	"ClassFeed/models"
	"ClassFeed/repositories"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepositoryImpl {
	return &MessageRepositoryImpl{DB: db}
}

func (r *MessageRepositoryImpl) scoped(ctx context.Context, filter repositories.MessageFilter) *gorm.DB {
	return r.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("course = ? AND class = ?", filter.Course, filter.Class)
}

// withAssociations loads everything a client renders for a message.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Likes", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *models.Message) error {
	return r.DB.WithContext(ctx).Omit("User", "Replies", "Likes").Create(message).Error
}

func (r *MessageRepositoryImpl) FindByID(ctx context.Context, id uint) (models.Message, error) {
	var message models.Message
	err := withAssociations(r.DB.WithContext(ctx)).First(&message, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Message{}, fmt.Errorf("message %d: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return models.Message{}, err
	}
	return message, nil
}

func (r *MessageRepositoryImpl) CountInSegment(ctx context.Context, filter repositories.MessageFilter, segment int) (int64, error) {
	var count int64
	err := r.scoped(ctx, filter).
		Where("segment = ?", segment).
		Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) CountBySegment(ctx context.Context, filter repositories.MessageFilter) ([]models.SegmentCount, error) {
	var counts []models.SegmentCount
	err := r.scoped(ctx, filter).
		Select("segment, COUNT(*) AS count").
		Group("segment").
		Order("segment ASC").
		Scan(&counts).Error
	return counts, err
}

func (r *MessageRepositoryImpl) LatestTopLevelInSegment(ctx context.Context, filter repositories.MessageFilter, segment int) (models.Message, error) {
	var message models.Message
	err := withAssociations(r.scoped(ctx, filter)).
		Where("segment = ? AND parent_id IS NULL", segment).
		Order("created DESC").
		Order("id DESC").
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Message{}, fmt.Errorf("segment %d: %w", segment, repositories.ErrNotFound)
	}
	if err != nil {
		return models.Message{}, err
	}
	return message, nil
}

func (r *MessageRepositoryImpl) ListTopLevelInRange(ctx context.Context, filter repositories.MessageFilter, start, end, limit int) ([]models.Message, error) {
	var messages []models.Message
	query := withAssociations(r.scoped(ctx, filter)).
		Where("parent_id IS NULL").
		Where("segment >= ? AND segment <= ?", start, end).
		Order("created ASC").
		Order("id ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) ListByAuthors(ctx context.Context, filter repositories.MessageFilter, userIDs []uint, limit int) ([]models.Message, error) {
	messages := []models.Message{}
	if len(userIDs) == 0 {
		return messages, nil
	}

	query := withAssociations(r.scoped(ctx, filter)).
		Where("user_id IN ?", userIDs).
		Order("created DESC").
		Order("id DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) ListByClass(ctx context.Context, filter repositories.MessageFilter, limit int) ([]models.Message, error) {
	var messages []models.Message
	query := withAssociations(r.scoped(ctx, filter)).
		Order("created DESC").
		Order("id DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) UpdateText(ctx context.Context, id uint, text string) error {
	result := r.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Update("text", text)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("message %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

// AppendReply and AppendLike are single inserts, so concurrent appends
// never lose each other.
func (r *MessageRepositoryImpl) AppendReply(ctx context.Context, parentID, replyID uint) error {
	return r.DB.WithContext(ctx).Create(&models.MessageReply{
		MessageID: parentID,
		ReplyID:   replyID,
	}).Error
}

func (r *MessageRepositoryImpl) AppendLike(ctx context.Context, messageID, userID uint) error {
	return r.DB.WithContext(ctx).Create(&models.MessageLike{
		MessageID: messageID,
		UserID:    userID,
	}).Error
}
