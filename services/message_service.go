package services

import (
	"ClassFeed/metrics"
	"ClassFeed/models"
	"ClassFeed/repositories"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	// FeedLimit caps every list endpoint.
	FeedLimit = 100

	// MaxSummarySpan bounds the number of per-segment lookups in summary mode.
	MaxSummarySpan = 500

	// Segments and segment groups are stored in the int32 range.
	MinSegment = math.MinInt32
	MaxSegment = math.MaxInt32
)

func checkSegment(field string, value int) error {
	if value < MinSegment || value > MaxSegment {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be between %d and %d", MinSegment, MaxSegment)}
	}
	return nil
}

// CreateMessageInput carries a new message or reply from the request and
// the authenticated user.
type CreateMessageInput struct {
	Course       string
	UserID       uint
	Class        string
	Segment      int
	SegmentGroup int
	Text         string
	ReplyTo      *uint
	PostToSocial bool
}

type CreateMessageResult struct {
	Message         models.Message  `json:"message"`
	OriginalMessage *models.Message `json:"originalMessage,omitempty"`
}

type MessageService struct {
	MessageRepo   repositories.MessageRepository
	UserRepo      repositories.UserRepository
	ClassroomRepo repositories.ClassroomRepository
	Formatter     Formatter
	Poster        SocialPoster
	Notifier      Notifier

	// SocialEnabled switches the social platform integration process-wide.
	SocialEnabled bool
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	classroomRepo repositories.ClassroomRepository,
	formatter Formatter,
	poster SocialPoster,
	notifier Notifier,
	socialEnabled bool,
) *MessageService {
	return &MessageService{
		MessageRepo:   messageRepo,
		UserRepo:      userRepo,
		ClassroomRepo: classroomRepo,
		Formatter:     formatter,
		Poster:        poster,
		Notifier:      notifier,
		SocialEnabled: socialEnabled,
	}
}

// Visualisation counts the messages of a class per segment and formats them
// into bars of `duration` segments.
func (s *MessageService) Visualisation(ctx context.Context, course, class, duration string) (Chart, error) {
	counts, err := s.MessageRepo.CountBySegment(ctx, repositories.MessageFilter{Course: course, Class: class})
	if err != nil {
		return Chart{}, err
	}
	return s.Formatter.Format(counts, duration)
}

// CreateMessage stores a message, mirrors it to the social platform when
// asked to, links it to its parent when it is a reply and broadcasts it.
//
// The reply flow is two independent writes (text rewrite, then parent
// append). A failure between them leaves the reply stored without the
// parent pointing at it; nothing is rolled back.
func (s *MessageService) CreateMessage(ctx context.Context, in CreateMessageInput) (*CreateMessageResult, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if in.Class == "" {
		return nil, &ValidationError{Field: "currentClass", Reason: "must not be empty"}
	}
	if err := checkSegment("currentSegment", in.Segment); err != nil {
		return nil, err
	}
	if err := checkSegment("currentSegmentGroup", in.SegmentGroup); err != nil {
		return nil, err
	}

	// The reply target is resolved before anything is written.
	var parent *models.Message
	var parentAuthor *models.User
	if in.ReplyTo != nil {
		p, err := s.MessageRepo.FindByID(ctx, *in.ReplyTo)
		if err != nil {
			return nil, fmt.Errorf("reply target: %w", err)
		}
		if p.Course != in.Course {
			return nil, fmt.Errorf("reply target %d: %w", *in.ReplyTo, ErrNotFound)
		}
		parent = &p

		author, err := s.UserRepo.FindByID(ctx, p.UserID)
		switch {
		case err == nil:
			parentAuthor = &author
		case errors.Is(err, ErrNotFound):
			zap.L().Warn("reply target author missing", zap.Uint("message_id", p.ID), zap.Uint("user_id", p.UserID))
		default:
			return nil, err
		}
	}

	message := &models.Message{
		UserID:       in.UserID,
		ParentID:     in.ReplyTo,
		Course:       in.Course,
		Class:        in.Class,
		Segment:      in.Segment,
		SegmentGroup: in.SegmentGroup,
		Text:         in.Text,
		Tweeted:      in.PostToSocial,
	}

	zap.L().Debug("create message",
		zap.Uint("user_id", in.UserID),
		zap.String("class", in.Class),
		zap.Bool("post_to_social", in.PostToSocial),
		zap.Bool("social_enabled", s.SocialEnabled))

	if in.PostToSocial && s.SocialEnabled {
		if tweet := s.postToSocial(ctx, in.UserID, in.Text); tweet != nil {
			if raw, err := json.Marshal(tweet); err == nil {
				message.Tweet = raw
			}
		}
	}

	if err := s.MessageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	created, err := s.withTotal(ctx, message.ID)
	if err != nil {
		return nil, err
	}

	result := &CreateMessageResult{Message: created}

	if parent != nil {
		if handle := mentionFor(parentAuthor); handle != "" && !strings.Contains(created.Text, handle) {
			if err := s.MessageRepo.UpdateText(ctx, created.ID, handle+" "+created.Text); err != nil {
				return nil, fmt.Errorf("prefix reply handle: %w", err)
			}
		}
		if err := s.MessageRepo.AppendReply(ctx, parent.ID, created.ID); err != nil {
			return nil, fmt.Errorf("append reply to %d: %w", parent.ID, err)
		}

		reply, err := s.MessageRepo.FindByID(ctx, created.ID)
		if err != nil {
			return nil, err
		}
		reply.Total = created.Total
		result.Message = reply

		original, err := s.MessageRepo.FindByID(ctx, parent.ID)
		if err != nil {
			return nil, err
		}
		result.OriginalMessage = &original
		metrics.MessagesCreated.WithLabelValues("reply").Inc()
	} else {
		metrics.MessagesCreated.WithLabelValues("message").Inc()
	}

	s.broadcast(ctx, models.Event{Type: models.EventMessage, Course: in.Course, Class: in.Class, Data: result.Message})
	s.broadcast(ctx, models.Event{Type: models.EventVisualisation, Course: in.Course, Class: in.Class, Data: models.VisualisationUpdated})

	return result, nil
}

// LikeMessage appends a like by userID. Likes are not deduplicated: every
// call adds one entry.
func (s *MessageService) LikeMessage(ctx context.Context, course string, messageID, userID uint) (models.Message, error) {
	message, err := s.MessageRepo.FindByID(ctx, messageID)
	if err != nil {
		return models.Message{}, err
	}
	if message.Course != course {
		return models.Message{}, fmt.Errorf("message %d: %w", messageID, ErrNotFound)
	}

	if err := s.MessageRepo.AppendLike(ctx, messageID, userID); err != nil {
		return models.Message{}, err
	}
	metrics.LikesAdded.Inc()

	message, err = s.MessageRepo.FindByID(ctx, messageID)
	if err != nil {
		return models.Message{}, err
	}

	s.broadcast(ctx, models.Event{Type: models.EventLike, Course: message.Course, Class: message.Class, Data: message})
	return message, nil
}

// GetMessage returns a single message of the tenant.
func (s *MessageService) GetMessage(ctx context.Context, course string, id uint) (models.Message, error) {
	message, err := s.MessageRepo.FindByID(ctx, id)
	if err != nil {
		return models.Message{}, err
	}
	if message.Course != course {
		return models.Message{}, fmt.Errorf("message %d: %w", id, ErrNotFound)
	}
	return message, nil
}

// ParseSegmentRange validates the start and end path parameters.
func ParseSegmentRange(startParam, endParam string) (int, int, error) {
	start, err := strconv.Atoi(startParam)
	if err != nil {
		return 0, 0, &ValidationError{Field: "start", Reason: "must be an integer"}
	}
	end, err := strconv.Atoi(endParam)
	if err != nil {
		return 0, 0, &ValidationError{Field: "end", Reason: "must be an integer"}
	}
	if err := checkSegment("start", start); err != nil {
		return 0, 0, err
	}
	if err := checkSegment("end", end); err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, &ValidationError{Field: "end", Reason: "must not be before start"}
	}
	return start, end, nil
}

// ListRange returns up to FeedLimit top-level messages with
// start <= segment <= end, oldest first.
func (s *MessageService) ListRange(ctx context.Context, course, class string, start, end int) ([]models.Message, error) {
	return s.MessageRepo.ListTopLevelInRange(ctx, repositories.MessageFilter{Course: course, Class: class}, start, end, FeedLimit)
}

// ListSummary returns, for each segment in [start, end), the newest
// top-level message carrying the segment's total. Empty segments are left
// out, so the result is ordered by segment and has at most end-start entries.
func (s *MessageService) ListSummary(ctx context.Context, course, class string, start, end int) ([]models.Message, error) {
	// Unsigned so extreme bounds cannot overflow; end < start wraps to a
	// huge span and is rejected here too.
	if uint64(end)-uint64(start) > MaxSummarySpan {
		return nil, &ValidationError{Field: "end", Reason: fmt.Sprintf("summary spans at most %d segments", MaxSummarySpan)}
	}

	filter := repositories.MessageFilter{Course: course, Class: class}
	messages := make([]models.Message, 0, end-start)
	for segment := start; segment < end; segment++ {
		message, err := s.MessageRepo.LatestTopLevelInSegment(ctx, filter, segment)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		total, err := s.MessageRepo.CountInSegment(ctx, filter, segment)
		if err != nil {
			return nil, err
		}
		message.Total = total
		messages = append(messages, message)
	}
	return messages, nil
}

// ListOwn returns the user's own messages in a class, newest first.
func (s *MessageService) ListOwn(ctx context.Context, course, class string, userID uint) ([]models.Message, error) {
	return s.MessageRepo.ListByAuthors(ctx, repositories.MessageFilter{Course: course, Class: class}, []uint{userID}, FeedLimit)
}

// ListForTeacher returns messages written by the students on the teacher's
// roster for the class, newest first.
func (s *MessageService) ListForTeacher(ctx context.Context, course, class string, teacherID uint) ([]models.Message, error) {
	classroom, err := s.ClassroomRepo.FindForTeacher(ctx, course, class, teacherID)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("teacher %d has no classroom %s: %w", teacherID, class, ErrForbidden)
	}
	if err != nil {
		return nil, err
	}

	return s.MessageRepo.ListByAuthors(ctx, repositories.MessageFilter{Course: course, Class: class}, classroom.Students, FeedLimit)
}

// ListForAdmin returns every message in the class, newest first.
func (s *MessageService) ListForAdmin(ctx context.Context, course, class string) ([]models.Message, error) {
	return s.MessageRepo.ListByClass(ctx, repositories.MessageFilter{Course: course, Class: class}, FeedLimit)
}

// withTotal re-reads a stored message and attaches its segment total.
func (s *MessageService) withTotal(ctx context.Context, id uint) (models.Message, error) {
	message, err := s.MessageRepo.FindByID(ctx, id)
	if err != nil {
		return models.Message{}, err
	}

	total, err := s.MessageRepo.CountInSegment(ctx, repositories.MessageFilter{Course: message.Course, Class: message.Class}, message.Segment)
	if err != nil {
		return models.Message{}, err
	}
	message.Total = total
	return message, nil
}

func (s *MessageService) postToSocial(ctx context.Context, userID uint, text string) *models.Tweet {
	if s.Poster == nil {
		return nil
	}

	author, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		metrics.SocialPosts.WithLabelValues("failure").Inc()
		zap.L().Warn("social post skipped: author lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil
	}

	result := s.Poster.Post(ctx, author, text)
	if !result.OK() {
		metrics.SocialPosts.WithLabelValues("failure").Inc()
		zap.L().Warn("social post failed", zap.Uint("user_id", userID), zap.Error(result.Err))
		return nil
	}

	metrics.SocialPosts.WithLabelValues("success").Inc()
	zap.L().Info("social post succeeded", zap.Uint("user_id", userID), zap.String("tweet_id", result.Tweet.ID))
	return result.Tweet
}

func (s *MessageService) broadcast(ctx context.Context, event models.Event) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Publish(ctx, event); err != nil {
		zap.L().Warn("broadcast failed",
			zap.String("type", event.Type),
			zap.String("channel", event.ChannelKey()),
			zap.Error(err))
	}
}

func mentionFor(user *models.User) string {
	if user == nil {
		return ""
	}
	return user.TwitterHandle()
}
