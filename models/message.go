package models

import (
	"time"

	"gorm.io/datatypes"
)

// Event names broadcast on a class channel
const (
	EventMessage       = "message"
	EventLike          = "like"
	EventVisualisation = "visualisation"

	VisualisationUpdated = "Updated"
)

// Message is a post in a class feed. Segment orders messages into time
// buckets within a class session and never changes after creation.
type Message struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UserID       uint           `gorm:"column:user_id;not null;index" json:"user_id"`
	User         *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ParentID     *uint          `gorm:"column:parent_id;index" json:"parent,omitempty"`
	Replies      []MessageReply `gorm:"foreignKey:MessageID" json:"replies"`
	Likes        []MessageLike  `gorm:"foreignKey:MessageID" json:"likes"`
	Course       string         `gorm:"column:course;index:idx_feed,priority:1" json:"course"`
	Class        string         `gorm:"column:class;index:idx_feed,priority:2" json:"class"`
	Segment      int            `gorm:"column:segment;index:idx_feed,priority:3" json:"segment"`
	SegmentGroup int            `gorm:"column:segment_group" json:"segmentGroup"`
	Text         string         `gorm:"column:text" json:"text"`
	Tweeted      bool           `gorm:"column:tweeted" json:"tweeted"`
	Tweet        datatypes.JSON `gorm:"column:tweet" json:"tweet,omitempty"`
	Created      time.Time      `gorm:"column:created;autoCreateTime;index" json:"created"`

	// Count of messages in the same (course, class, segment); computed per read.
	Total int64 `gorm:"-" json:"total,omitempty"`
}

// IsReply reports whether the message answers another one.
func (m *Message) IsReply() bool {
	return m.ParentID != nil
}

// MessageReply links a parent message to one of its replies. Rows are
// append-only and read back in insertion order.
type MessageReply struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	MessageID uint      `gorm:"column:message_id;not null;index" json:"-"`
	ReplyID   uint      `gorm:"column:reply_id;not null" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageLike records one like. The same user may appear more than once.
type MessageLike struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	MessageID uint      `gorm:"column:message_id;not null;index" json:"-"`
	UserID    uint      `gorm:"column:user_id;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SegmentCount is one row of the per-segment aggregation.
type SegmentCount struct {
	Segment int   `json:"segment"`
	Count   int64 `json:"count"`
}

// Tweet is the part of the social platform response kept with a message.
type Tweet struct {
	ID   string `json:"id_str"`
	Text string `json:"text"`
}
