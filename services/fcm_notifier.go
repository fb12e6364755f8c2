package services

import (
	"ClassFeed/models"
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCM rejects data payloads over 4KB; larger events go out without payload
// and clients refetch.
const maxFCMPayload = 3 * 1024

var invalidTopicChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.~%]`)

type fcmSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMNotifier pushes feed events to the mobile apps subscribed to a class topic.
type FCMNotifier struct {
	client fcmSender
}

func NewFCMNotifier(client *messaging.Client) *FCMNotifier {
	return &FCMNotifier{client: client}
}

// ClassTopic is the FCM topic devices subscribe to for a class.
func ClassTopic(course, class string) string {
	return "classfeed-" + invalidTopicChars.ReplaceAllString(course, "_") + "-" + invalidTopicChars.ReplaceAllString(class, "_")
}

func (n *FCMNotifier) Publish(ctx context.Context, event models.Event) error {
	data := map[string]string{
		"type":   event.Type,
		"course": event.Course,
		"class":  event.Class,
	}

	payload, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("encode event data: %w", err)
	}
	if len(payload) <= maxFCMPayload {
		data["payload"] = string(payload)
	}

	topic := ClassTopic(event.Course, event.Class)
	id, err := n.client.Send(ctx, &messaging.Message{
		Data:  data,
		Topic: topic,
	})
	if err != nil {
		return fmt.Errorf("fcm send to %s: %w", topic, err)
	}

	zap.L().Debug("fcm event sent", zap.String("topic", topic), zap.String("type", event.Type), zap.String("id", id))
	return nil
}
