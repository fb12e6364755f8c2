package services

import (
	"ClassFeed/metrics"
	"ClassFeed/models"
	"context"
	"errors"
)

// Notifier delivers feed events to the subscribers of a class channel.
type Notifier interface {
	Publish(ctx context.Context, event models.Event) error
}

// MultiNotifier hands every event to each sink and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) Publish(ctx context.Context, event models.Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type instrumentedNotifier struct {
	sink string
	next Notifier
}

// Instrumented counts deliveries to next under the given sink label.
func Instrumented(sink string, next Notifier) Notifier {
	return &instrumentedNotifier{sink: sink, next: next}
}

func (n *instrumentedNotifier) Publish(ctx context.Context, event models.Event) error {
	err := n.next.Publish(ctx, event)
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.Broadcasts.WithLabelValues(n.sink, event.Type, result).Inc()
	return err
}
