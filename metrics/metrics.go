package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classfeed_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "classfeed_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route"},
	)

	// Feed metrics
	MessagesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classfeed_messages_created_total",
			Help: "Total messages created",
		},
		[]string{"kind"}, // "message" or "reply"
	)

	LikesAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "classfeed_likes_total",
			Help: "Total likes appended",
		},
	)

	SocialPosts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classfeed_social_posts_total",
			Help: "Social platform posts by result",
		},
		[]string{"result"}, // "success" or "failure"
	)

	Broadcasts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classfeed_broadcasts_total",
			Help: "Events handed to a realtime sink",
		},
		[]string{"sink", "event", "result"},
	)

	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "classfeed_websocket_clients",
			Help: "Currently connected websocket clients",
		},
	)
)
