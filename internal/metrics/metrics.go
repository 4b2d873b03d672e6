package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RequestErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_request_errors_total",
		Help: "HTTP requests answered with an error status",
	}, []string{"method", "route", "status"})

	PostsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "posts_created_total",
		Help: "Total posts successfully created",
	})

	CommentsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "comments_created_total",
		Help: "Total comments and replies successfully created",
	})

	LikesGiven = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "likes_given_total",
		Help: "Total like toggles that added a like",
	})

	SigninFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signin_failure_total",
		Help: "Total failed sign-in attempts",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RequestErrors)
	prometheus.MustRegister(PostsCreated)
	prometheus.MustRegister(CommentsCreated)
	prometheus.MustRegister(LikesGiven)
	prometheus.MustRegister(SigninFailure)
}
