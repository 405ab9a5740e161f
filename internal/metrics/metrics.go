// Package metrics holds the process-wide Prometheus collectors.
//
// Collectors register with the default registry on import; the HTTP server
// exposes them on /metrics through promhttp.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Quiz
	QuizSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviequiz_quiz_submissions_total",
			Help: "Total number of scored quiz submissions",
		},
		[]string{"difficulty"},
	)

	QuizScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moviequiz_quiz_score_points",
			Help:    "Distribution of quiz scores",
			Buckets: []float64{0, 100, 200, 300, 400, 600, 800, 1100},
		},
	)

	// Achievements
	AchievementGrants = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviequiz_achievement_grants_total",
			Help: "Achievement grant attempts by code and result",
		},
		[]string{"code", "result"}, // result: granted, already_granted
	)

	// Question generation
	QuestionsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviequiz_questions_generated_total",
			Help: "Generated questions that passed validation",
		},
	)

	QuestionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviequiz_questions_rejected_total",
			Help: "Generated questions dropped by validation",
		},
		[]string{"validator"},
	)

	// LLM
	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviequiz_llm_requests_total",
			Help: "LLM provider calls by provider and status",
		},
		[]string{"provider", "status"},
	)

	LLMTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviequiz_llm_tokens_total",
			Help: "Tokens consumed by LLM calls",
		},
		[]string{"provider", "direction"}, // direction: input, output
	)

	LLMBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moviequiz_llm_breaker_state",
			Help: "Circuit breaker state per provider (0 closed, 1 half-open, 2 open)",
		},
		[]string{"provider"},
	)

	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviequiz_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviequiz_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordSubmission records a scored quiz.
func RecordSubmission(difficulty string, score int) {
	QuizSubmissions.WithLabelValues(difficulty).Inc()
	QuizScore.Observe(float64(score))
}

// RecordGrant records the outcome of one grant attempt.
func RecordGrant(code, result string) {
	AchievementGrants.WithLabelValues(code, result).Inc()
}

// RecordGeneration records a validated generation batch.
func RecordGeneration(accepted int, rejectedBy map[string]int) {
	QuestionsGenerated.Add(float64(accepted))
	for validator, n := range rejectedBy {
		QuestionsRejected.WithLabelValues(validator).Add(float64(n))
	}
}

// RecordLLMRequest records a provider call.
func RecordLLMRequest(provider string, success bool, inputTokens, outputTokens int) {
	status := "success"
	if !success {
		status = "error"
	}
	LLMRequests.WithLabelValues(provider, status).Inc()
	if inputTokens > 0 {
		LLMTokens.WithLabelValues(provider, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		LLMTokens.WithLabelValues(provider, "output").Add(float64(outputTokens))
	}
}

// RecordHTTPRequest records a served request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
