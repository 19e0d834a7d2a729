package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
)

const (
	feedbackRateLimit   = 5
	feedbackRateWindow  = time.Hour
	feedbackDedupWindow = 24 * time.Hour
	maxReviewLength     = 1000
)

// FeedbackService defines the feedback operations used by the handler.
type FeedbackService interface {
	Submit(ctx context.Context, feedback *entities.Feedback) error
	List(ctx context.Context, serviceID, serviceType string, limit int) ([]*entities.Feedback, error)
}

// FeedbackHandler handles feedback submissions.
type FeedbackHandler struct {
	service FeedbackService
	cache   providers.CacheProvider
	local   *localRateLimiter
	deduper *localDeduper
}

// NewFeedbackHandler creates a new feedback handler. cache may be nil, in
// which case rate limiting and dedupe are kept in process.
func NewFeedbackHandler(service FeedbackService, cache providers.CacheProvider) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		cache:   cache,
		local:   newLocalRateLimiter(),
		deduper: newLocalDeduper(),
	}
}

type feedbackRequest struct {
	ServiceID   string `json:"serviceId"`
	ServiceType string `json:"serviceType"`
	UserID      string `json:"userId"`
	Rating      int    `json:"rating"`
	Review      string `json:"review"`
}

// SubmitFeedback handles POST /api/feedback
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var payload feedbackRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	payload.ServiceID = strings.TrimSpace(payload.ServiceID)
	payload.ServiceType = strings.TrimSpace(payload.ServiceType)
	payload.UserID = strings.TrimSpace(payload.UserID)
	payload.Review = strings.TrimSpace(payload.Review)

	if len(payload.Review) > maxReviewLength {
		respondWithError(w, http.StatusBadRequest, "review is too long")
		return
	}

	ip := clientIP(r)
	allowed, retryAfter := h.allowRequest(r.Context(), "feedback:rate:"+ip)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	if h.isDuplicate(r.Context(), "feedback:dup:"+feedbackFingerprint(payload, ip)) {
		respondWithJSON(w, http.StatusAccepted, map[string]interface{}{
			"ok":     true,
			"status": "duplicate_ignored",
		})
		return
	}

	feedback := &entities.Feedback{
		ServiceID:   payload.ServiceID,
		ServiceType: payload.ServiceType,
		UserID:      payload.UserID,
		Rating:      payload.Rating,
		Review:      payload.Review,
	}
	if err := h.service.Submit(r.Context(), feedback); err != nil {
		respondWithAppError(w, err, "failed to submit feedback")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"ok": true,
		"id": feedback.ID,
	})
}

// ListFeedback handles GET /api/feedback/{serviceId}/{serviceType}
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.service.List(r.Context(), r.PathValue("serviceId"), r.PathValue("serviceType"), queryInt(r, "limit", 0))
	if err != nil {
		respondWithAppError(w, err, "get feedback error")
		return
	}
	respondOK(w, map[string]interface{}{"feedback": feedback})
}

func (h *FeedbackHandler) allowRequest(ctx context.Context, key string) (bool, time.Duration) {
	if h.cache == nil {
		return h.local.allow(key, feedbackRateLimit, feedbackRateWindow)
	}

	state := rateLimitState{}
	if data, err := h.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}

	if state.Count >= feedbackRateLimit {
		return false, feedbackRateWindow
	}

	state.Count++
	data, _ := json.Marshal(state)
	_ = h.cache.Set(ctx, key, data, int(feedbackRateWindow.Seconds()))
	return true, feedbackRateWindow
}

type rateLimitState struct {
	Count int `json:"count"`
}

func (h *FeedbackHandler) isDuplicate(ctx context.Context, key string) bool {
	if h.cache == nil {
		return h.deduper.seen(key, feedbackDedupWindow)
	}

	exists, err := h.cache.Exists(ctx, key)
	if err == nil && exists {
		return true
	}

	_ = h.cache.Set(ctx, key, []byte("1"), int(feedbackDedupWindow.Seconds()))
	return false
}

type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

type localDeduper struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newLocalDeduper() *localDeduper {
	return &localDeduper{
		entries: make(map[string]time.Time),
	}
}

func (d *localDeduper) seen(key string, window time.Duration) bool {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if expiresAt, ok := d.entries[key]; ok && now.Before(expiresAt) {
		return true
	}

	d.entries[key] = now.Add(window)
	return false
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

func feedbackFingerprint(payload feedbackRequest, ip string) string {
	normalized := []string{
		payload.ServiceID,
		strings.ToLower(payload.ServiceType),
		payload.UserID,
		strconv.Itoa(payload.Rating),
		normalizeReview(payload.Review),
		ip,
	}

	hash := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(hash[:])
}

func normalizeReview(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return ""
	}
	return strings.Join(strings.Fields(trimmed), " ")
}
