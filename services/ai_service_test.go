package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iCodeLakshay/fit-tracker-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// geminiStub fakes the generation endpoint and records what it receives.
type geminiStub struct {
	status  int
	body    string
	calls   int
	prompts []string
}

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(b)
}

func (g *geminiStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g.calls++
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil &&
			len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			g.prompts = append(g.prompts, req.Contents[0].Parts[0].Text)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(g.status)
		fmt.Fprint(w, g.body)
	}
}

func newStubbedAI(t *testing.T, db *gorm.DB, stub *geminiStub) *AIService {
	t.Helper()
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	svc := NewAIService(db, "test-api-key", "gemini-2.0-flash-exp")
	svc.baseURL = server.URL
	return svc
}

func TestSendMessage_NotConfigured(t *testing.T) {
	svc := NewAIService(newTestDB(t), "", "gemini-2.0-flash-exp")

	_, err := svc.SendMessage(1, "hello", nil)
	assert.ErrorIs(t, err, ErrAINotConfigured)
}

func TestSendMessage_EmptyMessageShortCircuits(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice", "alice@example.com")
	stub := &geminiStub{status: http.StatusOK, body: candidateBody("hi")}
	svc := newStubbedAI(t, db, stub)

	_, err := svc.SendMessage(1, "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, stub.calls, "empty message must not reach the upstream")
}

func TestSendMessage_UnknownUser(t *testing.T) {
	stub := &geminiStub{status: http.StatusOK, body: candidateBody("hi")}
	svc := newStubbedAI(t, newTestDB(t), stub)

	_, err := svc.SendMessage(999, "hello", nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Zero(t, stub.calls)
}

func TestSendMessage_GroundsPromptInProfileAndWorkouts(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice", "alice@example.com")
	require.NoError(t, db.Model(user).Updates(map[string]any{"weight": 70.0, "height": 175.0, "bmi": 22.9}).Error)

	workouts := NewWorkoutService(db)
	w := newWorkout(user.ID, "Bench Press")
	require.NoError(t, workouts.Create(w))

	stub := &geminiStub{status: http.StatusOK, body: candidateBody("Nice bench!")}
	svc := newStubbedAI(t, db, stub)

	reply, err := svc.SendMessage(user.ID, "How do I progress?", nil)
	require.NoError(t, err)

	assert.Equal(t, "Nice bench!", reply.Response)
	assert.WithinDuration(t, time.Now(), reply.Timestamp, time.Minute)

	require.Len(t, stub.prompts, 1)
	prompt := stub.prompts[0]
	assert.Contains(t, prompt, "- Username: alice")
	assert.Contains(t, prompt, "- Weight: 70 kg")
	assert.Contains(t, prompt, "1. Bench Press (Chest) - 3 sets x 10 reps @ 60kg")
	assert.Contains(t, prompt, "User's message: How do I progress?")
	assert.NotContains(t, prompt, "No workouts logged yet")
}

func TestSendMessage_NoWorkoutsLine(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice", "alice@example.com")

	stub := &geminiStub{status: http.StatusOK, body: candidateBody("ok")}
	svc := newStubbedAI(t, db, stub)

	_, err := svc.SendMessage(user.ID, "hello", nil)
	require.NoError(t, err)

	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "- No workouts logged yet.")
}

func TestSendMessage_HistoryBoundedToFiveTurns(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice", "alice@example.com")

	var history []ChatMessage
	for i := 1; i <= 7; i++ {
		history = append(history, ChatMessage{Sender: "user", Content: fmt.Sprintf("turn-%d", i)})
	}

	stub := &geminiStub{status: http.StatusOK, body: candidateBody("ok")}
	svc := newStubbedAI(t, db, stub)

	_, err := svc.SendMessage(user.ID, "latest", history)
	require.NoError(t, err)

	prompt := stub.prompts[0]
	assert.NotContains(t, prompt, "turn-1")
	assert.NotContains(t, prompt, "turn-2")
	assert.Contains(t, prompt, "turn-3")
	assert.Contains(t, prompt, "turn-7")
	assert.Contains(t, prompt, "Previous conversation context:")
	assert.Contains(t, prompt, "\nUser: latest")
}

func TestSendMessage_EmptyCandidatesFallbackText(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice", "alice@example.com")

	stub := &geminiStub{status: http.StatusOK, body: `{"candidates":[]}`}
	svc := newStubbedAI(t, db, stub)

	reply, err := svc.SendMessage(user.ID, "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I couldn't generate a response.", reply.Response)
}

func TestSendMessage_UpstreamAuthErrors(t *testing.T) {
	for _, body := range []string{
		`{"error":{"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`,
		`{"error":{"message":"permission denied for generative model","status":"PERMISSION_DENIED"}}`,
	} {
		db := newTestDB(t)
		user := createTestUser(t, db, "alice", "alice@example.com")

		stub := &geminiStub{status: http.StatusForbidden, body: body}
		svc := newStubbedAI(t, db, stub)

		_, err := svc.SendMessage(user.ID, "hello", nil)
		assert.ErrorIs(t, err, ErrUpstreamAuth)
	}
}

func TestSendMessage_UpstreamQuotaError(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice", "alice@example.com")

	stub := &geminiStub{
		status: http.StatusTooManyRequests,
		body:   `{"error":{"message":"Resource has been exhausted (e.g. check quota).","status":"RESOURCE_EXHAUSTED"}}`,
	}
	svc := newStubbedAI(t, db, stub)

	_, err := svc.SendMessage(user.ID, "hello", nil)
	assert.ErrorIs(t, err, ErrUpstreamQuota)
}

func TestSendMessage_OtherUpstreamErrorPropagates(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice", "alice@example.com")

	stub := &geminiStub{status: http.StatusInternalServerError, body: `{"error":{"message":"backend blew up"}}`}
	svc := newStubbedAI(t, db, stub)

	_, err := svc.SendMessage(user.ID, "hello", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstreamAuth)
	assert.NotErrorIs(t, err, ErrUpstreamQuota)
	assert.Contains(t, err.Error(), "backend blew up")
}

func TestGetSuggestions_ParsesQuotedLines(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice", "alice@example.com")

	text := "\"How can I improve my squat form?\"\n" +
		"\"What's a good post-workout meal for me?\"\n" +
		"\n" +
		"\"Can you suggest a 3-day workout split?\"\n" +
		"\"How do I stay motivated?\"\n" +
		"\"A fifth question that must be dropped\""
	stub := &geminiStub{status: http.StatusOK, body: candidateBody(text)}
	svc := newStubbedAI(t, db, stub)

	result := svc.GetSuggestions(user.ID)
	assert.False(t, result.Fallback)
	require.Len(t, result.Suggestions, 4)
	assert.Equal(t, "How can I improve my squat form?", result.Suggestions[0])
	assert.Equal(t, "How do I stay motivated?", result.Suggestions[3])
	for _, s := range result.Suggestions {
		assert.NotContains(t, s, `"`)
	}
}

func TestGetSuggestions_UnknownUserGetsGenericList(t *testing.T) {
	stub := &geminiStub{status: http.StatusOK, body: candidateBody("unused")}
	svc := newStubbedAI(t, newTestDB(t), stub)

	result := svc.GetSuggestions(999)
	assert.True(t, result.Fallback)
	assert.Equal(t, "user not found", result.Reason)
	assert.Len(t, result.Suggestions, 4)
	assert.Zero(t, stub.calls, "unknown user never reaches the upstream")
}

func TestGetSuggestions_UpstreamFailureFallsBack(t *testing.T) {
	db := newTestDB(t)
	// Zero workouts, zero profile data: still exactly 4 non-empty strings.
	user := createTestUser(t, db, "alice", "alice@example.com")

	stub := &geminiStub{status: http.StatusInternalServerError, body: `{"error":{"message":"boom"}}`}
	svc := newStubbedAI(t, db, stub)

	result := svc.GetSuggestions(user.ID)
	assert.True(t, result.Fallback)
	require.Len(t, result.Suggestions, 4)
	for _, s := range result.Suggestions {
		assert.NotEmpty(t, strings.TrimSpace(s))
	}
}

func TestGetSuggestions_EmptyParseFallsBack(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice", "alice@example.com")

	stub := &geminiStub{status: http.StatusOK, body: candidateBody("\n  \n\"\"\n")}
	svc := newStubbedAI(t, db, stub)

	result := svc.GetSuggestions(user.ID)
	assert.True(t, result.Fallback)
	assert.Equal(t, "no usable suggestions in response", result.Reason)
	assert.Len(t, result.Suggestions, 4)
}

func TestGetSuggestions_NoAPIKeyFallsBack(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice", "alice@example.com")

	svc := NewAIService(db, "", "gemini-2.0-flash-exp")

	result := svc.GetSuggestions(user.ID)
	assert.True(t, result.Fallback)
	assert.Len(t, result.Suggestions, 4)
}

func TestProfileSummary_EstimatesMissingBMI(t *testing.T) {
	user := &models.User{Username: "alice", Weight: 70, Height: 175}

	summary := profileSummary(user)
	assert.Contains(t, summary, "- BMI: 22.9")
	assert.Contains(t, summary, "(Normal weight)")
}
