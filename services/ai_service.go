package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iCodeLakshay/fit-tracker-backend/models"
	"github.com/iCodeLakshay/fit-tracker-backend/utils"

	"gorm.io/gorm"
)

var (
	ErrAINotConfigured = errors.New("AI service is not configured on the server")
	ErrEmptyMessage    = errors.New("message is required")
	ErrUpstreamAuth    = errors.New("invalid API key or API key not configured")
	ErrUpstreamQuota   = errors.New("API quota exceeded")
)

const (
	geminiBaseURL  = "https://generativelanguage.googleapis.com/v1beta"
	historyWindow  = 5 // prompt growth is bounded to the last 5 turns
	recentWorkouts = 5
	emptyReply     = "Sorry, I couldn't generate a response."
)

// AIService proxies chat messages to the Gemini generation endpoint,
// grounding each prompt in the caller's stored profile and workout history.
type AIService struct {
	db      *gorm.DB
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewAIService(db *gorm.DB, apiKey, model string) *AIService {
	return &AIService{
		db:      db,
		client:  &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
	}
}

// ChatMessage is one prior turn of the conversation.
type ChatMessage struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// ChatReply is a normalized generation result.
type ChatReply struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// SendMessage composes a grounded prompt for the caller and forwards it
// upstream. Validation failures are reported before any upstream call.
func (s *AIService) SendMessage(userID uint, message string, history []ChatMessage) (*ChatReply, error) {
	if s.apiKey == "" {
		return nil, ErrAINotConfigured
	}
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var workouts []models.Workout
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(recentWorkouts).
		Find(&workouts).Error; err != nil {
		return nil, err
	}

	prompt := buildChatPrompt(&user, workouts, message, history)

	text, err := s.generate(prompt)
	if err != nil {
		return nil, mapUpstreamError(err)
	}
	if text == "" {
		text = emptyReply
	}

	return &ChatReply{Response: text, Timestamp: time.Now().UTC()}, nil
}

// SuggestionResult carries either personalized suggestions or a tagged
// fallback, so callers can tell "parsed to nothing" from "upstream failed".
type SuggestionResult struct {
	Suggestions []string
	Fallback    bool
	Reason      string
}

// GetSuggestions asks the model for 4 short personalized questions. It
// never surfaces a hard failure: every error path degrades to a fixed list.
func (s *AIService) GetSuggestions(userID uint) *SuggestionResult {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return &SuggestionResult{Suggestions: genericSuggestions(), Fallback: true, Reason: "user not found"}
	}

	if s.apiKey == "" {
		return &SuggestionResult{Suggestions: fallbackSuggestions(), Fallback: true, Reason: "api key not configured"}
	}

	text, err := s.generate(buildSuggestionPrompt(&user))
	if err != nil {
		return &SuggestionResult{Suggestions: fallbackSuggestions(), Fallback: true, Reason: err.Error()}
	}

	suggestions := parseSuggestions(text)
	if len(suggestions) == 0 {
		return &SuggestionResult{Suggestions: fallbackSuggestions(), Fallback: true, Reason: "no usable suggestions in response"}
	}

	return &SuggestionResult{Suggestions: suggestions}
}

func buildChatPrompt(user *models.User, workouts []models.Workout, message string, history []ChatMessage) string {
	var sb strings.Builder

	sb.WriteString("You are an expert AI fitness trainer and nutritionist. Your role is to provide helpful, accurate, and motivating fitness advice.\n\n")
	sb.WriteString("Here is the user's profile and recent workout history:\n")
	sb.WriteString(profileSummary(user))
	sb.WriteString("\n")
	sb.WriteString(workoutSummary(workouts))
	sb.WriteString("\n\nInstructions:\n")
	sb.WriteString("1. Give personalized workout recommendations based on user goals and history\n")
	sb.WriteString("2. Provide nutrition and diet advice\n")
	sb.WriteString("3. Explain proper exercise form and technique\n")
	sb.WriteString("4. Offer motivation and support\n")
	sb.WriteString("5. Help with goal setting and progress tracking\n")
	sb.WriteString("6. Answer questions about fitness, health, and wellness\n\n")
	sb.WriteString("IMPORTANT: Keep your responses to the point. Avoid unwanted explanations. Be practical and actionable. If asked about medical concerns, advise consulting a healthcare professional.\n\n")
	sb.WriteString("User's message: " + message)

	if len(history) > 0 {
		if len(history) > historyWindow {
			history = history[len(history)-historyWindow:]
		}
		sb.WriteString("\n\nPrevious conversation context:\n")
		for _, msg := range history {
			sb.WriteString(fmt.Sprintf("%s: %s\n", msg.Sender, msg.Content))
		}
		sb.WriteString("\nUser: " + message)
	}

	return sb.String()
}

func profileSummary(user *models.User) string {
	bmi := user.BMI
	if bmi == 0 {
		// Estimate for grounding only; the stored metric stays untouched.
		if est, err := utils.EstimateBMI(user.Height, user.Weight); err == nil {
			bmi = est
		}
	}

	summary := fmt.Sprintf("User Profile:\n- Username: %s\n- Weight: %g kg\n- Height: %g cm\n- BMI: %.1f",
		user.Username, user.Weight, user.Height, bmi)
	if bmi > 0 {
		summary += fmt.Sprintf(" (%s)", utils.BMICategory(bmi))
	}
	return summary
}

func workoutSummary(workouts []models.Workout) string {
	var sb strings.Builder
	sb.WriteString("Recent Workouts:")
	if len(workouts) == 0 {
		sb.WriteString("\n- No workouts logged yet.")
		return sb.String()
	}
	for i, w := range workouts {
		sb.WriteString(fmt.Sprintf("\n%d. %s (%s) - %d sets x %d reps @ %gkg on %s",
			i+1, w.WorkoutName, w.BodyPart, w.Sets, w.Reps, w.Weight, w.Date.Format("2006-01-02")))
	}
	return sb.String()
}

func buildSuggestionPrompt(user *models.User) string {
	var sb strings.Builder
	sb.WriteString("Based on the following user profile, generate 4 short, engaging, and personalized questions that this user might ask their AI fitness trainer. The user's goal is to get guidance on their fitness journey.\n\n")
	sb.WriteString(profileSummary(user))
	sb.WriteString("\n\nGenerate exactly 4 questions, each enclosed in double quotes and separated by a newline. Example:\n")
	sb.WriteString("\"How can I improve my squat form?\"\n")
	sb.WriteString("\"What's a good post-workout meal for me?\"\n")
	sb.WriteString("\"Can you suggest a 3-day workout split?\"\n")
	sb.WriteString("\"How do I stay motivated on days I feel tired?\"")
	return sb.String()
}

// parseSuggestions splits the generated text into at most 4 clean lines.
func parseSuggestions(text string) []string {
	var suggestions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, `"`, ""))
		if line == "" {
			continue
		}
		suggestions = append(suggestions, line)
		if len(suggestions) == 4 {
			break
		}
	}
	return suggestions
}

func genericSuggestions() []string {
	return []string{
		"Create a beginner workout plan for me",
		"What should I eat for muscle gain?",
		"How do I track my progress effectively?",
		"What exercises are best for weight loss?",
	}
}

func fallbackSuggestions() []string {
	return []string{
		"Create a workout plan for me",
		"How can I improve my form?",
		"Nutrition advice for muscle gain",
		"I need motivation to exercise",
	}
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate sends the prompt as a single text part and extracts the first
// candidate's first part.
func (s *AIService) generate(prompt string) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)

	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
				Status  string `json:"status"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("gemini api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("gemini api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out generateResponse
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", fmt.Errorf("decode gemini response error: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// mapUpstreamError translates upstream failures into the error taxonomy by
// sniffing the diagnostic text, the way the upstream reports them.
func mapUpstreamError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "API key") || strings.Contains(msg, "permission denied") {
		return ErrUpstreamAuth
	}
	if strings.Contains(msg, "quota") {
		return ErrUpstreamQuota
	}
	return err
}
