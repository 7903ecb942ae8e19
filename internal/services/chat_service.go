package services

import (
	"strings"

	"swasthsetu/internal/models/response_models"
	"swasthsetu/pkg/utils"
)

type ChatServiceInterface interface {
	Reply(message string) (*response_models.ChatResponse, error)
}

type cannedReply struct {
	topic    string
	keywords []string
	reply    string
}

// Order matters: the first group with a matching keyword answers.
var cannedReplies = []cannedReply{
	{
		topic:    "vaccination",
		keywords: []string{"vaccine", "vaccination", "dose", "immunization", "booster"},
		reply:    "You can see your vaccination schedule under Vaccinations. Book a pending dose at any listed clinic and mark it completed once you receive it.",
	},
	{
		topic:    "symptoms",
		keywords: []string{"fever", "cough", "fatigue", "tired", "symptom", "sick", "unwell"},
		reply:    "Try the Symptom Check to get a quick risk level. If you feel very unwell, please visit the nearest health center.",
	},
	{
		topic:    "clinics",
		keywords: []string{"clinic", "hospital", "doctor", "health center", "centre"},
		reply:    "Open Clinics and search by your city or district to find nearby health centers, their timings and services.",
	},
	{
		topic:    "records",
		keywords: []string{"record", "report", "document", "lab", "prescription", "health id"},
		reply:    "Your health records and uploaded documents are under Health Records. Show your Health ID card at any clinic for quick lookup.",
	},
	{
		topic:    "alerts",
		keywords: []string{"alert", "notification", "warning"},
		reply:    "Health alerts for everyone and reminders for you appear under Alerts. Mark them read once you have seen them.",
	},
	{
		topic:    "greeting",
		keywords: []string{"hello", "hi", "namaste", "hey"},
		reply:    "Namaste! I can help with vaccinations, symptoms, clinics, health records and alerts. What do you need?",
	},
}

const fallbackReply = "Sorry, I did not understand. You can ask about vaccinations, symptoms, nearby clinics, health records or alerts."

// ChatService answers with fixed replies chosen by keyword; it never calls a language model.
type ChatService struct{}

func NewChatService() ChatServiceInterface {
	return &ChatService{}
}

func (s *ChatService) Reply(message string) (*response_models.ChatResponse, error) {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return nil, utils.InvalidInput("message is empty")
	}

	words := strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[w] = true
	}

	for _, group := range cannedReplies {
		for _, kw := range group.keywords {
			if matchesKeyword(text, wordSet, kw) {
				return &response_models.ChatResponse{Reply: group.reply, Topic: group.topic}, nil
			}
		}
	}
	return &response_models.ChatResponse{Reply: fallbackReply, Topic: "fallback"}, nil
}

// matchesKeyword matches single words exactly (so "hi" does not match "this")
// and multi-word phrases as substrings.
func matchesKeyword(text string, words map[string]bool, keyword string) bool {
	if strings.Contains(keyword, " ") {
		return strings.Contains(text, keyword)
	}
	if words[keyword] {
		return true
	}
	// plural forms such as "vaccines" or "clinics"
	return words[keyword+"s"] || words[keyword+"es"]
}
