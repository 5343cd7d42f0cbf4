package domain

import (
	"strings"
	"unicode"
)

var (
	menuDetailKeywords = []string{"details", "description", "ingredients"}
	greetingWords      = map[string]struct{}{"hi": {}, "hello": {}, "hey": {}}
	bookKeywords       = []string{"book", "reserve", "reservation"}
	modifyKeywords     = []string{"change", "modify", "reschedule", "update"}
)

// NormalizeText lowercases and trims the free text message.
func NormalizeText(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

// WantsMenu reports whether the free text asks for the menu.
func WantsMenu(text string) bool {
	return strings.Contains(text, "menu")
}

// WantsMenuDetails reports whether the free text asks for item descriptions.
func WantsMenuDetails(text string) bool {
	return containsAny(text, menuDetailKeywords)
}

// FallbackReply answers free text that did not carry a structured action. It only points the
// guest at the matching control and never performs a write.
func FallbackReply(text string) string {
	switch {
	case isGreeting(text):
		return ReplyGreeting
	case strings.Contains(text, "available") || strings.Contains(text, "availability"):
		return ReplyAvailabilityHint
	case containsAny(text, bookKeywords):
		return ReplyBookHint
	case containsAny(text, modifyKeywords):
		return ReplyModifyHint
	case strings.Contains(text, "cancel"):
		return ReplyCancelHint
	default:
		return ReplyFallback
	}
}

// isGreeting matches whole words only; "which" and "they" are not greetings.
func isGreeting(text string) bool {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, word := range words {
		if _, ok := greetingWords[word]; ok {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
