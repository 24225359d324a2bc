// Package chat implements the conversational core of the companion: intent
// classification, persona prompt templates, the per-user short-term memory
// window, and the small-talk short-circuit. The package has no persistence
// or transport dependencies; services compose these pieces into the response
// pipeline.
package chat

import "strings"

// Intent is the closed set of message categories the pipeline routes on.
type Intent string

const (
	IntentMoodCheckin  Intent = "mood_checkin"
	IntentRelationship Intent = "relationship"
	IntentLifeAdvice   Intent = "life_advice"
	IntentDailyVibe    Intent = "daily_vibe"
	IntentDefault      Intent = "default"
)

// intentOrder fixes the evaluation priority. The first category with a
// keyword hit wins; ties between categories are resolved by this order, not
// by keyword specificity. Do not re-sort.
var intentOrder = []Intent{
	IntentMoodCheckin,
	IntentRelationship,
	IntentLifeAdvice,
	IntentDailyVibe,
}

// intentKeywords holds the case-insensitive substring lists per category.
var intentKeywords = map[Intent][]string{
	IntentMoodCheckin:  {"mood", "feeling", "emotion", "energy today", "energy check"},
	IntentRelationship: {"love", "relationship", "partner", "crush", "dating", "soulmate"},
	IntentLifeAdvice:   {"career", "life purpose", "goal", "future", "direction", "growth"},
	IntentDailyVibe:    {"today", "vibe", "astrology today", "horoscope", "daily vibe"},
}

// ParseIntent maps a string to a known Intent, reporting whether it matched.
// Used for caller-supplied intent overrides.
func ParseIntent(s string) (Intent, bool) {
	switch Intent(strings.ToLower(strings.TrimSpace(s))) {
	case IntentMoodCheckin:
		return IntentMoodCheckin, true
	case IntentRelationship:
		return IntentRelationship, true
	case IntentLifeAdvice:
		return IntentLifeAdvice, true
	case IntentDailyVibe:
		return IntentDailyVibe, true
	case IntentDefault:
		return IntentDefault, true
	}
	return IntentDefault, false
}

// Classify assigns an Intent to raw message text. It is a pure function:
// case-insensitive substring matching against the category keyword lists in
// fixed priority order, falling through to IntentDefault. It never fails.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, intent := range intentOrder {
		for _, kw := range intentKeywords[intent] {
			if strings.Contains(lower, kw) {
				return intent
			}
		}
	}
	return IntentDefault
}
