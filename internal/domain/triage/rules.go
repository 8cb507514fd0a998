package triage

import "strings"

// Conversational prompts returned when no entry is created.
const (
	PromptEmpty   = "Can you tell me more about other symptoms or discomforts you feel?"
	PromptNoMatch = "Thanks for sharing! Can you tell me more about other symptoms or discomforts you feel?"
)

// Rules is an ordered rule list. Order is significant: the first keyword
// contained in the input wins.
type Rules []Rule

// DefaultRules returns the built-in symptom knowledge base. Slice order is
// the match priority.
func DefaultRules() Rules {
	return Rules{
		{Keyword: "fever", Diagnosis: "Fever / Possible Infection", Advice: "Please contact a doctor for proper evaluation."},
		{Keyword: "headache", Diagnosis: "Mild Headache", Advice: "You may take acetaminophen or ibuprofen as per your age.", Healthy: true},
		{Keyword: "cough", Diagnosis: "Common Cough", Advice: "Drink warm fluids and rest. Contact a doctor if persistent."},
		{Keyword: "cold", Diagnosis: "Common Cold", Advice: "Rest, hydrate, and consider over-the-counter cold medicine.", Healthy: true},
		{Keyword: "stomach ache", Diagnosis: "Stomach Ache", Advice: "Drink water, avoid heavy food. Contact doctor if severe."},
	}
}

// Match scans the rules in order and returns the first whose keyword is a
// substring of the lowercased input. Matching is deliberately substring
// containment, not word-boundary: "feverish" matches "fever".
func (rs Rules) Match(input string) (Rule, bool) {
	lowered := strings.ToLower(input)
	for _, r := range rs {
		if strings.Contains(lowered, r.Keyword) {
			return r, true
		}
	}
	return Rule{}, false
}
