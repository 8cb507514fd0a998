package triage

import "testing"

func TestRules_MatchOrderIsDeterministic(t *testing.T) {
	rules := DefaultRules()

	// Every keyword resolves to itself.
	for _, r := range rules {
		got, ok := rules.Match("I have " + r.Keyword)
		if !ok {
			t.Fatalf("keyword %q did not match", r.Keyword)
		}
		if got.Keyword != r.Keyword {
			t.Errorf("keyword %q resolved to %q", r.Keyword, got.Keyword)
		}
	}

	// Multi-keyword input always resolves to the earliest rule.
	got, ok := rules.Match("cold with a cough and headache")
	if !ok || got.Keyword != "headache" {
		t.Errorf("expected headache (earliest rule present), got %q", got.Keyword)
	}
}

func TestRules_CaseInsensitive(t *testing.T) {
	got, ok := DefaultRules().Match("STOMACH ACHE after dinner")
	if !ok || got.Keyword != "stomach ache" {
		t.Errorf("expected stomach ache match, got %v %q", ok, got.Keyword)
	}
}

func TestRules_NoMatch(t *testing.T) {
	if _, ok := DefaultRules().Match("sprained ankle"); ok {
		t.Error("expected no match")
	}
}
