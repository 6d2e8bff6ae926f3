// Package moderation scans free text for personal contact information.
// Listings must stay pseudonymous, so emails, phone numbers, WhatsApp
// references and CPF numbers are all rejected before a listing is stored.
package moderation

import (
	"regexp"
)

type rule struct {
	pattern *regexp.Regexp
	issue   string
}

// Rules run in a fixed order so the issue list is deterministic.
var rules = []rule{
	{regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), "Email detectado"},
	{regexp.MustCompile(`(\+55\s?)?(\(?\d{2}\)?[\s.-]?)?\d{4,5}[\s.-]?\d{4}`), "Número de telefone detectado"},
	{regexp.MustCompile(`(?i)whatsapp|wpp|zap|whats`), "Referência ao WhatsApp detectada"},
	{regexp.MustCompile(`\d{3}\.?\d{3}\.?\d{3}-?\d{2}`), "CPF detectado"},
}

// Check scans text and returns the issues found, in rule order
func Check(text string) []string {
	var issues []string
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			issues = append(issues, r.issue)
		}
	}
	return issues
}

// HasPersonalInfo reports whether text triggers any moderation rule
func HasPersonalInfo(text string) bool {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return true
		}
	}
	return false
}
