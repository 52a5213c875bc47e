package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Meeting link pattern - http(s) URLs only
	MeetingLinkPattern = `^https?://\S+$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100

	// Rating bounds
	RatingMin = 1
	RatingMax = 5

	// Class duration bounds, in minutes
	ClassDurationMin = 15
	ClassDurationMax = 240
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email       *regexp.Regexp
	MeetingLink *regexp.Regexp
}{
	Email:       regexp.MustCompile(EmailPattern),
	MeetingLink: regexp.MustCompile(MeetingLinkPattern),
}

// IsValidEmail reports whether the value looks like an email address.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidMeetingLink reports whether the value is an http(s) URL.
func IsValidMeetingLink(value string) bool {
	return CompiledPatterns.MeetingLink.MatchString(value)
}
