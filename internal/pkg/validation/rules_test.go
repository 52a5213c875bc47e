package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane@example.com", true},
		{"jane.doe+tag@sub.example.org", true},
		{"jane@example", false},
		{"not-an-email", false},
		{"", false},
		{"Jane@Example.com", false}, // callers lowercase before validating
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestIsValidMeetingLink(t *testing.T) {
	tests := []struct {
		link string
		want bool
	}{
		{"https://meet.example.com/abc", true},
		{"http://zoom.us/j/123", true},
		{"ftp://example.com/file", false},
		{"meet.example.com/abc", false},
		{"https:// space.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidMeetingLink(tt.link))
		})
	}
}
