package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Format(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z0-9]{20}$`)
	for i := 0; i < 100; i++ {
		tok := New()
		assert.Len(t, tok, Length)
		assert.Regexp(t, re, tok)
	}
}

func TestNew_Uniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		tok := New()
		_, dup := seen[tok]
		assert.False(t, dup, "duplicate token %s", tok)
		seen[tok] = struct{}{}
	}
}
