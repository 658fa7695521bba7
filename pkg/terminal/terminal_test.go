package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"shorter than limit", "| a | b |", 20, "| a | b |"},
		{"exactly at limit", "abcde", 5, "abcde"},
		{"cut at limit", "abcdefgh", 5, "abcde"},
		{"zero limit leaves intact", "abc", 0, "abc"},
		{"negative limit leaves intact", "abc", -1, "abc"},
		{"empty string", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.limit))
		})
	}
}

func TestEraseLines(t *testing.T) {
	var buf bytes.Buffer
	EraseLines(&buf, 3)

	assert.Equal(t, 3, strings.Count(buf.String(), escCursorPrevLine))
	assert.Equal(t, 3, strings.Count(buf.String(), escEraseLine))
}

func TestEraseLinesZero(t *testing.T) {
	var buf bytes.Buffer
	EraseLines(&buf, 0)
	assert.Empty(t, buf.String())
}

func TestColumnsFallback(t *testing.T) {
	// Under go test, stdout is normally not a terminal, so the query
	// falls back to the default width.
	cols := Columns()
	assert.Greater(t, cols, 0)
}
