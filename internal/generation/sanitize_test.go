package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "keeps text after last separator",
			raw:  "### Analysis\nA cat.\n***\n**The Cat**\n\nOnce...",
			want: "The Cat\n\nOnce...",
		},
		{
			name: "multiple separators",
			raw:  "one *** two *** three",
			want: "three",
		},
		{
			name: "strips image analysis header case-insensitively",
			raw:  "### image analysis\nThe Title\n\nStory",
			want: "The Title\n\nStory",
		},
		{
			name: "strips analysis header without space",
			raw:  "###ANALYSIS\nStory body",
			want: "Story body",
		},
		{
			name: "removes markdown marks",
			raw:  "  # Title\n\n*Once* upon a **time**  ",
			want: "Title\n\nOnce upon a time",
		},
		{
			name: "plain text untouched",
			raw:  "Just a story.",
			want: "Just a story.",
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.raw))
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"### Analysis\nA cat.\n***\n**The Cat**\n\nOnce...",
		"a *** b *** ### Image Analysis c # d * e",
		"#### ###Analysis ## **",
		"\n\n   plain   \n",
		"*** *** ***",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestSanitizeOutputHasNoMarkdownOrSeparator(t *testing.T) {
	out := Sanitize("intro *** ## Heading\n*bold* text ***final** part")
	assert.NotContains(t, out, "#")
	assert.NotContains(t, out, "*")
	assert.Equal(t, "final part", out)
}
