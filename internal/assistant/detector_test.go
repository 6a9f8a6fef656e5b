package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetector_IsWakeWord(t *testing.T) {
	d := NewDetector([]string{"nova", "hey nova"})

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"exact wake word", "nova", true},
		{"wake word inside sentence", "ok nova what's up", true},
		{"hey prefix", "hey nova", true},
		{"fuzzy misrecognition", "noah are you there", true},
		{"case insensitive", "NOVA", true},
		{"no wake word", "open chrome", false},
		{"empty text", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsWakeWord(tt.text))
		})
	}
}

func TestDetector_StripWakeWords(t *testing.T) {
	d := NewDetector([]string{"nova"})

	assert.Equal(t, "open chrome", d.StripWakeWords("nova open chrome"))
	assert.Equal(t, "open chrome", d.StripWakeWords("hey nova open chrome"))
	assert.Equal(t, "open chrome", d.StripWakeWords("open chrome"))
}

func TestDetector_IsDirectCommand(t *testing.T) {
	d := NewDetector(nil)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"open command", "open chrome", true},
		{"close command", "close spotify", true},
		{"search command", "search weather in chennai", true},
		{"tamil open suffix", "notepad thorakku", true},
		{"tamil close suffix", "chrome muddu", true},
		{"tamil do suffix", "calculator pannu", true},
		{"plain chat", "how are you", false},
		{"empty text", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsDirectCommand(tt.text))
		})
	}
}
