package profanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Clean(t *testing.T) {
	filter := New("bad", "some", "hells")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"masks whole word", "a bad day", "a *** day"},
		{"case insensitive", "BAD Day", "*** Day"},
		{"keeps substrings", "badge and badger", "badge and badger"},
		{"punctuation boundary", "some, hells!", "****, *****!"},
		{"clean text unchanged", "a lovely memory", "a lovely memory"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.Clean(tt.in))
		})
	}
}

func TestFilter_DefaultWordsAndExtras(t *testing.T) {
	filter := NewDefault("memoryhole")

	assert.Equal(t, "what the ****", filter.Clean("what the fuck"))
	assert.Equal(t, "down the **********", filter.Clean("down the memoryhole"))
	assert.Equal(t, "summer holiday", filter.Clean("summer holiday"))
	assert.Equal(t, "**** happens", filter.Clean("shit happens"))
	assert.Equal(t, "******* great", filter.Clean("fucking great"))
}

func TestFilter_NilAndEmpty(t *testing.T) {
	var nilFilter *Filter
	assert.Equal(t, "bad", nilFilter.Clean("bad"))

	empty := New("", "  ")
	assert.Equal(t, "bad", empty.Clean("bad"))
}
