package pronunciation

import (
	"testing"

	"github.com/jusunglee/hangulfun/internal/hangul"
	"github.com/jusunglee/hangulfun/internal/jamostream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHint(t *testing.T) {
	assert.Equal(t, "'a' as in 'father'", Hint('ᅡ'))
	assert.Equal(t, "'ee' as in 'feet'", Hint('ᅵ'))
	assert.Contains(t, Hint('ᄀ'), "'g' as in 'go'")
	assert.Empty(t, Hint('ᅣ'), "no hint recorded")
	assert.Empty(t, Hint('x'))
}

func TestEveryInitialHasAHint(t *testing.T) {
	for ch := rune(hangul.FirstInitial); ch <= hangul.LastInitial; ch++ {
		assert.NotEmpty(t, Hint(ch), "%U", ch)
	}
}

func windows(text string) []jamostream.JamoInStream {
	s := jamostream.FromSyllables(text)
	var out []jamostream.JamoInStream
	for {
		w, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, w)
	}
}

func TestHintInStream(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  int
		want string
	}{
		{"vowel", "밥", 1, "'a' as in 'father'"},
		{"coda", "밥", 2, "unreleased 'p', the lips stay closed"},
		{"liaison", "밥을", 2, "linked to the next syllable (을)"},
		{"ng stays", "생일", 2, "'ng' as in 'sing'"},
		{"silent h", "좋아", 2, "silent before a vowel"},
		{"neutralized coda", "옷", 2, "pronounced like ㄷ: unreleased 't'"},
		{"no hint", "닭", 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := windows(tt.text)
			require.Greater(t, len(ws), tt.pos)
			assert.Equal(t, tt.want, HintInStream(ws[tt.pos]))
		})
	}
}
