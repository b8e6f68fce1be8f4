package romanize

import (
	"testing"

	"github.com/jusunglee/hangulfun/internal/hangul"
	"github.com/jusunglee/hangulfun/internal/phonology"
	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"밥", "bap"},
		{"밥을", "babeul"},
		{"한국어", "hangugeo"},
		{"좋아", "joha"},
		{"김치", "gimchi"},
		{"hi", "hi"},
		{"hi, 친구!", "hi, chingu!"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Text(tt.in), "Text(%q)", tt.in)
	}
}

func TestRomanizePronounced(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"좋아", "joa"},
		{"학교", "hakkkyo"},
		{"십오", "sibo"},
		{"닭이", "dalgi"},
		{"없어", "eopsseo"},
	}
	for _, tt := range tests {
		got := Romanize(phonology.ApplyPronunciationRules(hangul.DecomposeAll(tt.in)))
		assert.Equal(t, tt.want, got, "%q", tt.in)
	}
}

func TestUnknownMarker(t *testing.T) {
	assert.Equal(t, "da?", Text("닭"))

	r := Romanizer{Unknown: "(?)"}
	assert.Equal(t, "da(?)", r.Romanize(hangul.DecomposeAll("닭")))
	assert.Equal(t, "bap", r.Romanize(hangul.DecomposeAll("밥")))
}

func TestJamo(t *testing.T) {
	s, ok := Jamo('ᆨ', false)
	assert.True(t, ok)
	assert.Equal(t, "k", s)

	s, ok = Jamo('ᆨ', true)
	assert.True(t, ok)
	assert.Equal(t, "g", s)

	s, ok = Jamo('ᄋ', false)
	assert.True(t, ok)
	assert.Empty(t, s)

	_, ok = Jamo('a', false)
	assert.False(t, ok)
	_, ok = Jamo('ㄱ', false)
	assert.False(t, ok, "compatibility jamo are not romanized")
}

func TestArchaicJamoPassThrough(t *testing.T) {
	assert.Equal(t, "ᄓa", Romanize("ᄓᅡ"))
}

func TestEveryModernJamoHasAnEntry(t *testing.T) {
	for ch := rune(hangul.FirstInitial); ch <= hangul.LastInitial; ch++ {
		_, ok := Jamo(ch, false)
		assert.True(t, ok, "%U", ch)
	}
	for ch := rune(hangul.FirstVowel); ch <= hangul.LastVowel; ch++ {
		s, ok := Jamo(ch, false)
		assert.True(t, ok, "%U", ch)
		assert.NotEmpty(t, s, "%U", ch)
	}
	unknown := 0
	for ch := rune(hangul.FirstFinal); ch <= hangul.LastFinal; ch++ {
		coda, ok := Jamo(ch, false)
		assert.True(t, ok, "%U", ch)
		linked, _ := Jamo(ch, true)
		if coda == UnknownMarker {
			assert.Equal(t, UnknownMarker, linked, "%U", ch)
			unknown++
		}
	}
	assert.Equal(t, 11, unknown)
}
