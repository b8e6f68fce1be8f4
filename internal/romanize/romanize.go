// Package romanize turns a decomposed jamo sequence into Revised
// Romanization. Final consonants are spelled differently when they are
// followed by the silent initial ㅇ, since the consonant is then released
// into the next syllable.
package romanize

import (
	"strings"

	"github.com/jusunglee/hangulfun/internal/hangul"
)

// UnknownMarker is emitted for jamo whose romanization has not been
// worked out yet, currently the compound finals.
const UnknownMarker = "?"

var initials = [hangul.LCount]string{
	"g", "kk", "n", "d", "tt", "r", "m", "b", "pp",
	"s", "ss", "", "j", "jj", "ch", "k", "t", "p", "h",
}

var vowels = [hangul.VCount]string{
	"a", "ae", "ya", "yae", "eo", "e", "yeo", "ye", "o",
	"wa", "wae", "oe", "yo", "u", "wo", "we", "wi", "yu",
	"eu", "ui", "i",
}

// finalForms holds the coda spelling and the spelling used when the
// consonant is released into a following vowel. An empty pair is unknown.
type finalForms struct {
	coda   string
	linked string
}

var finals = [hangul.TCount - 1]finalForms{
	{"k", "g"},   // ㄱ
	{"k", "kk"},  // ㄲ
	{},           // ㄳ
	{"n", "n"},   // ㄴ
	{},           // ㄵ
	{},           // ㄶ
	{"t", "d"},   // ㄷ
	{"l", "l"},   // ㄹ
	{},           // ㄺ
	{},           // ㄻ
	{},           // ㄼ
	{},           // ㄽ
	{},           // ㄾ
	{},           // ㄿ
	{},           // ㅀ
	{"m", "m"},   // ㅁ
	{"p", "b"},   // ㅂ
	{},           // ㅄ
	{"t", "s"},   // ㅅ
	{"t", "ss"},  // ㅆ
	{"ng", "ng"}, // ㅇ
	{"t", "j"},   // ㅈ
	{"t", "ch"},  // ㅊ
	{"k", "k"},   // ㅋ
	{"t", "t"},   // ㅌ
	{"p", "p"},   // ㅍ
	{"t", "h"},   // ㅎ
}

// Romanizer romanizes jamo. The zero value uses an empty unknown marker;
// most callers want Default.
type Romanizer struct {
	// Unknown replaces jamo that have no known romanization.
	Unknown string
}

// Default is the Romanizer used by the package-level functions.
var Default = Romanizer{Unknown: UnknownMarker}

// Jamo returns the romanization of one modern jamo. nextVowel reports
// whether the jamo is immediately followed by the silent initial, which
// only matters for finals. ok is false for anything that is not a modern
// jamo.
func (r Romanizer) Jamo(ch rune, nextVowel bool) (string, bool) {
	switch {
	case hangul.IsInitialConsonant(ch):
		return initials[ch-hangul.FirstInitial], true
	case hangul.IsVowel(ch):
		return vowels[ch-hangul.FirstVowel], true
	case hangul.IsFinalConsonant(ch):
		f := finals[ch-hangul.FirstFinal]
		if f.coda == "" {
			return r.Unknown, true
		}
		if nextVowel {
			return f.linked, true
		}
		return f.coda, true
	}
	return "", false
}

// Romanize romanizes a decomposed jamo sequence. Characters that are not
// modern jamo are copied through unchanged.
func (r Romanizer) Romanize(jamo string) string {
	var b strings.Builder
	b.Grow(len(jamo))
	var prev rune
	started := false
	// A trailing space gives the last character something to look at.
	for _, ch := range jamo + " " {
		if started {
			if s, ok := r.Jamo(prev, ch == hangul.SilentInitial); ok {
				b.WriteString(s)
			} else {
				b.WriteRune(prev)
			}
		}
		prev = ch
		started = true
	}
	return b.String()
}

// Jamo romanizes one jamo with the default unknown marker.
func Jamo(ch rune, nextVowel bool) (string, bool) {
	return Default.Jamo(ch, nextVowel)
}

// Romanize romanizes a decomposed jamo sequence with the default unknown
// marker.
func Romanize(jamo string) string {
	return Default.Romanize(jamo)
}

// Text decomposes text and romanizes it as written, without applying
// any pronunciation rules.
func Text(text string) string {
	return Romanize(hangul.DecomposeAll(text))
}
