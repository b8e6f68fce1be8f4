package hangul

import (
	"fmt"
	"strings"
)

// Conjoining jamo bases and counts of the Hangul Syllables block formula
// S = SBase + (L*VCount + V)*TCount + T.
const (
	SBase  = 0xAC00
	LBase  = 0x1100
	VBase  = 0x1161
	TBase  = 0x11A7
	LCount = 19
	VCount = 21
	TCount = 28
	NCount = VCount * TCount // 588
	SCount = LCount * NCount // 11172
)

// Syllable is the canonical decomposition of a precomposed syllable.
// Final is zero when the syllable has no final consonant.
type Syllable struct {
	Initial rune
	Medial  rune
	Final   rune
}

// HasFinal reports whether the syllable closes with a final consonant.
func (s Syllable) HasFinal() bool {
	return s.Final != 0
}

// Jamo returns the two or three conjoining jamo of s.
func (s Syllable) Jamo() []rune {
	if s.HasFinal() {
		return []rune{s.Initial, s.Medial, s.Final}
	}
	return []rune{s.Initial, s.Medial}
}

func (s Syllable) String() string {
	return string(s.Jamo())
}

// DecomposeSyllable splits ch into its initial, medial and optional final
// jamo. ok is false unless ch classifies as Syllables.
func DecomposeSyllable(ch rune) (s Syllable, ok bool) {
	if Classify(ch) != Syllables {
		return Syllable{}, false
	}
	base := ch - SBase
	initialIdx := base / NCount
	medialIdx := (base - initialIdx*NCount) / TCount
	finalIdx := base - initialIdx*NCount - medialIdx*TCount

	s.Initial = LBase + initialIdx
	s.Medial = VBase + medialIdx
	if finalIdx != 0 {
		s.Final = TBase + finalIdx
	}

	// Only reachable through a bug in the arithmetic above.
	if Classify(s.Initial) != Jamo || Classify(s.Medial) != Jamo {
		panic(fmt.Sprintf("hangul: decomposing %U produced non-jamo %U %U", ch, s.Initial, s.Medial))
	}
	return s, true
}

// ComposeSyllable is the inverse of DecomposeSyllable. It accepts exactly
// two (initial, medial) or three (initial, medial, final) conjoining jamo
// and rejects anything whose arithmetic would leave the syllable block or
// alias a different syllable.
func ComposeSyllable(jamo []rune) (rune, bool) {
	if len(jamo) != 2 && len(jamo) != 3 {
		return 0, false
	}
	initial, medial := jamo[0], jamo[1]
	if initial < LBase {
		return 0, false
	}
	if medial < VBase || medial >= VBase+VCount {
		return 0, false
	}
	var finalIdx rune
	if len(jamo) == 3 {
		final := jamo[2]
		if final <= TBase || final >= TBase+TCount {
			return 0, false
		}
		finalIdx = final - TBase
	}
	ch := SBase + (initial-LBase)*NCount + (medial-VBase)*TCount + finalIdx
	if Classify(ch) != Syllables {
		return 0, false
	}
	return ch, true
}

// DecomposeAll expands every syllable of text into its jamo and copies
// every other character through unchanged.
func DecomposeAll(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, r := range text {
		if s, ok := DecomposeSyllable(r); ok {
			for _, j := range s.Jamo() {
				b.WriteRune(j)
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ComposeAll reassembles syllables from a jamo sequence. An initial
// consonant followed by a vowel starts a syllable; the next character is
// taken as its final only when it is a modern final consonant. Anything
// that does not fit passes through unchanged.
func ComposeAll(jamo string) string {
	runes := []rune(jamo)
	var b strings.Builder
	b.Grow(len(jamo))
	for i := 0; i < len(runes); {
		if i+1 < len(runes) && IsInitialConsonant(runes[i]) && IsVowel(runes[i+1]) {
			n := 2
			if i+2 < len(runes) && IsFinalConsonant(runes[i+2]) {
				n = 3
			}
			if ch, ok := ComposeSyllable(runes[i : i+n]); ok {
				b.WriteRune(ch)
				i += n
				continue
			}
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}
