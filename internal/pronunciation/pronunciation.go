// Package pronunciation gives short articulation hints for jamo, for
// learners reading along with the romanization.
package pronunciation

import (
	"fmt"

	"github.com/jusunglee/hangulfun/internal/hangul"
	"github.com/jusunglee/hangulfun/internal/jamostream"
)

// Many of the vowel hints follow "Hangeul Master" (Talk To Me In Korean).
var hints = map[rune]string{
	'ᄀ': "'g' as in 'go', closer to 'k' at the start of a word",
	'ᄁ': "tense 'kk' as in 'skin', no puff of air",
	'ᄂ': "'n' as in 'no'",
	'ᄃ': "'d' as in 'do', closer to 't' at the start of a word",
	'ᄄ': "tense 'tt' as in 'stop', no puff of air",
	'ᄅ': "a flap between 'r' and 'l', like the 'tt' in American 'butter'",
	'ᄆ': "'m' as in 'mom'",
	'ᄇ': "'b' as in 'boy', closer to 'p' at the start of a word",
	'ᄈ': "tense 'pp' as in 'spin', no puff of air",
	'ᄉ': "'s' as in 'sun', 'sh' before ㅣ",
	'ᄊ': "tense 'ss' as in 'sea'",
	'ᄋ': "silent at the start of a syllable",
	'ᄌ': "'j' as in 'jam'",
	'ᄍ': "tense 'jj', no puff of air",
	'ᄎ': "'ch' as in 'church', with a puff of air",
	'ᄏ': "'k' as in 'kite', with a puff of air",
	'ᄐ': "'t' as in 'top', with a puff of air",
	'ᄑ': "'p' as in 'pie', with a puff of air",
	'ᄒ': "'h' as in 'hat'",

	'ᅡ': "'a' as in 'father'",
	'ᅢ': "'a' as in 'sad' or 'pan', indistinct from ㅔ",
	'ᅥ': "'u' as in 'bus', 'gut', 'cup'",
	'ᅦ': "'e' as in 'bed' or 'pet', indistinct from ㅐ",
	'ᅩ': "'o' as in 'ago'",
	'ᅮ': "'oo' as in 'food'",
	'ᅳ': "'uh' with upper/lower teeth close and yucky face",
	'ᅵ': "'ee' as in 'feet'",

	'ᆨ': "unreleased 'k', the tongue stops without a puff",
	'ᆫ': "'n' as in 'sun'",
	'ᆮ': "unreleased 't'",
	'ᆯ': "'l' as in 'ball'",
	'ᆷ': "'m' as in 'sum'",
	'ᆸ': "unreleased 'p', the lips stay closed",
	'ᆼ': "'ng' as in 'sing'",
}

// Hint returns the articulation hint for a jamo, or "" when none is
// recorded.
func Hint(ch rune) string {
	return hints[ch]
}

// neutralized maps finals that are pronounced as one of the seven
// representative codas to that coda.
var neutralized = map[rune]rune{
	'ᆩ': 'ᆨ', 'ᆿ': 'ᆨ',
	'ᆺ': 'ᆮ', 'ᆻ': 'ᆮ', 'ᆽ': 'ᆮ', 'ᆾ': 'ᆮ', 'ᇀ': 'ᆮ', 'ᇂ': 'ᆮ',
	'ᇁ': 'ᆸ',
}

// HintInStream returns a hint for the current jamo of w that takes its
// neighbours into account. A final consonant before the silent initial
// is released into the next syllable, and a final that ends a syllable
// is pronounced as its representative coda.
func HintInStream(w jamostream.JamoInStream) string {
	if !hangul.IsFinalConsonant(w.Curr) {
		return Hint(w.Curr)
	}
	if w.IsFinalConsonantFollowedByVowel() {
		switch w.Curr {
		case 'ᆼ':
			return Hint(w.Curr)
		case 'ᇂ':
			return "silent before a vowel"
		}
		if w.NextSyllable != 0 {
			return fmt.Sprintf("linked to the next syllable (%c)", w.NextSyllable)
		}
		return "linked to the next syllable"
	}
	if rep, ok := neutralized[w.Curr]; ok {
		return fmt.Sprintf("pronounced like %c: %s",
			hangul.CompatWithFallback(rep), Hint(rep))
	}
	return Hint(w.Curr)
}
