// Package jamostream walks a decomposed jamo sequence one position at a
// time, exposing the neighbouring jamo and the following syllable so that
// context-sensitive rules can look around the current position.
package jamostream

import (
	"slices"

	"github.com/jusunglee/hangulfun/internal/hangul"
)

// JamoInStream is the context window for one position of a Stream.
// Prev, Next and NextSyllable are zero when there is nothing there.
type JamoInStream struct {
	Curr         rune
	Prev         rune
	Next         rune
	NextSyllable rune
}

// IsFinalConsonantFollowedByVowel reports whether Curr is a final consonant
// whose next syllable starts with the silent initial, i.e. whether liaison
// applies. It assumes a well-formed jamo sequence.
func (j JamoInStream) IsFinalConsonantFollowedByVowel() bool {
	return hangul.IsFinalConsonant(j.Curr) && j.Next == hangul.SilentInitial
}

// Stream is a forward-only cursor over a materialized jamo sequence.
type Stream struct {
	jamo           []rune
	syllableStarts []int
	index          int
}

// New builds a Stream over an already decomposed jamo sequence.
func New(jamo string) *Stream {
	runes := []rune(jamo)
	starts := make([]int, 0, len(runes)/2)
	for i, r := range runes {
		if hangul.IsInitialConsonant(r) {
			starts = append(starts, i)
		}
	}
	return &Stream{jamo: runes, syllableStarts: starts}
}

// FromSyllables decomposes text and builds a Stream over the result.
func FromSyllables(text string) *Stream {
	return New(hangul.DecomposeAll(text))
}

// Next returns the window at the cursor and advances. ok is false once the
// sequence is exhausted, and stays false on further calls.
func (s *Stream) Next() (JamoInStream, bool) {
	if s.index >= len(s.jamo) {
		return JamoInStream{}, false
	}
	w := JamoInStream{
		Curr:         s.jamo[s.index],
		Prev:         s.at(s.index - 1),
		Next:         s.at(s.index + 1),
		NextSyllable: s.nextSyllable(s.index),
	}
	s.index++
	return w, true
}

// SeekToSyllable moves the cursor to the start of the n-th syllable.
// Out-of-range indices are ignored.
func (s *Stream) SeekToSyllable(n int) {
	if n < 0 || n >= len(s.syllableStarts) {
		return
	}
	s.index = s.syllableStarts[n]
}

// Reset rewinds the cursor to the first position.
func (s *Stream) Reset() {
	s.index = 0
}

// NumSyllables is the number of syllable starts in the sequence.
func (s *Stream) NumSyllables() int {
	return len(s.syllableStarts)
}

// Len is the number of positions in the sequence.
func (s *Stream) Len() int {
	return len(s.jamo)
}

func (s *Stream) at(i int) rune {
	if i < 0 || i >= len(s.jamo) {
		return 0
	}
	return s.jamo[i]
}

// nextSyllable composes the first syllable that starts after position i.
func (s *Stream) nextSyllable(i int) rune {
	n, _ := slices.BinarySearch(s.syllableStarts, i+1)
	if n >= len(s.syllableStarts) {
		return 0
	}
	start := s.syllableStarts[n]
	end := len(s.jamo)
	if n+1 < len(s.syllableStarts) {
		end = s.syllableStarts[n+1]
	}
	// Only the leading initial, vowel and final belong to the syllable;
	// spacing or punctuation before the next start does not.
	limit := start
	for limit < end && limit-start < 3 {
		if _, ok := hangul.ParseModernJamo(s.jamo[limit]); !ok {
			break
		}
		limit++
	}
	ch, ok := hangul.ComposeSyllable(s.jamo[start:limit])
	if !ok {
		return 0
	}
	return ch
}
