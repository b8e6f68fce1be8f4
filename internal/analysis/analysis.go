// Package analysis bundles the Hangul engine into reports for a single
// character or a whole word: decomposition, the pronounced surface form,
// romanizations and per-jamo hints.
package analysis

import (
	"fmt"
	"strings"

	"github.com/jusunglee/hangulfun/internal/hangul"
	"github.com/jusunglee/hangulfun/internal/jamostream"
	"github.com/jusunglee/hangulfun/internal/phonology"
	"github.com/jusunglee/hangulfun/internal/pronunciation"
	"github.com/jusunglee/hangulfun/internal/romanize"
)

// Jamo describes one conjoining jamo of a syllable.
type Jamo struct {
	Char      rune   `json:"-"`
	Kind      string `json:"kind"`
	Text      string `json:"jamo"`
	Compat    string `json:"compat"`
	Codepoint string `json:"codepoint"`
	// Romanized is the spelling in its own syllable. For finals Linked is
	// the spelling when released into a following vowel.
	Romanized string `json:"romanized"`
	Linked    string `json:"linked,omitempty"`
	Hint      string `json:"hint,omitempty"`
}

// Silent reports whether the jamo has no sound of its own.
func (j Jamo) Silent() bool {
	return j.Char == hangul.SilentInitial
}

// SyllableInfo is one precomposed syllable of a word.
type SyllableInfo struct {
	Text    string `json:"text"`
	Initial Jamo   `json:"initial"`
	Medial  Jamo   `json:"medial"`
	Final   *Jamo  `json:"final,omitempty"`
}

// Word is the full analysis of a piece of text.
type Word struct {
	Text       string `json:"text"`
	Decomposed string `json:"decomposed"`
	// Surface is the jamo sequence after the pronunciation rules ran and
	// Pronounced is that sequence composed for display.
	Surface          string         `json:"surface"`
	Pronounced       string         `json:"pronounced"`
	Romanized        string         `json:"romanized"`
	LiteralRomanized string         `json:"literal_romanized"`
	Syllables        []SyllableInfo `json:"syllables"`
}

// Analyze runs the whole engine over text.
func Analyze(text string) Word {
	decomposed := hangul.DecomposeAll(text)
	surface := phonology.ApplyPronunciationRules(decomposed)
	w := Word{
		Text:             text,
		Decomposed:       decomposed,
		Surface:          surface,
		Pronounced:       hangul.ComposeAll(surface),
		Romanized:        romanize.Romanize(surface),
		LiteralRomanized: romanize.Romanize(decomposed),
	}

	stream := jamostream.New(decomposed)
	for _, ch := range text {
		syl, ok := hangul.DecomposeSyllable(ch)
		if !ok {
			// Anything that is not a syllable decomposes to itself.
			stream.Next()
			continue
		}
		info := SyllableInfo{Text: string(ch)}
		info.Initial = describeInStream(stream)
		info.Medial = describeInStream(stream)
		if syl.HasFinal() {
			final := describeInStream(stream)
			info.Final = &final
		}
		w.Syllables = append(w.Syllables, info)
	}
	return w
}

func describeInStream(s *jamostream.Stream) Jamo {
	win, _ := s.Next()
	j := describeJamo(win.Curr)
	j.Hint = pronunciation.HintInStream(win)
	return j
}

func describeJamo(ch rune) Jamo {
	j := Jamo{
		Char:      ch,
		Text:      string(ch),
		Compat:    string(hangul.CompatWithFallback(ch)),
		Codepoint: fmt.Sprintf("%#x", ch),
		Hint:      pronunciation.Hint(ch),
	}
	if m, ok := hangul.ParseModernJamo(ch); ok {
		j.Kind = m.Kind.String()
	}
	j.Romanized, _ = romanize.Jamo(ch, false)
	if hangul.IsFinalConsonant(ch) {
		j.Linked, _ = romanize.Jamo(ch, true)
	}
	return j
}

// CharInfo describes a single character.
type CharInfo struct {
	Char      rune   `json:"-"`
	Text      string `json:"text"`
	Codepoint string `json:"codepoint"`
	Class     string `json:"class"`
	Initial   *Jamo  `json:"initial,omitempty"`
	Medial    *Jamo  `json:"medial,omitempty"`
	Final     *Jamo  `json:"final,omitempty"`
}

// Describe classifies ch and, for a precomposed syllable, breaks it into
// its jamo.
func Describe(ch rune) CharInfo {
	info := CharInfo{
		Char:      ch,
		Text:      string(ch),
		Codepoint: fmt.Sprintf("%#x", ch),
		Class:     hangul.Classify(ch).String(),
	}
	syl, ok := hangul.DecomposeSyllable(ch)
	if !ok {
		return info
	}
	initial, medial := describeJamo(syl.Initial), describeJamo(syl.Medial)
	info.Initial, info.Medial = &initial, &medial
	if syl.HasFinal() {
		final := describeJamo(syl.Final)
		info.Final = &final
	}
	return info
}

// String formats the character as one line of a decode report.
func (c CharInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ch=%s (%s) %s", c.Text, c.Codepoint, c.Class)
	if c.Initial == nil {
		return b.String()
	}
	fmt.Fprintf(&b, " initial=%s (%s) medial=%s (%s)",
		c.Initial.Compat, c.Initial.Codepoint, c.Medial.Compat, c.Medial.Codepoint)
	if c.Final != nil {
		fmt.Fprintf(&b, " final=%s (%s)", c.Final.Compat, c.Final.Codepoint)
	}
	return b.String()
}

// DescribeAll describes every character of text.
func DescribeAll(text string) []CharInfo {
	out := make([]CharInfo, 0, len(text))
	for _, ch := range text {
		out = append(out, Describe(ch))
	}
	return out
}
