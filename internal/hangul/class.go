// Package hangul implements codepoint arithmetic for the Hangul script:
// block classification, algorithmic syllable decomposition and
// composition, and the modern subset of the conjoining jamo.
package hangul

import "strings"

// Class identifies which Hangul-related Unicode block a codepoint belongs to.
type Class int

const (
	None Class = iota
	CompatibilityJamo
	JamoExtendedA
	JamoExtendedB
	Jamo
	Syllables
)

var classNames = [...]string{
	None:              "None",
	CompatibilityJamo: "CompatibilityJamo",
	JamoExtendedA:     "JamoExtendedA",
	JamoExtendedB:     "JamoExtendedB",
	Jamo:              "Jamo",
	Syllables:         "Syllables",
}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "Class(?)"
	}
	return classNames[c]
}

// Classify reports the block containing r. The ranges are disjoint.
func Classify(r rune) Class {
	switch {
	case r >= 0xAC00 && r <= 0xD7AF:
		return Syllables
	case r >= 0x1100 && r <= 0x11FF:
		return Jamo
	case r >= 0x3130 && r <= 0x318F:
		return CompatibilityJamo
	case r >= 0xA960 && r <= 0xA97F:
		return JamoExtendedA
	case r >= 0xD7B0 && r <= 0xD7FF:
		return JamoExtendedB
	default:
		return None
	}
}

// Run is a maximal substring whose characters share a Class.
type Run struct {
	Class Class
	Text  string
}

// Split partitions text into runs of equal class. Concatenating the Text
// of every run reproduces the input.
func Split(text string) []Run {
	var runs []Run
	start := 0
	current := None
	for i, r := range text {
		class := Classify(r)
		if i == 0 {
			current = class
			continue
		}
		if class != current {
			runs = append(runs, Run{Class: current, Text: text[start:i]})
			start = i
			current = class
		}
	}
	if start < len(text) {
		runs = append(runs, Run{Class: current, Text: text[start:]})
	}
	return runs
}

// Words returns the syllable runs of text in order, e.g. the Hangul words
// of a lyric line with punctuation and spacing dropped.
func Words(text string) []string {
	var words []string
	for _, run := range Split(text) {
		if run.Class == Syllables {
			words = append(words, run.Text)
		}
	}
	return words
}

// ContainsSyllables reports whether text has at least one precomposed syllable.
func ContainsSyllables(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool { return Classify(r) == Syllables }) >= 0
}
