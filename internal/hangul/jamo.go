package hangul

// JamoKind is the position a modern conjoining jamo occupies in a syllable.
type JamoKind int

const (
	InitialConsonant JamoKind = iota + 1
	Vowel
	FinalConsonant
)

func (k JamoKind) String() string {
	switch k {
	case InitialConsonant:
		return "initial"
	case Vowel:
		return "vowel"
	case FinalConsonant:
		return "final"
	default:
		return "unknown"
	}
}

// Modern (non-archaic) sub-ranges of the Hangul Jamo block.
const (
	FirstInitial = 'ᄀ' // U+1100
	LastInitial  = 'ᄒ' // U+1112
	FirstVowel   = 'ᅡ' // U+1161
	LastVowel    = 'ᅵ' // U+1175
	FirstFinal   = 'ᆨ' // U+11A8
	LastFinal    = 'ᇂ' // U+11C2
)

// SilentInitial is the placeholder initial consonant ㅇ, which has no sound
// at the start of a syllable.
const SilentInitial = 'ᄋ'

// ModernJamo is a conjoining jamo tagged with its syllable position.
type ModernJamo struct {
	Kind JamoKind
	Char rune
}

// ParseModernJamo tags r with its position. ok is false for characters
// outside the three modern sub-ranges, including archaic jamo.
func ParseModernJamo(r rune) (ModernJamo, bool) {
	switch {
	case r >= FirstInitial && r <= LastInitial:
		return ModernJamo{Kind: InitialConsonant, Char: r}, true
	case r >= FirstVowel && r <= LastVowel:
		return ModernJamo{Kind: Vowel, Char: r}, true
	case r >= FirstFinal && r <= LastFinal:
		return ModernJamo{Kind: FinalConsonant, Char: r}, true
	default:
		return ModernJamo{}, false
	}
}

func IsInitialConsonant(r rune) bool { return r >= FirstInitial && r <= LastInitial }

func IsVowel(r rune) bool { return r >= FirstVowel && r <= LastVowel }

func IsFinalConsonant(r rune) bool { return r >= FirstFinal && r <= LastFinal }

var initialCompat = [LCount]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

var finalCompat = [TCount - 1]rune{
	'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ',
	'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ',
	'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// CompatJamo maps a modern conjoining jamo to its Hangul Compatibility Jamo
// counterpart, which renders standalone instead of combining.
func CompatJamo(r rune) (rune, bool) {
	j, ok := ParseModernJamo(r)
	if !ok {
		return 0, false
	}
	switch j.Kind {
	case InitialConsonant:
		return initialCompat[r-FirstInitial], true
	case Vowel:
		// The vowels are contiguous in both blocks.
		return 'ㅏ' + (r - FirstVowel), true
	default:
		return finalCompat[r-FirstFinal], true
	}
}

// CompatWithFallback is CompatJamo, returning r itself when it has no
// compatibility form.
func CompatWithFallback(r rune) rune {
	if c, ok := CompatJamo(r); ok {
		return c
	}
	return r
}
