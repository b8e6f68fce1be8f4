package transliteration

import "unicode"

// Script is the writing system a piece of text is romanized from.
type Script string

const (
	Korean  Script = "korean"
	Chinese Script = "chinese"
	Latin   Script = "latin"
)

// DetectScript picks the script to romanize text from. Any Hangul wins
// over Han characters.
func DetectScript(text string) Script {
	for _, r := range text {
		if unicode.Is(unicode.Hangul, r) {
			return Korean
		}
	}
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return Chinese
		}
	}
	return Latin
}

// Transliterate romanizes Korean as pronounced and Chinese as toneless
// pinyin. Hanja inside Korean text is spelled as pinyin. Returns empty
// string for text with nothing to romanize.
func Transliterate(text string) string {
	switch DetectScript(text) {
	case Korean:
		return romanizeMixed(text, romanizeKorean)
	case Chinese:
		return romanizeChinese(text)
	default:
		return ""
	}
}

// TransliterateLiteral is Transliterate without the Korean pronunciation
// rules, spelling each syllable as written.
func TransliterateLiteral(text string) string {
	if DetectScript(text) == Korean {
		return romanizeMixed(text, romanizeKoreanLiteral)
	}
	return Transliterate(text)
}
