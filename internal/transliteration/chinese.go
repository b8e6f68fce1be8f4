package transliteration

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

var pinyinArgs = func() pinyin.Args {
	args := pinyin.NewArgs()
	args.Style = pinyin.Normal // no tone marks
	return args
}()

func isHan(r rune) bool { return unicode.Is(unicode.Han, r) }

// romanizeChinese spells each Han character as toneless pinyin. Characters
// without a reading, and everything that is not Han, pass through.
func romanizeChinese(text string) string {
	var b strings.Builder
	for _, r := range text {
		if !isHan(r) {
			b.WriteRune(r)
			continue
		}
		if py := pinyin.SinglePinyin(r, pinyinArgs); len(py) > 0 {
			b.WriteString(py[0])
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// romanizeMixed spells Han runs with romanizeChinese and hands the text
// between them to korean, so Hanja in a Korean line is romanized instead
// of copied. Runs are split on Han boundaries only; the Korean rules never
// see across a Hanja run.
func romanizeMixed(text string, korean func(string) string) string {
	var b strings.Builder
	start, han := 0, false
	flush := func(end int) {
		if end == start {
			return
		}
		if han {
			b.WriteString(romanizeChinese(text[start:end]))
		} else {
			b.WriteString(korean(text[start:end]))
		}
	}
	for i, r := range text {
		if h := isHan(r); h != han {
			flush(i)
			start, han = i, h
		}
	}
	flush(len(text))
	return b.String()
}
