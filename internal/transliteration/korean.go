package transliteration

import (
	"github.com/jusunglee/hangulfun/internal/hangul"
	"github.com/jusunglee/hangulfun/internal/phonology"
	"github.com/jusunglee/hangulfun/internal/romanize"
)

// romanizeKorean romanizes text as it is pronounced: syllables are
// decomposed, the pronunciation rules run, and the surface jamo are
// romanized.
func romanizeKorean(text string) string {
	return romanize.Romanize(phonology.ApplyPronunciationRules(hangul.DecomposeAll(text)))
}

// romanizeKoreanLiteral romanizes text letter by letter.
func romanizeKoreanLiteral(text string) string {
	return romanize.Text(text)
}
