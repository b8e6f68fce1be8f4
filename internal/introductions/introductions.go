// Package introductions drills the Korean copula with the greeting and
// introduction exchange from a first-year textbook unit.
package introductions

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/jusunglee/hangulfun/internal/hangul"
)

var (
	Names       = []string{"양양", "키샨", "마이클", "크리스"}
	Countries   = []string{"미국", "중국", "일본", "인도"}
	Occupations = []string{"선생님", "학생", "의사", "요리사"}
)

var (
	ErrEmpty       = errors.New("word is empty")
	ErrNotSyllable = errors.New("last character is not a Hangul syllable")
)

// EndsInVowel reports whether the last syllable of word has no final
// consonant.
func EndsInVowel(word string) (bool, error) {
	runes := []rune(word)
	if len(runes) == 0 {
		return false, ErrEmpty
	}
	syl, ok := hangul.DecomposeSyllable(runes[len(runes)-1])
	if !ok {
		return false, fmt.Errorf("%q: %w", word, ErrNotSyllable)
	}
	return !syl.HasFinal(), nil
}

// Copula returns the polite copula that follows word: 예요 after a vowel,
// 이에요 after a consonant.
func Copula(word string) (string, error) {
	vowel, err := EndsInVowel(word)
	if err != nil {
		return "", err
	}
	if vowel {
		return "예요", nil
	}
	return "이에요", nil
}

// Cast fills the blanks of the dialogue.
type Cast struct {
	Name       string
	Country    string
	Occupation string
}

// RandomCast picks a name, country and occupation at random.
func RandomCast() Cast {
	return Cast{
		Name:       lo.Sample(Names),
		Country:    lo.Sample(Countries),
		Occupation: lo.Sample(Occupations),
	}
}

// Dialogue returns the six lines of the exchange for c.
func Dialogue(c Cast) ([]string, error) {
	nameCopula, err := Copula(c.Name)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	occupationCopula, err := Copula(c.Occupation)
	if err != nil {
		return nil, fmt.Errorf("occupation: %w", err)
	}
	return []string{
		"안녕하세요?",
		fmt.Sprintf("안녕하세요? 저는 %s%s.", c.Name, nameCopula),
		fmt.Sprintf("%s 씨는 %s 사람이에요?", c.Name, c.Country),
		fmt.Sprintf("네, 저는 %s 사람이에요.", c.Country),
		fmt.Sprintf("%s 씨는 %s%s?", c.Name, c.Occupation, occupationCopula),
		fmt.Sprintf("네, 저는 %s%s.", c.Occupation, occupationCopula),
	}, nil
}
