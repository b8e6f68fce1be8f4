package phonology

import "github.com/jusunglee/hangulfun/internal/hangul"

// clusterOutcome is how one compound final surfaces. Before the silent
// initial the second member normally relinks onto the next syllable; an
// h-member is silent instead, and the first member relinks.
type clusterOutcome struct {
	reduced     rune // surviving final before a consonant or at the end
	keep        rune // final kept before the silent initial
	carry       rune // initial carried onto the next syllable
	dropBeforeV bool // the whole final leaves; carry becomes the next initial
}

var clusters = map[rune]clusterOutcome{
	// ㄳ 넋 [넉], 넋을 [넉쓸]
	'ᆪ': {reduced: 'ᆨ', keep: 'ᆨ', carry: 'ᄉ'},
	// ㄵ 앉아 [안자]
	'ᆬ': {reduced: 'ᆫ', keep: 'ᆫ', carry: 'ᄌ'},
	// ㄶ 않아 [아나]
	'ᆭ': {reduced: 'ᆫ', carry: 'ᄂ', dropBeforeV: true},
	// ㄺ 닭 [닥], 닭이 [달기]
	'ᆰ': {reduced: 'ᆨ', keep: 'ᆯ', carry: 'ᄀ'},
	// ㄻ 삶 [삼], 삶이 [살미]
	'ᆱ': {reduced: 'ᆷ', keep: 'ᆯ', carry: 'ᄆ'},
	// ㄼ 여덟 [여덜]
	'ᆲ': {reduced: 'ᆯ', keep: 'ᆯ', carry: 'ᄇ'},
	// ㄽ
	'ᆳ': {reduced: 'ᆯ', keep: 'ᆯ', carry: 'ᄉ'},
	// ㄾ 핥아 [할타]
	'ᆴ': {reduced: 'ᆯ', keep: 'ᆯ', carry: 'ᄐ'},
	// ㄿ 읊다 [읍따], 읊어 [을퍼]
	'ᆵ': {reduced: 'ᆸ', keep: 'ᆯ', carry: 'ᄑ'},
	// ㅀ 싫어 [시러]
	'ᆶ': {reduced: 'ᆯ', carry: 'ᄅ', dropBeforeV: true},
	// ㅄ 없다 [업따], 없어 [업써]
	'ᆹ': {reduced: 'ᆸ', keep: 'ᆸ', carry: 'ᄉ'},
}

// CompoundConsonant reduces a two-consonant final to the one that is
// pronounced. Before the silent initial the other member moves onto the
// next syllable. Non-cluster finals are left alone.
func CompoundConsonant(ctx RuleContext) RuleResult {
	c, ok := clusters[ctx.Final]
	if !ok {
		return noChange()
	}
	if ctx.NextInitial != hangul.SilentInitial {
		return changeFinal(c.reduced)
	}
	if c.dropBeforeV {
		return removeFinalAndChangeNextInitial(c.carry)
	}
	return changeBoth(c.keep, c.carry)
}

// finalToInitial is the initial consonant a single final becomes when it
// is pronounced at the start of the next syllable.
var finalToInitial = map[rune]rune{
	'ᆨ': 'ᄀ',
	'ᆩ': 'ᄁ',
	'ᆫ': 'ᄂ',
	'ᆮ': 'ᄃ',
	'ᆯ': 'ᄅ',
	'ᆷ': 'ᄆ',
	'ᆸ': 'ᄇ',
	'ᆺ': 'ᄉ',
	'ᆻ': 'ᄊ',
	'ᆽ': 'ᄌ',
	'ᆾ': 'ᄎ',
	'ᆿ': 'ᄏ',
	'ᇀ': 'ᄐ',
	'ᇁ': 'ᄑ',
}

// Resyllabify moves a final consonant onto a following silent initial.
// ㅇ never moves and ㅎ goes silent.
func Resyllabify(ctx RuleContext) RuleResult {
	if ctx.NextInitial != hangul.SilentInitial {
		return noChange()
	}
	switch ctx.Final {
	case 'ᆼ':
		return noChange()
	case 'ᇂ':
		return removeFinal()
	}
	initial, ok := finalToInitial[ctx.Final]
	if !ok {
		return noChange()
	}
	return removeFinalAndChangeNextInitial(initial)
}

// tenseInducing are the obstruent finals, after which a plain initial is
// pronounced tense.
var tenseInducing = map[rune]bool{
	'ᆨ': true, 'ᆩ': true, 'ᆿ': true,
	'ᆮ': true, 'ᆺ': true, 'ᆻ': true, 'ᆽ': true, 'ᆾ': true, 'ᇀ': true,
	'ᆸ': true, 'ᇁ': true,
}

var tensed = map[rune]rune{
	'ᄀ': 'ᄁ',
	'ᄃ': 'ᄄ',
	'ᄇ': 'ᄈ',
	'ᄉ': 'ᄊ',
	'ᄌ': 'ᄍ',
}

// Reinforce tenses a plain initial after an obstruent final. ㅎ before ㅅ
// is absorbed into a tense ㅆ.
func Reinforce(ctx RuleContext) RuleResult {
	next, ok := tensed[ctx.NextInitial]
	if !ok {
		return noChange()
	}
	if ctx.Final == 'ᇂ' && ctx.NextInitial == 'ᄉ' {
		return removeFinalAndChangeNextInitial(next)
	}
	if !tenseInducing[ctx.Final] {
		return noChange()
	}
	return changeNextInitial(next)
}
