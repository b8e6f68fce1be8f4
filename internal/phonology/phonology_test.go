package phonology

import (
	"testing"

	"github.com/jusunglee/hangulfun/internal/hangul"
	"github.com/stretchr/testify/assert"
)

func TestPronounce(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"reinforcement g", "학교", "학꾜"},
		{"reinforcement s", "학생", "학쌩"},
		{"reinforcement d", "먹다", "먹따"},
		{"reinforcement j", "숙제", "숙쩨"},
		{"reinforcement b", "입버릇", "입뻐릇"},
		{"resyllabification", "십오", "시보"},
		{"resyllabification across two", "밥을", "바블"},
		{"double final relinks", "있어", "이써"},
		{"velar nasal stays", "생일", "생일"},
		{"silent h", "좋아", "조아"},
		{"h before s", "좋습니다", "조씁니다"},
		{"compound relink and tense", "넋을", "넉쓸"},
		{"compound before consonant", "닭도", "닥또"},
		{"compound at end", "닭", "닥"},
		{"compound relink", "닭이", "달기"},
		{"compound lm", "삶", "삼"},
		{"compound nh before vowel", "않아", "아나"},
		{"compound lh before vowel", "싫어", "시러"},
		{"compound bs", "없어", "업써"},
		{"compound bs before consonant", "없다", "업따"},
		{"compound lp before consonant", "읊다", "읍따"},
		{"no final", "나무", "나무"},
		{"sonorant final", "한국", "한국"},
		{"words do not interact", "밥 이", "밥 이"},
		{"non-hangul untouched", "hi, 친구!", "hi, 친구!"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pronounce(tt.in))
		})
	}
}

func TestApplyPronunciationRulesJamo(t *testing.T) {
	got := ApplyPronunciationRules(hangul.DecomposeAll("넋을"))
	assert.Equal(t, "넉쓸", got)
	assert.Equal(t, "넉쓸", hangul.ComposeAll(got))
}

func TestCompoundConsonant(t *testing.T) {
	tests := []struct {
		ctx  RuleContext
		want RuleResult
	}{
		{RuleContext{Final: 'ᆪ', NextInitial: 'ᄋ'}, RuleResult{Action: ChangeBoth, Final: 'ᆨ', NextInitial: 'ᄉ'}},
		{RuleContext{Final: 'ᆪ', NextInitial: 'ᄃ'}, RuleResult{Action: ChangeFinal, Final: 'ᆨ'}},
		{RuleContext{Final: 'ᆪ'}, RuleResult{Action: ChangeFinal, Final: 'ᆨ'}},
		{RuleContext{Final: 'ᆭ', NextInitial: 'ᄋ'}, RuleResult{Action: RemoveFinalAndChangeNextInitial, NextInitial: 'ᄂ'}},
		{RuleContext{Final: 'ᆰ', NextInitial: 'ᄋ'}, RuleResult{Action: ChangeBoth, Final: 'ᆯ', NextInitial: 'ᄀ'}},
		{RuleContext{Final: 'ᆨ', NextInitial: 'ᄋ'}, RuleResult{Action: NoChange}},
		{RuleContext{Final: 'ᆩ', NextInitial: 'ᄀ'}, RuleResult{Action: NoChange}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompoundConsonant(tt.ctx), "%+v", tt.ctx)
	}
}

func TestEveryClusterIsReduced(t *testing.T) {
	for final := rune(hangul.FirstFinal); final <= hangul.LastFinal; final++ {
		compat := hangul.CompatWithFallback(final)
		_, isCluster := clusters[final]
		res := CompoundConsonant(RuleContext{Final: final, NextInitial: 'ᄃ'})
		if isCluster {
			assert.Equal(t, ChangeFinal, res.Action, "%c", compat)
			_, single := finalToInitial[res.Final]
			assert.True(t, single, "%c reduces to a single final", compat)
		} else {
			assert.Equal(t, NoChange, res.Action, "%c", compat)
		}
	}
	assert.Len(t, clusters, 11)
}

func TestResyllabify(t *testing.T) {
	assert.Equal(t, RuleResult{Action: RemoveFinalAndChangeNextInitial, NextInitial: 'ᄇ'},
		Resyllabify(RuleContext{Final: 'ᆸ', NextInitial: 'ᄋ'}))
	assert.Equal(t, RuleResult{Action: NoChange},
		Resyllabify(RuleContext{Final: 'ᆼ', NextInitial: 'ᄋ'}))
	assert.Equal(t, RuleResult{Action: RemoveFinal},
		Resyllabify(RuleContext{Final: 'ᇂ', NextInitial: 'ᄋ'}))
	assert.Equal(t, RuleResult{Action: NoChange},
		Resyllabify(RuleContext{Final: 'ᆸ', NextInitial: 'ᄀ'}))
	assert.Equal(t, RuleResult{Action: NoChange},
		Resyllabify(RuleContext{Final: 'ᆸ'}))
}

func TestReinforce(t *testing.T) {
	assert.Equal(t, RuleResult{Action: ChangeNextInitial, NextInitial: 'ᄁ'},
		Reinforce(RuleContext{Final: 'ᆨ', NextInitial: 'ᄀ'}))
	assert.Equal(t, RuleResult{Action: RemoveFinalAndChangeNextInitial, NextInitial: 'ᄊ'},
		Reinforce(RuleContext{Final: 'ᇂ', NextInitial: 'ᄉ'}))
	assert.Equal(t, RuleResult{Action: NoChange},
		Reinforce(RuleContext{Final: 'ᆫ', NextInitial: 'ᄀ'}))
	assert.Equal(t, RuleResult{Action: NoChange},
		Reinforce(RuleContext{Final: 'ᆨ', NextInitial: 'ᄂ'}))
	assert.Equal(t, RuleResult{Action: NoChange},
		Reinforce(RuleContext{Final: 'ᆨ'}))
}

func TestApplyStopsOnRemoval(t *testing.T) {
	calls := 0
	spy := Rule{Name: "spy", Apply: func(RuleContext) RuleResult {
		calls++
		return changeNextInitial('ᄁ')
	}}
	rules := []Rule{{Name: "resyllabification", Apply: Resyllabify}, spy}

	out := ApplyRules(rules, RuleContext{Final: 'ᇂ', NextInitial: 'ᄋ'})
	assert.False(t, out.KeepFinal)
	assert.False(t, out.OverrideNext)
	assert.Zero(t, calls)
	assert.Equal(t, []string{"resyllabification"}, out.Applied)

	out = ApplyRules(rules, RuleContext{Final: 'ᆼ', NextInitial: 'ᄋ'})
	assert.True(t, out.KeepFinal)
	assert.True(t, out.OverrideNext)
	assert.Equal(t, 'ᄁ', out.NextInitial)
	assert.Equal(t, 1, calls)
}

func TestApplyThreadsContext(t *testing.T) {
	out := Apply(RuleContext{Final: 'ᆪ', NextInitial: 'ᄋ'})
	assert.Equal(t, Outcome{
		KeepFinal:    true,
		Final:        'ᆨ',
		NextInitial:  'ᄊ',
		OverrideNext: true,
		Applied:      []string{"compound-consonant", "reinforcement"},
	}, out)

	out = Apply(RuleContext{Final: 'ᆫ', NextInitial: 'ᄀ'})
	assert.Equal(t, Outcome{KeepFinal: true, Final: 'ᆫ'}, out)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "RemoveFinalAndChangeNextInitial", RemoveFinalAndChangeNextInitial.String())
	assert.Equal(t, "Action(?)", Action(99).String())
}
