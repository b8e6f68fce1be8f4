// Package phonology rewrites decomposed Hangul into the jamo that are
// actually pronounced, by running an ordered list of context-sensitive
// rules over every final consonant.
package phonology

// RuleContext is what a rule sees at one final-consonant position: the
// final consonant and the initial consonant of the following syllable
// (zero when no syllable follows).
type RuleContext struct {
	Final       rune
	NextInitial rune
}

// HasNextInitial reports whether a syllable follows the final consonant.
func (c RuleContext) HasNextInitial() bool {
	return c.NextInitial != 0
}

// Action is the kind of rewrite a rule proposes.
type Action int

const (
	NoChange Action = iota
	ChangeNextInitial
	ChangeFinal
	ChangeBoth
	RemoveFinal
	RemoveFinalAndChangeNextInitial
)

func (a Action) String() string {
	switch a {
	case NoChange:
		return "NoChange"
	case ChangeNextInitial:
		return "ChangeNextInitial"
	case ChangeFinal:
		return "ChangeFinal"
	case ChangeBoth:
		return "ChangeBoth"
	case RemoveFinal:
		return "RemoveFinal"
	case RemoveFinalAndChangeNextInitial:
		return "RemoveFinalAndChangeNextInitial"
	default:
		return "Action(?)"
	}
}

// RuleResult is the single rewrite a rule returns. Final and NextInitial
// are only meaningful for the actions that carry them.
type RuleResult struct {
	Action      Action
	Final       rune
	NextInitial rune
}

// Terminal reports whether the result stops the pipeline for this position.
func (r RuleResult) Terminal() bool {
	return r.Action == RemoveFinal || r.Action == RemoveFinalAndChangeNextInitial
}

func noChange() RuleResult { return RuleResult{Action: NoChange} }

func changeNextInitial(j rune) RuleResult {
	return RuleResult{Action: ChangeNextInitial, NextInitial: j}
}

func changeFinal(j rune) RuleResult { return RuleResult{Action: ChangeFinal, Final: j} }

func changeBoth(final, next rune) RuleResult {
	return RuleResult{Action: ChangeBoth, Final: final, NextInitial: next}
}

func removeFinal() RuleResult { return RuleResult{Action: RemoveFinal} }

func removeFinalAndChangeNextInitial(j rune) RuleResult {
	return RuleResult{Action: RemoveFinalAndChangeNextInitial, NextInitial: j}
}

// Rule is a pure rewrite of one final-consonant context.
type Rule struct {
	Name  string
	Apply func(RuleContext) RuleResult
}

// Rules is the pipeline order. Compound finals have to be reduced to a
// single consonant before liaison and tensification can match them.
var Rules = []Rule{
	{Name: "compound-consonant", Apply: CompoundConsonant},
	{Name: "resyllabification", Apply: Resyllabify},
	{Name: "reinforcement", Apply: Reinforce},
}
