package phonology

import (
	"strings"

	"github.com/jusunglee/hangulfun/internal/hangul"
	"github.com/jusunglee/hangulfun/internal/jamostream"
)

// Outcome is the surface form of one final-consonant position after the
// whole pipeline has run.
type Outcome struct {
	// KeepFinal is false when a rule removed the final consonant.
	KeepFinal bool
	Final     rune
	// NextInitial replaces the written initial of the next syllable when
	// OverrideNext is set.
	NextInitial  rune
	OverrideNext bool
	// Applied names the rules that proposed a change, in order.
	Applied []string
}

// Apply folds Rules over ctx. Change results update the context and the
// next rule sees the update; a removal stops the pipeline.
func Apply(ctx RuleContext) Outcome {
	return ApplyRules(Rules, ctx)
}

// ApplyRules is Apply with an explicit rule list.
func ApplyRules(rules []Rule, ctx RuleContext) Outcome {
	original := ctx.NextInitial
	out := Outcome{KeepFinal: true}
	for _, rule := range rules {
		res := rule.Apply(ctx)
		if res.Action != NoChange {
			out.Applied = append(out.Applied, rule.Name)
		}
		switch res.Action {
		case ChangeNextInitial:
			ctx.NextInitial = res.NextInitial
		case ChangeFinal:
			ctx.Final = res.Final
		case ChangeBoth:
			ctx.Final = res.Final
			ctx.NextInitial = res.NextInitial
		case RemoveFinal:
			out.KeepFinal = false
		case RemoveFinalAndChangeNextInitial:
			out.KeepFinal = false
			ctx.NextInitial = res.NextInitial
		}
		if res.Terminal() {
			break
		}
	}
	out.Final = ctx.Final
	if ctx.NextInitial != original {
		out.NextInitial = ctx.NextInitial
		out.OverrideNext = true
	}
	return out
}

// ApplyPronunciationRules rewrites a decomposed jamo sequence into the
// jamo that are pronounced. Everything but final consonants and the
// initials they affect is copied through.
func ApplyPronunciationRules(jamo string) string {
	var b strings.Builder
	b.Grow(len(jamo))
	stream := jamostream.New(jamo)
	skipInitial := false
	for {
		w, ok := stream.Next()
		if !ok {
			break
		}
		switch {
		case hangul.IsFinalConsonant(w.Curr):
			ctx := RuleContext{Final: w.Curr}
			if hangul.IsInitialConsonant(w.Next) {
				ctx.NextInitial = w.Next
			}
			out := Apply(ctx)
			if out.KeepFinal {
				b.WriteRune(out.Final)
			}
			if out.OverrideNext {
				b.WriteRune(out.NextInitial)
				skipInitial = true
			}
		case hangul.IsInitialConsonant(w.Curr) && skipInitial:
			skipInitial = false
		default:
			b.WriteRune(w.Curr)
		}
	}
	return b.String()
}

// Pronounce decomposes text, applies the pronunciation rules and composes
// the result back into syllables for display.
func Pronounce(text string) string {
	return hangul.ComposeAll(ApplyPronunciationRules(hangul.DecomposeAll(text)))
}
