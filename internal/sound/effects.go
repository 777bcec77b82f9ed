package sound

import (
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/rule"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/score"
)

// Effect names a sound file (without extension) in the sound directory
type Effect string

const (
	EffectDeal    Effect = "deal"
	EffectPlace   Effect = "place"
	EffectCapture Effect = "capture"
	EffectBuild   Effect = "build"
	EffectWin     Effect = "win"
	EffectLose    Effect = "lose"
)

// ForOutcome picks the effect for a resolved play
func ForOutcome(k rule.OutcomeKind) Effect {
	switch k {
	case rule.Chow, rule.Capture:
		return EffectCapture
	case rule.NewBuild, rule.Compound, rule.Augment:
		return EffectBuild
	default:
		return EffectPlace
	}
}

// ForWinner picks the end-of-game effect from the local player's side; ties are silent
func ForWinner(w score.Winner) Effect {
	switch w {
	case score.PlayerWins:
		return EffectWin
	case score.AIWins:
		return EffectLose
	default:
		return ""
	}
}
