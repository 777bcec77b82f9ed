package rule

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/apperrors"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
)

// Evaluate 判断出牌与落点的关系，返回候选结果（不修改桌面）。
// hand 为出牌方当前手牌（可以包含正在打出的这张牌），用于判断组合将来能否被吃走。
func Evaluate(board Board, mv Move, hand []card.Card) (Resolution, error) {
	switch mv.Target.Kind {
	case TargetNone:
		return forced(Outcome{Kind: Placement, Move: mv}), nil

	case TargetCard:
		if board.FindCard(mv.Target.Card) < 0 {
			return Resolution{}, apperrors.ErrTargetNotFound
		}
		if mv.Target.Card.Value == mv.Card.Value {
			return evaluateEqual(board, mv, hand), nil
		}
		return evaluateSum(board, mv, hand)

	case TargetBuild:
		idx := board.FindBuild(mv.Target.BuildID)
		if idx < 0 {
			return Resolution{}, apperrors.ErrTargetNotFound
		}
		return evaluateBuild(board, mv, board.Builds[idx], hand)
	}

	return Resolution{}, apperrors.ErrTargetNotFound
}

// evaluateEqual 落在同点数散牌上：吃牌，或翻倍组合
func evaluateEqual(board Board, mv Move, hand []card.Card) Resolution {
	target := mv.Target.Card
	chow := Outcome{
		Kind:     Chow,
		Move:     mv,
		Captured: []card.Card{mv.Card, target},
	}

	if target.Value > maxDoublingValue {
		return forced(chow)
	}

	doubled := target.Value * 2
	if existing, ok := board.BuildWithValue(doubled); ok {
		// 对手的组合不能通过同点数出牌改变归属
		if existing.Owner != mv.Side {
			return forced(chow)
		}
		return Resolution{Options: []Outcome{chow, compoundOutcome(mv, existing, target)}}
	}

	if !card.HasValueExcept(hand, doubled, mv.Card) {
		return forced(chow)
	}
	return Resolution{Options: []Outcome{chow, newBuildOutcome(mv, doubled, target)}}
}

// evaluateSum 落在不同点数散牌上：组成点数之和的组合
func evaluateSum(board Board, mv Move, hand []card.Card) (Resolution, error) {
	target := mv.Target.Card
	sum := mv.Card.Value + target.Value
	if sum > MaxBuildValue {
		return Resolution{}, fmt.Errorf("%w: %d + %d 超过 %d", apperrors.ErrInvalidBuild, mv.Card.Value, target.Value, MaxBuildValue)
	}

	if existing, ok := board.BuildWithValue(sum); ok {
		if existing.Owner != mv.Side {
			return Resolution{}, fmt.Errorf("%w: 对手已有点数为 %d 的组合", apperrors.ErrInvalidBuild, sum)
		}
		return forced(compoundOutcome(mv, existing, target)), nil
	}

	if !card.HasValueExcept(hand, sum, mv.Card) {
		return Resolution{}, fmt.Errorf("%w: 手中没有点数为 %d 的牌", apperrors.ErrInvalidBuild, sum)
	}
	return forced(newBuildOutcome(mv, sum, target)), nil
}

// evaluateBuild 落在组合上：点数相等吃走，否则尝试加到对手的组合上
func evaluateBuild(board Board, mv Move, b *Build, hand []card.Card) (Resolution, error) {
	if mv.Card.Value == b.Value {
		captured := append(b.Cards(), mv.Card)
		return forced(Outcome{Kind: Capture, Move: mv, Captured: captured}), nil
	}

	if b.Owner == mv.Side {
		return Resolution{}, fmt.Errorf("%w: 不能改变自己组合的点数", apperrors.ErrInvalidBuild)
	}
	if b.IsCompound() {
		return Resolution{}, fmt.Errorf("%w: 复合组合不能加牌", apperrors.ErrInvalidBuild)
	}

	newValue := b.Value + mv.Card.Value
	if newValue > MaxBuildValue {
		return Resolution{}, fmt.Errorf("%w: 加牌后点数 %d 超过 %d", apperrors.ErrInvalidBuild, newValue, MaxBuildValue)
	}
	if other, ok := board.BuildWithValue(newValue); ok && other.ID != b.ID {
		return Resolution{}, fmt.Errorf("%w: 已有点数为 %d 的组合", apperrors.ErrInvalidBuild, newValue)
	}
	if !card.HasValueExcept(hand, newValue, mv.Card) {
		return Resolution{}, fmt.Errorf("%w: 手中没有点数为 %d 的牌", apperrors.ErrInvalidBuild, newValue)
	}

	augmented := b.Clone()
	augmented.Groups[0] = append(augmented.Groups[0], mv.Card)
	augmented.Value = newValue
	augmented.Owner = mv.Side
	return forced(Outcome{Kind: Augment, Move: mv, Build: augmented}), nil
}

func newBuildOutcome(mv Move, value int, target card.Card) Outcome {
	b := &Build{
		ID:     uuid.NewString(),
		Groups: [][]card.Card{card.SortDesc([]card.Card{mv.Card, target})},
		Value:  value,
		Owner:  mv.Side,
	}
	return Outcome{Kind: NewBuild, Move: mv, Build: b}
}

// compoundOutcome 追加一个新分组，组合点数与归属不变
func compoundOutcome(mv Move, existing *Build, target card.Card) Outcome {
	b := existing.Clone()
	b.Groups = append(b.Groups, card.SortDesc([]card.Card{mv.Card, target}))
	return Outcome{Kind: Compound, Move: mv, Build: b}
}
