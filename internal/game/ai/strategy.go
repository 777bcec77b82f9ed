// Package ai 电脑出牌策略：按固定优先级选出一步，并通过规则引擎执行
package ai

import (
	"slices"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/apperrors"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/rule"
)

// Priority 决策命中的规则
type Priority int

const (
	HighValueCapture Priority = iota + 1 // 吃 A、黑桃 2、方块 10
	SpadeCapture                         // 吃黑桃
	BuildFormation                       // 组合
	AnyCapture                           // 任意吃牌
	Discard                              // 出最小的牌
)

var priorityNames = map[Priority]string{
	HighValueCapture: "high-value capture",
	SpadeCapture:     "spade capture",
	BuildFormation:   "build",
	AnyCapture:       "capture",
	Discard:          "discard",
}

func (p Priority) String() string {
	return priorityNames[p]
}

// Decision 电脑的选择
type Decision struct {
	Move     rule.Move
	Priority Priority
	prefer   []rule.OutcomeKind // 需要二选一时的偏好
}

// capturePrefs 吃牌时总是选择吃
var capturePrefs = []rule.OutcomeKind{rule.Chow, rule.Capture}

// buildPrefs 组合时选择新建或追加
var buildPrefs = []rule.OutcomeKind{rule.NewBuild, rule.Compound}

// Choose 按优先级选出一步
func Choose(hand []card.Card, board rule.Board) (Decision, error) {
	if len(hand) == 0 {
		return Decision{}, apperrors.ErrNoMove
	}

	if d, ok := findCapture(hand, board, func(taken []card.Card) bool {
		return slices.ContainsFunc(taken, card.Card.IsValuable)
	}); ok {
		d.Priority = HighValueCapture
		return d, nil
	}

	if d, ok := findCapture(hand, board, func(taken []card.Card) bool {
		return slices.ContainsFunc(taken, card.Card.IsSpade)
	}); ok {
		d.Priority = SpadeCapture
		return d, nil
	}

	if d, ok := findBuild(hand, board); ok {
		return d, nil
	}

	if d, ok := findCapture(hand, board, func([]card.Card) bool { return true }); ok {
		d.Priority = AnyCapture
		return d, nil
	}

	lowest, _ := card.Lowest(hand)
	return Decision{
		Move:     rule.Move{Side: rule.SideAI, Card: lowest},
		Priority: Discard,
	}, nil
}

// findCapture 按手牌顺序、再按桌面顺序，找第一个吃到的牌满足 accept 的吃法
func findCapture(hand []card.Card, board rule.Board, accept func([]card.Card) bool) (Decision, bool) {
	for _, h := range hand {
		for _, target := range board.CapturesFor(h.Value) {
			if accept(board.CardsAt(target)) {
				return Decision{
					Move:   rule.Move{Side: rule.SideAI, Card: h, Target: target},
					prefer: capturePrefs,
				}, true
			}
		}
	}
	return Decision{}, false
}

// findBuild 找第一组 (手牌, 散牌)，点数之和不超过 10、手中另有该点数的牌，且规则允许组合
func findBuild(hand []card.Card, board rule.Board) (Decision, bool) {
	for _, h := range hand {
		for _, tc := range board.Cards {
			sum := h.Value + tc.Card.Value
			if sum > rule.MaxBuildValue || !card.HasValueExcept(hand, sum, h) {
				continue
			}

			mv := rule.Move{Side: rule.SideAI, Card: h, Target: rule.OnCard(tc.Card)}
			res, err := rule.Evaluate(board, mv, hand)
			if err != nil {
				continue
			}
			if _, ok := pick(res, buildPrefs); ok {
				return Decision{Move: mv, Priority: BuildFormation, prefer: buildPrefs}, true
			}
		}
	}
	return Decision{}, false
}

// RunTurn 选出一步并通过规则引擎执行，返回结果和新的桌面
func RunTurn(hand []card.Card, board rule.Board) (rule.Outcome, rule.Board, error) {
	d, err := Choose(hand, board)
	if err != nil {
		return rule.Outcome{}, board, err
	}

	res, err := rule.Evaluate(board, d.Move, hand)
	if err != nil {
		return rule.Outcome{}, board, err
	}

	o := Resolve(d, res)
	return o, rule.Commit(board, o), nil
}

// Resolve 根据决策偏好从候选结果中选一个
func Resolve(d Decision, res rule.Resolution) rule.Outcome {
	if o, ok := pick(res, d.prefer); ok {
		return o
	}
	return res.Options[0]
}

func pick(res rule.Resolution, prefer []rule.OutcomeKind) (rule.Outcome, bool) {
	for _, kind := range prefer {
		if o, ok := res.Pick(kind); ok {
			return o, true
		}
	}
	return rule.Outcome{}, false
}
