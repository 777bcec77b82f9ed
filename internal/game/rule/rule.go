package rule

import (
	"fmt"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
)

const (
	// MaxBuildValue 组合点数上限
	MaxBuildValue = card.MaxValue
	// maxDoublingValue 同点数牌可以翻倍组合的最大点数
	maxDoublingValue = MaxBuildValue / 2
)

// Side 出牌方
type Side int

const (
	SidePlayer Side = iota // 玩家
	SideAI                 // 电脑
)

var sideNames = map[Side]string{
	SidePlayer: "player",
	SideAI:     "ai",
}

func (s Side) String() string {
	return sideNames[s]
}

// Opponent 返回对手
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideAI
	}
	return SidePlayer
}

// TableCard 桌面上不属于任何组合的散牌
type TableCard struct {
	Card     card.Card
	PlayedBy Side
}

// Build 桌面上的组合，可被点数等于 Value 的牌整体吃走。
// 每个分组的点数之和都等于 Value；普通组合只有一个分组，
// 复合组合（同点数追加）有多个分组。
type Build struct {
	ID     string
	Groups [][]card.Card
	Value  int
	Owner  Side
}

// Cards 按分组顺序展开的全部牌
func (b *Build) Cards() []card.Card {
	var cards []card.Card
	for _, g := range b.Groups {
		cards = append(cards, g...)
	}
	return cards
}

// IsCompound 是否为复合组合
func (b *Build) IsCompound() bool {
	return len(b.Groups) > 1
}

// Clone 深拷贝
func (b *Build) Clone() *Build {
	groups := make([][]card.Card, len(b.Groups))
	for i, g := range b.Groups {
		groups[i] = append([]card.Card(nil), g...)
	}
	return &Build{ID: b.ID, Groups: groups, Value: b.Value, Owner: b.Owner}
}

func (b *Build) String() string {
	return fmt.Sprintf("[%d: %s]", b.Value, card.Format(b.Cards()))
}

// TargetKind 出牌落点类型
type TargetKind int

const (
	TargetNone  TargetKind = iota // 空位
	TargetCard                    // 散牌
	TargetBuild                   // 组合
)

// Target 出牌落点
type Target struct {
	Kind    TargetKind
	Card    card.Card
	BuildID string
}

// OnCard 落在散牌上
func OnCard(c card.Card) Target {
	return Target{Kind: TargetCard, Card: c}
}

// OnBuild 落在组合上
func OnBuild(id string) Target {
	return Target{Kind: TargetBuild, BuildID: id}
}

// Move 一次出牌请求
type Move struct {
	Side   Side
	Card   card.Card
	Target Target
}

// OutcomeKind 出牌结果类型
type OutcomeKind int

const (
	Placement OutcomeKind = iota // 放到桌上
	Chow                         // 吃同点数散牌
	NewBuild                     // 新建组合
	Compound                     // 追加到自己的组合
	Capture                      // 吃走组合
	Augment                      // 加到对手组合上并接管
)

var outcomeNames = map[OutcomeKind]string{
	Placement: "place",
	Chow:      "chow",
	NewBuild:  "build",
	Compound:  "compound",
	Capture:   "capture",
	Augment:   "augment",
}

func (k OutcomeKind) String() string {
	return outcomeNames[k]
}

// ParseOutcomeKind 由名称解析结果类型
func ParseOutcomeKind(s string) (OutcomeKind, bool) {
	for k, name := range outcomeNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Outcome 一次出牌的确定结果
type Outcome struct {
	Kind     OutcomeKind
	Move     Move
	Captured []card.Card // Chow / Capture 时进入吃牌堆的牌
	Build    *Build      // NewBuild / Compound / Augment 之后的组合
}

func (o Outcome) String() string {
	switch o.Kind {
	case Chow, Capture:
		return fmt.Sprintf("%s %s takes %s", o.Kind, o.Move.Card, card.Format(o.Captured))
	case NewBuild, Compound, Augment:
		return fmt.Sprintf("%s %s -> %s", o.Kind, o.Move.Card, o.Build)
	default:
		return fmt.Sprintf("%s %s", o.Kind, o.Move.Card)
	}
}

// Resolution 出牌的候选结果；多于一个时需要出牌方选择
type Resolution struct {
	Options []Outcome
}

// IsChoice 是否需要选择
func (r Resolution) IsChoice() bool {
	return len(r.Options) > 1
}

// Pick 选出指定类型的结果
func (r Resolution) Pick(kind OutcomeKind) (Outcome, bool) {
	for _, o := range r.Options {
		if o.Kind == kind {
			return o, true
		}
	}
	return Outcome{}, false
}

// Kinds 候选结果类型
func (r Resolution) Kinds() []OutcomeKind {
	kinds := make([]OutcomeKind, len(r.Options))
	for i, o := range r.Options {
		kinds[i] = o.Kind
	}
	return kinds
}

func forced(o Outcome) Resolution {
	return Resolution{Options: []Outcome{o}}
}
