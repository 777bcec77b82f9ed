package rule

import (
	"fmt"
	"slices"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
)

// Board 桌面状态：散牌和组合。回合内唯一的权威状态，按值传递，
// Commit 返回新的 Board 而不修改传入的 Board。
type Board struct {
	Cards  []TableCard
	Builds []*Build
}

// Clone 深拷贝
func (b Board) Clone() Board {
	out := Board{Cards: slices.Clone(b.Cards)}
	for _, bd := range b.Builds {
		out.Builds = append(out.Builds, bd.Clone())
	}
	return out
}

// IsEmpty 桌面上没有任何牌
func (b Board) IsEmpty() bool {
	return len(b.Cards) == 0 && len(b.Builds) == 0
}

// LooseCards 全部散牌
func (b Board) LooseCards() []card.Card {
	cards := make([]card.Card, len(b.Cards))
	for i, tc := range b.Cards {
		cards[i] = tc.Card
	}
	return cards
}

// FindCard 查找散牌下标
func (b Board) FindCard(c card.Card) int {
	return slices.IndexFunc(b.Cards, func(tc TableCard) bool { return tc.Card == c })
}

// FindBuild 查找组合下标
func (b Board) FindBuild(id string) int {
	return slices.IndexFunc(b.Builds, func(bd *Build) bool { return bd.ID == id })
}

// BuildWithValue 查找指定点数的组合
func (b Board) BuildWithValue(value int) (*Build, bool) {
	for _, bd := range b.Builds {
		if bd.Value == value {
			return bd, true
		}
	}
	return nil, false
}

// CapturesFor 返回用点数为 value 的牌能吃走的所有落点（先散牌后组合，按桌面顺序）
func (b Board) CapturesFor(value int) []Target {
	var targets []Target
	for _, tc := range b.Cards {
		if tc.Card.Value == value {
			targets = append(targets, OnCard(tc.Card))
		}
	}
	for _, bd := range b.Builds {
		if bd.Value == value {
			targets = append(targets, OnBuild(bd.ID))
		}
	}
	return targets
}

// CardsAt 返回落点上会被吃走的桌面牌
func (b Board) CardsAt(t Target) []card.Card {
	switch t.Kind {
	case TargetCard:
		if b.FindCard(t.Card) >= 0 {
			return []card.Card{t.Card}
		}
	case TargetBuild:
		if idx := b.FindBuild(t.BuildID); idx >= 0 {
			return b.Builds[idx].Cards()
		}
	}
	return nil
}

// Validate 检查不变量：组合点数在 [2,10]、每个分组之和等于组合点数、没有重复点数的组合
func (b Board) Validate() error {
	seen := make(map[int]string, len(b.Builds))
	for _, bd := range b.Builds {
		if bd.Value < 2 || bd.Value > MaxBuildValue {
			return fmt.Errorf("组合 %s 点数越界", bd)
		}
		for _, g := range bd.Groups {
			if card.Sum(g) != bd.Value {
				return fmt.Errorf("组合 %s 分组点数不一致", bd)
			}
		}
		if other, dup := seen[bd.Value]; dup {
			return fmt.Errorf("组合 %s 与 %s 点数重复", bd.ID, other)
		}
		seen[bd.Value] = bd.ID
	}
	return nil
}
