package rule

import (
	"slices"
)

// Commit 应用一个已选定的结果，返回新的桌面
func Commit(board Board, o Outcome) Board {
	next := board.Clone()

	switch o.Kind {
	case Placement:
		next.Cards = append(next.Cards, TableCard{Card: o.Move.Card, PlayedBy: o.Move.Side})

	case Chow:
		next.removeCard(o.Move.Target)

	case NewBuild:
		next.removeCard(o.Move.Target)
		next.Builds = append(next.Builds, o.Build.Clone())

	case Compound:
		next.removeCard(o.Move.Target)
		next.replaceBuild(o.Build)

	case Augment:
		next.replaceBuild(o.Build)

	case Capture:
		if idx := next.FindBuild(o.Move.Target.BuildID); idx >= 0 {
			next.Builds = slices.Delete(next.Builds, idx, idx+1)
		}
	}

	return next
}

func (b *Board) removeCard(t Target) {
	if t.Kind != TargetCard {
		return
	}
	if idx := b.FindCard(t.Card); idx >= 0 {
		b.Cards = slices.Delete(b.Cards, idx, idx+1)
	}
}

func (b *Board) replaceBuild(bd *Build) {
	if idx := b.FindBuild(bd.ID); idx >= 0 {
		b.Builds[idx] = bd.Clone()
	}
}
