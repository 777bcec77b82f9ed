// Package score 计分：根据吃到的牌计算每方得分并判定胜负
package score

import (
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
)

const (
	mummyPoints     = 2
	spyPoints       = 1
	mostCardsBonus  = 2
	mostSpadesBonus = 1
)

// Winner 胜负结果
type Winner int

const (
	Tie Winner = iota
	PlayerWins
	AIWins
)

var winnerNames = map[Winner]string{
	Tie:        "平局",
	PlayerWins: "玩家",
	AIWins:     "电脑",
}

func (w Winner) String() string {
	return winnerNames[w]
}

// Score 一方的得分明细
type Score struct {
	CardsCount  int
	SpadesCount int
	Mummy       bool // 方块 10
	Spy         bool // 黑桃 2
	Aces        int
	Total       int
}

// Summary 终局结算，Total 已包含比较奖励
type Summary struct {
	Player Score
	AI     Score
	Winner Winner
}

// Of 根据吃牌堆计算得分（不含比较奖励）
func Of(pile []card.Card) Score {
	s := Score{CardsCount: len(pile)}
	for _, c := range pile {
		if c.IsSpade() {
			s.SpadesCount++
		}
		if c.IsAce() {
			s.Aces++
		}
		switch c {
		case card.Mummy:
			s.Mummy = true
		case card.Spy:
			s.Spy = true
		}
	}

	s.Total = s.Aces
	if s.Mummy {
		s.Total += mummyPoints
	}
	if s.Spy {
		s.Total += spyPoints
	}
	return s
}

// DetermineWinner 加上牌数和黑桃数的比较奖励后判定胜负
func DetermineWinner(player, ai Score) Summary {
	switch {
	case player.CardsCount > ai.CardsCount:
		player.Total += mostCardsBonus
	case ai.CardsCount > player.CardsCount:
		ai.Total += mostCardsBonus
	}

	switch {
	case player.SpadesCount > ai.SpadesCount:
		player.Total += mostSpadesBonus
	case ai.SpadesCount > player.SpadesCount:
		ai.Total += mostSpadesBonus
	}

	winner := Tie
	switch {
	case player.Total > ai.Total:
		winner = PlayerWins
	case ai.Total > player.Total:
		winner = AIWins
	}

	return Summary{Player: player, AI: ai, Winner: winner}
}

// ComputeSummary 由双方吃牌堆直接得出终局结算
func ComputeSummary(playerPile, aiPile []card.Card) Summary {
	return DetermineWinner(Of(playerPile), Of(aiPile))
}
