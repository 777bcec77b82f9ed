package session

import (
	"fmt"
	"math/rand/v2"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/apperrors"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/rule"
)

// DefaultHandSize 每轮每人 10 张，两轮正好发完 40 张
const DefaultHandSize = 10

// NewGameDeal 开局发牌结果
type NewGameDeal struct {
	Deck       card.Deck // 剩余牌堆
	PlayerHand []card.Card
	AIHand     []card.Card
	TableCards []rule.TableCard
}

// RoundDeal 第二轮发牌结果
type RoundDeal struct {
	PlayerHand []card.Card
	AIHand     []card.Card
	Remaining  card.Deck
}

// DealNewGame 洗一副新牌并给双方各发 handSize 张，开局桌面为空
func DealNewGame(rng *rand.Rand, handSize int) (NewGameDeal, error) {
	deck := card.Shuffle(card.NewDeck(), rng)

	player, deck, err := card.Deal(deck, handSize)
	if err != nil {
		return NewGameDeal{}, fmt.Errorf("发牌失败: %w", err)
	}
	ai, deck, err := card.Deal(deck, handSize)
	if err != nil {
		return NewGameDeal{}, fmt.Errorf("发牌失败: %w", err)
	}

	playerHand, aiHand := card.EnsureFairTenDistribution(player, ai, rng)
	return NewGameDeal{
		Deck:       deck,
		PlayerHand: playerHand,
		AIHand:     aiHand,
		TableCards: []rule.TableCard{},
	}, nil
}

// DealRoundTwo 从剩余牌堆中继续发牌，不重洗已发出或已吃掉的牌
func DealRoundTwo(rng *rand.Rand, deck card.Deck, handSize int) (RoundDeal, error) {
	if len(deck) < handSize*2 {
		return RoundDeal{Remaining: deck}, fmt.Errorf("第二轮发牌失败: %w: 需要 %d 张, 剩余 %d 张",
			apperrors.ErrInsufficientCards, handSize*2, len(deck))
	}

	player, rest, _ := card.Deal(deck, handSize)
	ai, rest, _ := card.Deal(rest, handSize)

	playerHand, aiHand := card.EnsureFairTenDistribution(player, ai, rng)
	return RoundDeal{
		PlayerHand: playerHand,
		AIHand:     aiHand,
		Remaining:  rest,
	}, nil
}

// drawFirstPlayer 双方从抽牌池中各抽一张（不放回），点数小的先出；点数相同则重抽
func drawFirstPlayer(rng *rand.Rand, poolSize int) (*FirstPlayerDraw, error) {
	for redraws := 0; ; redraws++ {
		pool, err := card.DrawPool(poolSize, rng)
		if err != nil {
			return nil, err
		}

		i := rng.IntN(len(pool))
		j := rng.IntN(len(pool) - 1)
		if j >= i {
			j++
		}

		draw := &FirstPlayerDraw{
			Pool:    pool,
			Player:  pool[i],
			AI:      pool[j],
			Redraws: redraws,
		}
		switch {
		case draw.Player.Value < draw.AI.Value:
			draw.First = rule.SidePlayer
		case draw.AI.Value < draw.Player.Value:
			draw.First = rule.SideAI
		default:
			continue
		}
		return draw, nil
	}
}
