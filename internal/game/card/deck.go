package card

import (
	"fmt"
	"math/rand/v2"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/apperrors"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/logger"
)

// Deck 定义一副牌
type Deck []Card

// NewDeck 生成 40 张牌：四种花色各 1~10
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, s := range Suits {
		for v := MinValue; v <= MaxValue; v++ {
			deck = append(deck, Card{Value: v, Suit: s})
		}
	}
	return deck
}

// NewRand 创建随机源
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Validate 检查整副牌：张数为 40 且没有重复
func Validate(d Deck) error {
	if len(d) != DeckSize {
		return fmt.Errorf("%w: 张数 %d", apperrors.ErrDeckIntegrity, len(d))
	}
	return validateUnique(d)
}

func validateUnique(cards []Card) error {
	seen := make(map[Card]struct{}, len(cards))
	for _, c := range cards {
		if c.Value < MinValue || c.Value > MaxValue {
			return fmt.Errorf("%w: 非法点数 %d", apperrors.ErrDeckIntegrity, c.Value)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: 重复的牌 %s", apperrors.ErrDeckIntegrity, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// Shuffle 洗牌，返回新的牌堆；校验失败时用新牌重洗
func Shuffle(d Deck, rng *rand.Rand) Deck {
	src := d
	for {
		out := make(Deck, len(src))
		copy(out, src)
		rng.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})

		err := Validate(out)
		if err == nil {
			return out
		}
		logger.LogError("洗牌校验失败，重新生成牌堆: %v", err)
		src = NewDeck()
	}
}

// Deal 从牌堆顶发 n 张牌
func Deal(d Deck, n int) (dealt, remaining Deck, err error) {
	if n < 0 || n > len(d) {
		return Deck{}, d, fmt.Errorf("%w: 需要 %d 张, 剩余 %d 张", apperrors.ErrInsufficientCards, n, len(d))
	}
	dealt = make(Deck, n)
	copy(dealt, d[:n])
	remaining = make(Deck, len(d)-n)
	copy(remaining, d[n:])
	return dealt, remaining, nil
}

// CountTens 统计 10 点牌的数量
func CountTens(cards []Card) int {
	n := 0
	for _, c := range cards {
		if c.IsTen() {
			n++
		}
	}
	return n
}

// EnsureFairTenDistribution 双方 10 点牌数量相差超过 1 时，合并重洗再按原张数分配
func EnsureFairTenDistribution(player, ai []Card, rng *rand.Rand) ([]Card, []Card) {
	if !canBalanceTens(len(player), len(ai), CountTens(player)+CountTens(ai)) {
		return player, ai
	}
	for !fairTens(player, ai) {
		pool := make([]Card, 0, len(player)+len(ai))
		pool = append(pool, player...)
		pool = append(pool, ai...)
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})

		player = pool[:len(player):len(player)]
		ai = pool[len(player):]
	}
	return player, ai
}

func fairTens(player, ai []Card) bool {
	diff := CountTens(player) - CountTens(ai)
	return diff >= -1 && diff <= 1
}

// canBalanceTens 判断给定手牌张数下是否存在满足条件的分配
func canBalanceTens(playerSize, aiSize, tens int) bool {
	for p := max(0, tens-aiSize); p <= min(tens, playerSize); p++ {
		if diff := 2*p - tens; diff >= -1 && diff <= 1 {
			return true
		}
	}
	return false
}

// DrawPool 从新洗的牌中抽 n 张，用于决定先手
func DrawPool(n int, rng *rand.Rand) (Deck, error) {
	pool, _, err := Deal(Shuffle(NewDeck(), rng), n)
	return pool, err
}
