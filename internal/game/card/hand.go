package card

import (
	"slices"
	"strings"
)

// Contains 手牌中是否有这张牌
func Contains(hand []Card, c Card) bool {
	return slices.Contains(hand, c)
}

// Remove 从手牌中移除指定的牌，返回新切片
func Remove(hand []Card, c Card) ([]Card, bool) {
	idx := slices.Index(hand, c)
	if idx < 0 {
		return hand, false
	}
	result := make([]Card, 0, len(hand)-1)
	result = append(result, hand[:idx]...)
	result = append(result, hand[idx+1:]...)
	return result, true
}

// HasValueExcept 除 except 这张牌外，手牌中是否还有点数为 value 的牌
func HasValueExcept(hand []Card, value int, except Card) bool {
	for _, c := range hand {
		if c != except && c.Value == value {
			return true
		}
	}
	return false
}

// Lowest 返回点数最小的牌，点数相同时取先出现的那张
func Lowest(hand []Card) (Card, bool) {
	if len(hand) == 0 {
		return Card{}, false
	}
	lowest := hand[0]
	for _, c := range hand[1:] {
		if c.Value < lowest.Value {
			lowest = c
		}
	}
	return lowest, true
}

// SortDesc 按点数从大到小排序（点数相同按花色），返回新切片
func SortDesc(cards []Card) []Card {
	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, func(a, b Card) int {
		if a.Value != b.Value {
			return b.Value - a.Value
		}
		return int(a.Suit) - int(b.Suit)
	})
	return sorted
}

// Sum 点数之和
func Sum(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Value
	}
	return total
}

// Format 将一组牌格式化为字符串
func Format(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
