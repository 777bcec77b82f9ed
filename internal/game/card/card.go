package card

import (
	"fmt"
	"strconv"
)

// Suit 定义花色
type Suit int

const (
	Spade   Suit = iota // 黑桃
	Heart               // 红心
	Club                // 梅花
	Diamond             // 方块
)

// Suits 按发牌顺序排列的四种花色
var Suits = [...]Suit{Spade, Heart, Club, Diamond}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Club:    "♣",
	Diamond: "♦",
}

// suitLetters 花色输入字母
var suitLetters = map[rune]Suit{
	's': Spade,
	'h': Heart,
	'c': Club,
	'd': Diamond,
}

// Letter 花色输入字母
func (s Suit) Letter() string {
	for r, suit := range suitLetters {
		if suit == s {
			return string(r)
		}
	}
	return ""
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// IsRed 红心和方块为红色
func (s Suit) IsRed() bool {
	return s == Heart || s == Diamond
}

const (
	MinValue = 1
	MaxValue = 10
	DeckSize = (MaxValue - MinValue + 1) * len(Suits)
)

// Card 定义一张牌，点数 1~10，花色 + 点数在整副牌中唯一
type Card struct {
	Value int
	Suit  Suit
}

var (
	// Mummy 方块 10
	Mummy = Card{Value: 10, Suit: Diamond}
	// Spy 黑桃 2
	Spy = Card{Value: 2, Suit: Spade}
)

func (c Card) String() string {
	return c.Rank() + c.Suit.String()
}

// Code 输入用的写法，如 "7h"、"10d"、"As"，可由 Parse 解析回来
func (c Card) Code() string {
	return c.Rank() + c.Suit.Letter()
}

// Rank 点数的显示名，A 或 2..10
func (c Card) Rank() string {
	if c.Value == 1 {
		return "A"
	}
	return strconv.Itoa(c.Value)
}

func (c Card) IsAce() bool   { return c.Value == 1 }
func (c Card) IsSpade() bool { return c.Suit == Spade }
func (c Card) IsTen() bool   { return c.Value == 10 }

// IsValuable A、黑桃 2 和方块 10 是计分牌
func (c Card) IsValuable() bool {
	return c.IsAce() || c == Spy || c == Mummy
}

// Parse 解析形如 "7h"、"10d"、"Ts"、"As" 的输入
func Parse(s string) (Card, error) {
	runes := []rune(s)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("无法识别的牌: %q", s)
	}

	suitChar := runes[len(runes)-1]
	if suitChar >= 'A' && suitChar <= 'Z' {
		suitChar += 'a' - 'A'
	}
	suit, ok := suitLetters[suitChar]
	if !ok {
		return Card{}, fmt.Errorf("无法识别的花色: %c", runes[len(runes)-1])
	}

	var value int
	switch rank := string(runes[:len(runes)-1]); rank {
	case "A", "a":
		value = 1
	case "T", "t":
		value = 10
	default:
		v, err := strconv.Atoi(rank)
		if err != nil {
			return Card{}, fmt.Errorf("无法识别的点数: %s", rank)
		}
		value = v
	}
	if value < MinValue || value > MaxValue {
		return Card{}, fmt.Errorf("点数超出范围: %d", value)
	}

	return Card{Value: value, Suit: suit}, nil
}

// MustParse 解析失败直接 panic，仅用于测试和常量
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MustParseAll 批量解析
func MustParseAll(ss ...string) []Card {
	cards := make([]Card, len(ss))
	for i, s := range ss {
		cards[i] = MustParse(s)
	}
	return cards
}
