package card

// Counter 记牌器：按点数统计玩家还没见过的牌
type Counter struct {
	remaining map[int]int
}

// NewCounter 创建记牌器，初始为整副牌
func NewCounter() *Counter {
	cc := &Counter{remaining: make(map[int]int, MaxValue)}
	cc.Reset()
	return cc
}

// Reset 恢复为整副 40 张牌，每个点数 4 张
func (cc *Counter) Reset() {
	for v := MinValue; v <= MaxValue; v++ {
		cc.remaining[v] = len(Suits)
	}
}

// Deduct 扣除已见过的牌
func (cc *Counter) Deduct(cards []Card) {
	for _, c := range cards {
		if cc.remaining[c.Value] > 0 {
			cc.remaining[c.Value]--
		}
	}
}

// Remaining 某点数剩余张数
func (cc *Counter) Remaining(value int) int {
	return cc.remaining[value]
}

// Total 剩余总张数
func (cc *Counter) Total() int {
	n := 0
	for _, count := range cc.remaining {
		n += count
	}
	return n
}
