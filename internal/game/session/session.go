package session

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/config"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/rule"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/score"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/logger"
)

const totalRounds = 2

// GameSession 一局人机对战：负责发牌、轮流出牌、轮次与终局结算
type GameSession struct {
	id       string
	handSize int
	poolSize int
	delay    time.Duration
	rng      *rand.Rand
	sched    Scheduler
	listener func(Event)

	state       GameState
	round       int
	deck        card.Deck
	hands       [2][]card.Card // 按 rule.Side 下标
	piles       [2][]card.Card
	board       rule.Board
	turn        rule.Side
	pending     *Choice
	firstPlayer *FirstPlayerDraw
	summary     *score.Summary
	outbox      []Event

	// 电脑出牌的延迟任务
	aiTimer Timer
	aiGen   uint64
	timerMu sync.Mutex

	mu sync.Mutex
}

// Option 会话选项
type Option func(*GameSession)

// WithRand 指定随机源
func WithRand(rng *rand.Rand) Option {
	return func(gs *GameSession) { gs.rng = rng }
}

// WithScheduler 指定延迟任务调度器
func WithScheduler(s Scheduler) Option {
	return func(gs *GameSession) { gs.sched = s }
}

// WithListener 注册事件回调，回调在会话锁释放后执行
func WithListener(fn func(Event)) Option {
	return func(gs *GameSession) { gs.listener = fn }
}

// NewGameSession 创建会话
func NewGameSession(cfg config.GameConfig, opts ...Option) *GameSession {
	gs := &GameSession{
		id:       uuid.NewString(),
		handSize: cfg.HandSize,
		poolSize: cfg.FirstPlayerPool,
		delay:    cfg.AIThinkDelayDuration(),
		sched:    realScheduler{},
		state:    StateSelectingFirstPlayer,
	}
	if gs.handSize <= 0 {
		gs.handSize = DefaultHandSize
	}
	if gs.poolSize < 2 {
		gs.poolSize = 5
	}
	for _, opt := range opts {
		opt(gs)
	}
	if gs.rng == nil {
		gs.rng = card.NewRand()
	}
	return gs
}

// ID 会话 ID
func (gs *GameSession) ID() string {
	return gs.id
}

// Start 抽牌决定先手并发第一轮牌
func (gs *GameSession) Start() error {
	defer gs.dispatch()
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.state = StateSelectingFirstPlayer
	draw, err := drawFirstPlayer(gs.rng, gs.poolSize)
	if err != nil {
		return err
	}
	gs.firstPlayer = draw
	gs.emit(Event{Type: EventFirstPlayer, Side: draw.First, Draw: draw})
	logger.LogInfo("game %s: 玩家抽到 %s, 电脑抽到 %s, %s 先出", gs.id, draw.Player, draw.AI, draw.First)

	gs.state = StateDealing
	deal, err := DealNewGame(gs.rng, gs.handSize)
	if err != nil {
		return err
	}
	gs.round = 1
	gs.deck = deal.Deck
	gs.hands[rule.SidePlayer] = deal.PlayerHand
	gs.hands[rule.SideAI] = deal.AIHand
	gs.board = rule.Board{Cards: deal.TableCards}
	gs.emit(Event{Type: EventDealt, Round: gs.round})

	gs.beginTurn(draw.First)
	return nil
}

// Close 取消尚未执行的电脑出牌
func (gs *GameSession) Close() {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.stopTimer()
}

// State 当前状态
func (gs *GameSession) State() GameState {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.state
}

// Summary 终局结算，未结束时返回 nil
func (gs *GameSession) Summary() *score.Summary {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.summary
}

// Snapshot 返回当前局面的只读拷贝
func (gs *GameSession) Snapshot() Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	return Snapshot{
		ID:          gs.id,
		State:       gs.state,
		Round:       gs.round,
		Turn:        gs.turn,
		PlayerHand:  slices.Clone(gs.hands[rule.SidePlayer]),
		AIHandSize:  len(gs.hands[rule.SideAI]),
		DeckSize:    len(gs.deck),
		Board:       gs.board.Clone(),
		PlayerPile:  slices.Clone(gs.piles[rule.SidePlayer]),
		AIPile:      slices.Clone(gs.piles[rule.SideAI]),
		Pending:     gs.pending,
		FirstPlayer: gs.firstPlayer,
		Summary:     gs.summary,
	}
}

// emit 记录事件，调用方持有 mu
func (gs *GameSession) emit(e Event) {
	gs.outbox = append(gs.outbox, e)
}

// dispatch 在锁外把积累的事件交给回调
func (gs *GameSession) dispatch() {
	gs.mu.Lock()
	events := gs.outbox
	gs.outbox = nil
	gs.mu.Unlock()

	if gs.listener == nil {
		return
	}
	for _, e := range events {
		gs.listener(e)
	}
}
