package session

import (
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/rule"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/score"
)

// GameState 牌局状态
type GameState int

const (
	StateSelectingFirstPlayer GameState = iota
	StateDealing
	StatePlayerTurn
	StateAITurn
	StateRoundEnd
	StateGameOver
)

var stateNames = map[GameState]string{
	StateSelectingFirstPlayer: "selecting-first-player",
	StateDealing:              "dealing",
	StatePlayerTurn:           "player-turn",
	StateAITurn:               "ai-turn",
	StateRoundEnd:             "round-end",
	StateGameOver:             "game-over",
}

func (s GameState) String() string {
	return stateNames[s]
}

// turnState 轮到某方时对应的状态
func turnState(side rule.Side) GameState {
	if side == rule.SideAI {
		return StateAITurn
	}
	return StatePlayerTurn
}

// EventType 会话事件类型
type EventType int

const (
	EventFirstPlayer   EventType = iota // 决定先手
	EventDealt                          // 发牌
	EventMovePlayed                     // 出牌完成
	EventChoicePending                  // 等待玩家二选一
	EventNoMove                         // 电脑无牌可出，回合交还玩家
	EventTurnPassed                     // 玩家无牌，自动让过
	EventRoundEnded                     // 一轮结束
	EventGameOver                       // 终局
)

// Event 通知展示层的事件
type Event struct {
	Type    EventType
	Round   int
	Side    rule.Side
	Outcome *rule.Outcome
	Draw    *FirstPlayerDraw
	Scores  *RoundScores
	Summary *score.Summary
}

// FirstPlayerDraw 先手抽牌结果
type FirstPlayerDraw struct {
	Pool    card.Deck
	Player  card.Card
	AI      card.Card
	First   rule.Side
	Redraws int // 点数相同重抽的次数
}

// RoundScores 一轮结束时双方当前吃牌堆的得分（不含比较奖励）
type RoundScores struct {
	Player score.Score
	AI     score.Score
}

// Choice 等待玩家二选一的出牌
type Choice struct {
	Move       rule.Move
	Resolution rule.Resolution
}

// Kinds 可选的结果
func (c *Choice) Kinds() []rule.OutcomeKind {
	return c.Resolution.Kinds()
}

// MoveResult 玩家出牌的结果：要么已经执行，要么等待选择
type MoveResult struct {
	Outcome *rule.Outcome
	Choice  *Choice
}

// Snapshot 供展示层读取的只读快照
type Snapshot struct {
	ID          string
	State       GameState
	Round       int
	Turn        rule.Side
	PlayerHand  []card.Card
	AIHandSize  int
	DeckSize    int
	Board       rule.Board
	PlayerPile  []card.Card
	AIPile      []card.Card
	Pending     *Choice
	FirstPlayer *FirstPlayerDraw
	Summary     *score.Summary
}
