package session

import (
	"fmt"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/apperrors"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/rule"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/score"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/logger"
)

// SubmitPlayerMove 玩家出牌。需要二选一时不改变局面，返回待选项，
// 由 ResolveChoice 完成。被拒绝的出牌不会交换回合。
func (gs *GameSession) SubmitPlayerMove(c card.Card, target rule.Target) (*MoveResult, error) {
	defer gs.dispatch()
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if err := gs.checkPlayerTurn(); err != nil {
		return nil, err
	}
	if gs.pending != nil {
		return nil, apperrors.ErrChoicePending
	}

	hand := gs.hands[rule.SidePlayer]
	if !card.Contains(hand, c) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrCardNotInHand, c)
	}

	mv := rule.Move{Side: rule.SidePlayer, Card: c, Target: target}
	res, err := rule.Evaluate(gs.board, mv, hand)
	if err != nil {
		return nil, err
	}

	if res.IsChoice() {
		gs.pending = &Choice{Move: mv, Resolution: res}
		gs.emit(Event{Type: EventChoicePending, Round: gs.round, Side: rule.SidePlayer})
		return &MoveResult{Choice: gs.pending}, nil
	}

	o := res.Options[0]
	gs.applyOutcome(o, rule.Commit(gs.board, o))
	return &MoveResult{Outcome: &o}, nil
}

// ResolveChoice 为待选的出牌选定结果并执行
func (gs *GameSession) ResolveChoice(kind rule.OutcomeKind) (*rule.Outcome, error) {
	defer gs.dispatch()
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if err := gs.checkPlayerTurn(); err != nil {
		return nil, err
	}
	if gs.pending == nil {
		return nil, apperrors.ErrNoPendingChoice
	}

	o, ok := gs.pending.Resolution.Pick(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidChoice, kind)
	}
	gs.pending = nil
	gs.applyOutcome(o, rule.Commit(gs.board, o))
	return &o, nil
}

// CancelChoice 放弃待选的出牌，牌留在手中，仍由玩家出牌
func (gs *GameSession) CancelChoice() error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.pending == nil {
		return apperrors.ErrNoPendingChoice
	}
	gs.pending = nil
	return nil
}

func (gs *GameSession) checkPlayerTurn() error {
	switch gs.state {
	case StateGameOver:
		return apperrors.ErrGameOver
	case StatePlayerTurn:
		return nil
	default:
		return apperrors.ErrNotYourTurn
	}
}

// applyOutcome 把确定的结果写入会话并交换回合，调用方持有 mu
func (gs *GameSession) applyOutcome(o rule.Outcome, board rule.Board) {
	side := o.Move.Side

	gs.hands[side], _ = card.Remove(gs.hands[side], o.Move.Card)
	gs.piles[side] = append(gs.piles[side], o.Captured...)
	gs.board = board
	if err := gs.board.Validate(); err != nil {
		logger.LogError("game %s: 桌面状态异常: %v", gs.id, err)
	}

	logger.LogMove(gs.id, side.String(), o.String())
	gs.emit(Event{Type: EventMovePlayed, Round: gs.round, Side: side, Outcome: &o})

	gs.beginTurn(side.Opponent())
}

// beginTurn 轮到 side 出牌；双方手牌都空时结束本轮，调用方持有 mu
func (gs *GameSession) beginTurn(side rule.Side) {
	if len(gs.hands[rule.SidePlayer]) == 0 && len(gs.hands[rule.SideAI]) == 0 {
		gs.endRound(side)
		return
	}

	gs.turn = side
	gs.state = turnState(side)

	switch side {
	case rule.SideAI:
		gs.scheduleAITurn()
	case rule.SidePlayer:
		if len(gs.hands[rule.SidePlayer]) == 0 {
			gs.emit(Event{Type: EventTurnPassed, Round: gs.round, Side: rule.SidePlayer})
			gs.beginTurn(rule.SideAI)
		}
	}
}

// endRound 结算本轮；第一轮后从剩余牌堆继续发牌，第二轮后终局。
// next 为按轮流顺序下一位出牌的一方。
func (gs *GameSession) endRound(next rule.Side) {
	gs.stopTimer()
	gs.state = StateRoundEnd

	scores := &RoundScores{
		Player: score.Of(gs.piles[rule.SidePlayer]),
		AI:     score.Of(gs.piles[rule.SideAI]),
	}
	gs.emit(Event{Type: EventRoundEnded, Round: gs.round, Scores: scores})
	logger.LogInfo("game %s: 第 %d 轮结束, 玩家 %d 张, 电脑 %d 张, 桌面剩余 %d 张",
		gs.id, gs.round, scores.Player.CardsCount, scores.AI.CardsCount, len(gs.board.Cards))

	if gs.round >= totalRounds {
		gs.finish()
		return
	}

	gs.state = StateDealing
	deal, err := DealRoundTwo(gs.rng, gs.deck, gs.handSize)
	if err != nil {
		logger.LogError("game %s: %v", gs.id, err)
		gs.finish()
		return
	}

	gs.round++
	gs.deck = deal.Remaining
	gs.hands[rule.SidePlayer] = deal.PlayerHand
	gs.hands[rule.SideAI] = deal.AIHand
	gs.emit(Event{Type: EventDealt, Round: gs.round})

	gs.beginTurn(next)
}

// finish 计算终局结果，桌面剩余的牌不计分
func (gs *GameSession) finish() {
	summary := score.ComputeSummary(gs.piles[rule.SidePlayer], gs.piles[rule.SideAI])
	gs.summary = &summary
	gs.state = StateGameOver
	gs.pending = nil

	gs.emit(Event{Type: EventGameOver, Round: gs.round, Summary: gs.summary})
	logger.LogInfo("game %s: 终局 玩家 %d 分, 电脑 %d 分, %s",
		gs.id, summary.Player.Total, summary.AI.Total, summary.Winner)
}
