package session

import (
	"errors"
	"time"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/apperrors"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/ai"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/rule"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/logger"
)

// Timer 可取消的延迟任务
type Timer interface {
	Stop() bool
}

// Scheduler 延迟任务调度器，测试中可替换为手动触发
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// --- 电脑出牌 ---

// scheduleAITurn 在思考时间后执行电脑出牌，调用方持有 mu
func (gs *GameSession) scheduleAITurn() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	if gs.aiTimer != nil {
		gs.aiTimer.Stop()
	}
	gs.aiGen++
	gen := gs.aiGen
	gs.aiTimer = gs.sched.AfterFunc(gs.delay, func() {
		gs.runAITurn(gen)
	})
}

// stopTimer 取消电脑出牌，已经触发但尚未拿到锁的任务会因代数不符而放弃
func (gs *GameSession) stopTimer() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	gs.aiGen++
	if gs.aiTimer != nil {
		gs.aiTimer.Stop()
		gs.aiTimer = nil
	}
}

func (gs *GameSession) runAITurn(gen uint64) {
	defer gs.dispatch()
	gs.mu.Lock()
	defer gs.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
	}()

	gs.timerMu.Lock()
	stale := gen != gs.aiGen
	if !stale {
		gs.aiTimer = nil
	}
	gs.timerMu.Unlock()

	if stale || gs.state != StateAITurn {
		return
	}

	hand := gs.hands[rule.SideAI]
	o, board, err := ai.RunTurn(hand, gs.board)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoMove) {
			logger.LogInfo("game %s: 电脑无牌可出, 轮到玩家", gs.id)
			gs.emit(Event{Type: EventNoMove, Round: gs.round, Side: rule.SideAI})
			gs.beginTurn(rule.SidePlayer)
			return
		}
		// 策略只会选出规则接受的牌，走到这里说明局面异常
		logger.LogError("game %s: 电脑出牌失败: %v", gs.id, err)
		return
	}

	gs.applyOutcome(o, board)
}
