package ui

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/config"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/rule"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/score"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/session"
)

type fakeStore struct {
	mu    sync.Mutex
	names map[string]string
}

func (s *fakeStore) SaveGuestName(_ context.Context, key, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.names == nil {
		s.names = map[string]string{}
	}
	s.names[key] = name
	return nil
}

// queueScheduler 记录电脑出牌任务，由测试手动执行
type queueScheduler struct {
	mu    sync.Mutex
	tasks []func()
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

func (q *queueScheduler) AfterFunc(_ time.Duration, f func()) session.Timer {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, f)
	return noopTimer{}
}

func (q *queueScheduler) runAll() {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, f := range tasks {
		f()
	}
}

func newTestModel(t *testing.T, opts ...Option) (*Model, *queueScheduler) {
	t.Helper()
	sched := &queueScheduler{}
	opts = append(opts, WithSessionOptions(
		session.WithRand(rand.New(rand.NewPCG(42, 7))),
		session.WithScheduler(sched),
	))
	return New(config.Default(), opts...), sched
}

// drain 处理已经到达的会话事件
func drain(m *Model) {
	for {
		select {
		case e := <-m.events:
			m.handleEvent(e)
		default:
			return
		}
	}
}

func enter(m *Model, value string) tea.Cmd {
	m.input.SetValue(value)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

// waitForPlayer 让电脑先出完，直到轮到玩家
func waitForPlayer(t *testing.T, m *Model, sched *queueScheduler) session.Snapshot {
	t.Helper()
	for range 5 {
		snap := m.session.Snapshot()
		if snap.State == session.StatePlayerTurn {
			return snap
		}
		sched.runAll()
	}
	t.Fatal("player never got the turn")
	return session.Snapshot{}
}

func TestNew_AsksForName(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	m, _ := newTestModel(t, WithStore(store))
	assert.Equal(t, PhaseName, m.phase)
	assert.Contains(t, m.View(), "昵称")

	enter(m, "  Thandi ")

	assert.Equal(t, PhasePlaying, m.phase)
	assert.Equal(t, "Thandi", m.playerName)
	assert.Equal(t, "Thandi", store.names["local"])
	require.NotNil(t, m.session)
	assert.Equal(t, 1, m.session.Snapshot().Round)
}

func TestNew_EmptyNameUsesDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Player.DefaultName = "Guest"
	m := New(cfg)
	enter(m, "")
	assert.Equal(t, "Guest", m.playerName)
	m.close()
}

func TestNew_GeneratesNickname(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	require.NotEmpty(t, m.defaultName)
	assert.Contains(t, m.input.Placeholder, m.defaultName)

	enter(m, "")
	assert.Equal(t, m.defaultName, m.playerName)
}

func TestInit_StartsGameWhenNameKnown(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, WithPlayerName("Sipho"))
	m.Init()
	drain(m)

	require.NotNil(t, m.session)
	view := m.View()
	assert.Contains(t, view, "Sipho")
	assert.Contains(t, view, "第 1/2 轮")
	assert.NotEmpty(t, m.log)
}

func TestEnter_PlaysCard(t *testing.T) {
	t.Parallel()

	m, sched := newTestModel(t, WithPlayerName("Sipho"))
	m.Init()
	snap := waitForPlayer(t, m, sched)
	handSize := len(snap.PlayerHand)

	enter(m, snap.PlayerHand[0].Code())
	drain(m)

	assert.Empty(t, m.err)
	after := m.session.Snapshot()
	assert.Len(t, after.PlayerHand, handSize-1)
	assert.Equal(t, session.StateAITurn, after.State)
	assert.Contains(t, m.log[len(m.log)-1], "Sipho")
}

func TestEnter_InvalidCommandShowsError(t *testing.T) {
	t.Parallel()

	m, sched := newTestModel(t, WithPlayerName("Sipho"))
	m.Init()
	waitForPlayer(t, m, sched)

	cmd := enter(m, "hello")
	assert.NotNil(t, cmd)
	assert.NotEmpty(t, m.err)
	assert.Contains(t, m.View(), m.err)

	m.Update(ClearErrorMsg{})
	assert.Empty(t, m.err)
}

func TestEnter_NotYourTurn(t *testing.T) {
	t.Parallel()

	m, sched := newTestModel(t, WithPlayerName("Sipho"))
	m.Init()
	snap := waitForPlayer(t, m, sched)

	enter(m, snap.PlayerHand[0].Code())
	enter(m, snap.PlayerHand[1].Code())
	assert.Equal(t, "电脑正在思考...", m.err)
}

func TestHelpToggle(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, WithPlayerName("Sipho"))
	m.Init()

	enter(m, "help")
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "规则说明")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestCounterToggle(t *testing.T) {
	t.Parallel()

	m, sched := newTestModel(t, WithPlayerName("Sipho"))
	m.Init()
	waitForPlayer(t, m, sched)
	assert.NotContains(t, m.View(), "记牌器")

	enter(m, "counter")
	assert.True(t, m.showCounter)
	assert.Contains(t, m.View(), "记牌器")
}

func TestRenderCounter(t *testing.T) {
	t.Parallel()

	snap := session.Snapshot{
		PlayerHand: card.MustParseAll("As", "Ah"),
		PlayerPile: card.MustParseAll("Ac"),
		AIPile:     card.MustParseAll("Ad", "7h"),
		Board:      testBoard(),
	}
	out := renderCounter(snap)
	assert.Contains(t, out, "未见 31 张")
	assert.Contains(t, out, "A×0")
	assert.Contains(t, out, "7×3")
	assert.Contains(t, out, "10×4")
}

func TestHandleEvent_GameOver(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, WithPlayerName("Sipho"))
	m.Init()
	drain(m)

	summary := score.Summary{
		Player: score.Score{Total: 5, CardsCount: 22},
		AI:     score.Score{Total: 2, CardsCount: 18},
		Winner: score.PlayerWins,
	}
	m.handleEvent(session.Event{Type: session.EventGameOver, Summary: &summary})
	assert.Equal(t, PhaseGameOver, m.phase)
	assert.Contains(t, renderSummary(summary, "Sipho"), "Sipho 获胜")
}

func TestHandleEvent_MoveLog(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, WithPlayerName("Sipho"))
	for range maxLogLines + 3 {
		m.handleEvent(session.Event{Type: session.EventMovePlayed, Side: rule.SideAI, Outcome: &rule.Outcome{Kind: rule.Placement}})
	}
	assert.Len(t, m.log, maxLogLines)
	assert.Contains(t, m.log[0], "电脑")
}

func TestRenderBoard(t *testing.T) {
	t.Parallel()

	out := renderBoard(testBoard())
	assert.Contains(t, out, "t1")
	assert.Contains(t, out, "t2")
	assert.Contains(t, out, "b1")
	assert.Contains(t, out, "8 点")
	assert.Contains(t, renderBoard(rule.Board{}), "桌面为空")
}

func TestRenderRules(t *testing.T) {
	t.Parallel()

	rules := RenderRules()
	for _, want := range []string{"【游戏目标】", "【出牌】", "【指令】", "chow/build", "ESC"} {
		assert.Contains(t, rules, want)
	}
}
