// Package ui 终端界面：读取玩家指令交给会话，并展示桌面和出牌记录
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/apperrors"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/config"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/rule"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/session"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/logger"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/sound"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/storage"
)

// GamePhase 界面阶段
type GamePhase int

const (
	PhaseName     GamePhase = iota // 输入昵称
	PhasePlaying                   // 对局中
	PhaseGameOver                  // 终局
)

const (
	maxLogLines  = 8
	storeTimeout = 2 * time.Second
)

// ProfileStore 访客档案存储
type ProfileStore interface {
	SaveGuestName(ctx context.Context, key, name string) error
}

// EventMsg 会话事件
type EventMsg struct {
	Event session.Event
}

// ClearErrorMsg 清除错误消息
type ClearErrorMsg struct{}

// Model 单机模式的 model
type Model struct {
	cfg   *config.Config
	store ProfileStore
	sound *sound.SoundManager

	phase       GamePhase
	playerName  string
	defaultName string
	err         string
	showHelp    bool
	showCounter bool

	session     *session.GameSession
	sessionOpts []session.Option
	events      chan session.Event
	log         []string

	input  textinput.Model
	width  int
	height int
}

// Option model 选项
type Option func(*Model)

// WithStore 保存昵称和战绩
func WithStore(s ProfileStore) Option {
	return func(m *Model) { m.store = s }
}

// WithSound 播放音效
func WithSound(sm *sound.SoundManager) Option {
	return func(m *Model) { m.sound = sm }
}

// WithPlayerName 已知昵称时跳过输入
func WithPlayerName(name string) Option {
	return func(m *Model) { m.playerName = name }
}

// WithSessionOptions 创建会话时附加的选项
func WithSessionOptions(opts ...session.Option) Option {
	return func(m *Model) { m.sessionOpts = append(m.sessionOpts, opts...) }
}

// New 创建 model
func New(cfg *config.Config, opts ...Option) *Model {
	ti := textinput.New()
	ti.CharLimit = 20
	ti.Width = 24
	ti.Focus()

	m := &Model{
		cfg:    cfg,
		input:  ti,
		events: make(chan session.Event, 64),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.defaultName = cfg.Player.DefaultName
	if m.defaultName == "" {
		m.defaultName = storage.GenerateNickname(card.NewRand())
	}
	if m.playerName == "" {
		m.phase = PhaseName
		m.input.Placeholder = "回车使用 " + m.defaultName
	} else {
		m.phase = PhasePlaying
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.listenForEvents()}
	if m.phase == PhasePlaying {
		cmds = append(cmds, m.startGame())
	}
	return tea.Batch(cmds...)
}

// onEvent 会话回调，可能在电脑出牌的 goroutine 中执行
func (m *Model) onEvent(e session.Event) {
	select {
	case m.events <- e:
	default:
		logger.LogError("事件队列已满, 丢弃事件 %d", e.Type)
	}
}

// listenForEvents 监听会话事件
func (m *Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		return EventMsg{Event: <-m.events}
	}
}

// startGame 开始新的一局
func (m *Model) startGame() tea.Cmd {
	if m.session != nil {
		m.session.Close()
	}

	opts := append([]session.Option{session.WithListener(m.onEvent)}, m.sessionOpts...)
	m.session = session.NewGameSession(m.cfg.Game, opts...)
	m.log = nil
	m.err = ""
	m.phase = PhasePlaying
	m.input.Placeholder = "出牌, 如 7h / 7h t2 / 3c b1"

	if err := m.session.Start(); err != nil {
		m.err = err.Error()
		logger.LogError("开局失败: %v", err)
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.close()
			return m, tea.Quit
		case tea.KeyEsc:
			if m.showHelp {
				m.showHelp = false
				return m, nil
			}
			if m.session != nil && m.session.CancelChoice() == nil {
				m.appendLog("已放弃本次出牌")
				return m, nil
			}
		case tea.KeyEnter:
			cmd := m.handleEnter()
			m.input.SetValue("")
			return m, cmd
		}

	case EventMsg:
		if cmd := m.handleEvent(msg.Event); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.listenForEvents())

	case ClearErrorMsg:
		m.err = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) close() {
	if m.session != nil {
		m.session.Close()
	}
	if m.sound != nil {
		m.sound.Close()
	}
}

// handleEnter 处理回车
func (m *Model) handleEnter() tea.Cmd {
	value := m.input.Value()

	switch m.phase {
	case PhaseName:
		return m.submitName(value)

	case PhaseGameOver:
		cmd, err := ParseCommand(value, rule.Board{})
		if err == nil && cmd.Kind == CmdQuit {
			m.close()
			return tea.Quit
		}
		return m.startGame()
	}

	cmd, err := ParseCommand(value, m.session.Snapshot().Board)
	if err != nil {
		return m.showError(err)
	}
	return m.execute(cmd)
}

func (m *Model) submitName(value string) tea.Cmd {
	m.playerName = strings.TrimSpace(value)
	if m.playerName == "" {
		m.playerName = m.defaultName
	}

	if m.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := m.store.SaveGuestName(ctx, m.cfg.Player.ProfileKey, m.playerName); err != nil {
			logger.LogError("保存昵称失败: %v", err)
		}
	}
	return m.startGame()
}

// execute 执行一条对局指令
func (m *Model) execute(cmd Command) tea.Cmd {
	var err error

	switch cmd.Kind {
	case CmdQuit:
		m.close()
		return tea.Quit
	case CmdHelp:
		m.showHelp = !m.showHelp
		return nil
	case CmdCounter:
		m.showCounter = !m.showCounter
		return nil
	case CmdNewGame:
		return m.startGame()
	case CmdCancel:
		err = m.session.CancelChoice()
		if err == nil {
			m.appendLog("已放弃本次出牌")
		}
	case CmdChoose:
		_, err = m.session.ResolveChoice(cmd.Choice)
	case CmdPlay:
		var res *session.MoveResult
		res, err = m.session.SubmitPlayerMove(cmd.Card, cmd.Target)
		if err == nil && res.Choice != nil {
			m.appendLog(fmt.Sprintf("%s 可以选择: %s", cmd.Card, kindList(res.Choice.Kinds())))
		}
	}

	if err != nil {
		return m.showError(err)
	}
	m.err = ""
	return nil
}

func (m *Model) showError(err error) tea.Cmd {
	switch {
	case errors.Is(err, apperrors.ErrNotYourTurn):
		m.err = "电脑正在思考..."
	default:
		m.err = err.Error()
	}
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

// handleEvent 把会话事件写进出牌记录并播放音效
func (m *Model) handleEvent(e session.Event) tea.Cmd {
	switch e.Type {
	case session.EventFirstPlayer:
		m.appendLog(fmt.Sprintf("抽牌决定先手: 你 %s, 电脑 %s, %s先出",
			e.Draw.Player, e.Draw.AI, m.sideName(e.Draw.First)))
	case session.EventDealt:
		m.appendLog(fmt.Sprintf("第 %d 轮发牌", e.Round))
		m.play(sound.EffectDeal)
	case session.EventMovePlayed:
		m.appendLog(fmt.Sprintf("%s: %s", m.sideName(e.Side), e.Outcome))
		m.play(sound.ForOutcome(e.Outcome.Kind))
	case session.EventNoMove:
		m.appendLog("电脑没有牌可出")
	case session.EventTurnPassed:
		m.appendLog("你没有手牌, 自动让过")
	case session.EventRoundEnded:
		m.appendLog(fmt.Sprintf("第 %d 轮结束: 你 %d 张, 电脑 %d 张",
			e.Round, e.Scores.Player.CardsCount, e.Scores.AI.CardsCount))
	case session.EventGameOver:
		m.phase = PhaseGameOver
		m.input.Placeholder = "回车再来一局, q 退出"
		m.play(sound.ForWinner(e.Summary.Winner))
		logger.LogInfo("终局: %s %d 分, 电脑 %d 分", m.playerName, e.Summary.Player.Total, e.Summary.AI.Total)
	}
	return nil
}

func (m *Model) play(e sound.Effect) {
	if m.sound != nil {
		m.sound.Play(e)
	}
}

func (m *Model) appendLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

func (m *Model) sideName(s rule.Side) string {
	if s == rule.SideAI {
		return "电脑"
	}
	return m.playerName
}

func kindList(kinds []rule.OutcomeKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, " / ")
}
