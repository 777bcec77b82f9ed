package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/rule"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/score"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/session"
)

func (m *Model) View() string {
	var content string

	switch {
	case m.showHelp:
		content = RenderRules()
	case m.phase == PhaseName:
		content = m.nameView()
	case m.session == nil:
		content = "Loading..."
	default:
		content = m.gameView(m.session.Snapshot())
	}

	return docStyle.Render(content)
}

func (m *Model) nameView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle("🃏 Khasino"))
	sb.WriteString("\n\n欢迎! 请输入你的昵称:\n\n")
	sb.WriteString(m.input.View())
	return sb.String()
}

func (m *Model) gameView(snap session.Snapshot) string {
	var sb strings.Builder

	header := fmt.Sprintf("🃏 Khasino  第 %d/2 轮  牌堆剩余 %d 张", snap.Round, snap.DeckSize)
	sb.WriteString(titleStyle(header))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("%s 电脑  手牌 %d 张  吃牌 %d 张\n", AIIcon, snap.AIHandSize, len(snap.AIPile)))
	sb.WriteString(boxStyle.Render(renderBoard(snap.Board)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s %s  吃牌 %d 张\n", PlayerIcon, m.playerName, len(snap.PlayerPile)))
	if len(snap.PlayerHand) > 0 {
		sb.WriteString(renderCards(snap.PlayerHand))
	} else {
		sb.WriteString(grayStyle.Render("(没有手牌)"))
	}
	sb.WriteString("\n")

	if m.showCounter {
		sb.WriteString(renderCounter(snap))
		sb.WriteString("\n")
	}

	if len(m.log) > 0 {
		sb.WriteString(promptStyle.Render(grayStyle.Render(strings.Join(m.log, "\n"))))
		sb.WriteString("\n")
	}

	if snap.Summary != nil {
		sb.WriteString(promptStyle.Render(renderSummary(*snap.Summary, m.playerName)))
		sb.WriteString("\n")
	}

	sb.WriteString(promptStyle.Render(m.prompt(snap)))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())

	if m.err != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.err))
	}
	return sb.String()
}

func (m *Model) prompt(snap session.Snapshot) string {
	switch {
	case snap.State == session.StateGameOver:
		return "游戏结束"
	case snap.Pending != nil:
		return hintStyle.Render(fmt.Sprintf("%s 落在 %s 上, 请选择: %s (esc 放弃)",
			snap.Pending.Move.Card, targetName(snap.Pending.Move.Target), kindList(snap.Pending.Kinds())))
	case snap.State == session.StateAITurn:
		return "电脑思考中..."
	default:
		return "轮到你出牌 (help 查看说明)"
	}
}

// renderBoard 散牌编号为 t1.., 组合编号为 b1..
func renderBoard(b rule.Board) string {
	if b.IsEmpty() {
		return grayStyle.Render("桌面为空")
	}

	var rows []string
	if len(b.Cards) > 0 {
		parts := make([]string, len(b.Cards))
		for i, tc := range b.Cards {
			parts[i] = fmt.Sprintf("t%d %s", i+1, renderCard(tc.Card))
		}
		rows = append(rows, strings.Join(parts, "  "))
	}

	for i, bd := range b.Builds {
		owner := "你"
		if bd.Owner == rule.SideAI {
			owner = "电脑"
		}
		groups := make([]string, len(bd.Groups))
		for j, g := range bd.Groups {
			groups[j] = renderCards(g)
		}
		label := fmt.Sprintf("b%d %s %d 点 (%s)", i+1, BuildIcon, bd.Value, owner)
		rows = append(rows, label+" "+buildStyle.Render(strings.Join(groups, " | ")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCounter 显示玩家还没见过的牌：手牌、桌面和双方吃牌之外的都算
func renderCounter(snap session.Snapshot) string {
	cc := card.NewCounter()
	cc.Deduct(snap.PlayerHand)
	cc.Deduct(snap.PlayerPile)
	cc.Deduct(snap.AIPile)
	for _, tc := range snap.Board.Cards {
		cc.Deduct([]card.Card{tc.Card})
	}
	for _, bd := range snap.Board.Builds {
		for _, g := range bd.Groups {
			cc.Deduct(g)
		}
	}

	parts := make([]string, 0, card.MaxValue)
	for v := card.MinValue; v <= card.MaxValue; v++ {
		n := cc.Remaining(v)
		text := fmt.Sprintf("%s×%d", card.Card{Value: v}.Rank(), n)
		if n == 0 {
			text = grayStyle.Render(text)
		}
		parts = append(parts, text)
	}
	return hintStyle.Render(fmt.Sprintf("记牌器 (未见 %d 张): ", cc.Total())) + strings.Join(parts, " ")
}

func targetName(t rule.Target) string {
	switch t.Kind {
	case rule.TargetCard:
		return t.Card.String()
	case rule.TargetBuild:
		return "组合"
	default:
		return "桌面"
	}
}

func renderSummary(s score.Summary, playerName string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle("🏁 终局结算"))
	sb.WriteString("\n")
	sb.WriteString(renderScoreLine(playerName, s.Player))
	sb.WriteString("\n")
	sb.WriteString(renderScoreLine("电脑", s.AI))
	sb.WriteString("\n")

	switch s.Winner {
	case score.PlayerWins:
		sb.WriteString("🎉 " + playerName + " 获胜!")
	case score.AIWins:
		sb.WriteString("电脑获胜")
	default:
		sb.WriteString("平局")
	}
	return boxStyle.Render(sb.String())
}

func renderScoreLine(name string, s score.Score) string {
	extras := []string{}
	if s.Mummy {
		extras = append(extras, "♦10")
	}
	if s.Spy {
		extras = append(extras, "♠2")
	}
	return fmt.Sprintf("%-8s %2d 分  %2d 张  黑桃 %2d  A×%d %s",
		name, s.Total, s.CardsCount, s.SpadesCount, s.Aces, strings.Join(extras, " "))
}

// RenderRules 规则与指令说明
func RenderRules() string {
	var sb strings.Builder
	sb.WriteString(titleStyle("📖 规则说明"))
	sb.WriteString("\n\n")
	sb.WriteString(`【游戏目标】
两轮结束时得分高者获胜。A 各 1 分, ♦10 2 分, ♠2 1 分,
吃牌多者 +2 分, 黑桃多者 +1 分。

【出牌】
放牌: 把一张牌放到桌上。
吃牌: 用同点数的牌吃走散牌, 或用等于组合点数的牌吃走整个组合。
组合: 把手牌加到散牌上凑成不超过 10 的点数, 手中必须留有该点数的牌。
加牌: 可以在对手的组合上加牌并接管, 不能改变自己组合的点数。

【指令】
7h          把 7♥ 放到桌上
7h t2       7♥ 落在第 2 张散牌上
7h 5s       7♥ 落在散牌 5♠ 上
3c b1       3♣ 落在第 1 个组合上
chow/build  出现选择时决定吃牌还是组合
cancel      放弃待选的出牌
counter     开关记牌器
new         重新开始
q           退出

【快捷键】
ESC：放弃选择 / 关闭说明
Ctrl+C：退出`)
	return sb.String()
}
