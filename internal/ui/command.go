package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/rule"
)

// CommandKind 输入指令类型
type CommandKind int

const (
	CmdPlay    CommandKind = iota // 出牌
	CmdChoose                     // 二选一
	CmdCancel                     // 放弃待选的出牌
	CmdHelp                       // 显示规则
	CmdCounter                    // 开关记牌器
	CmdNewGame                    // 再来一局
	CmdQuit                       // 退出
)

// Command 解析后的指令
type Command struct {
	Kind   CommandKind
	Card   card.Card
	Target rule.Target
	Choice rule.OutcomeKind
}

var (
	errEmptyCommand   = errors.New("请输入指令")
	errUnknownCommand = errors.New("无法识别的指令，输入 help 查看说明")
)

var keywords = map[string]CommandKind{
	"cancel":  CmdCancel,
	"help":    CmdHelp,
	"h":       CmdHelp,
	"?":       CmdHelp,
	"counter": CmdCounter,
	"cc":      CmdCounter,
	"new":     CmdNewGame,
	"quit":    CmdQuit,
	"q":       CmdQuit,
	"exit":    CmdQuit,
}

// ParseCommand 解析一行输入：
//
//	7h        放到桌上
//	7h t2     落在第 2 张散牌上
//	7h 5s     落在散牌 5♠ 上
//	3c b1     落在第 1 个组合上
//	chow / build / compound   待选时的选择
func ParseCommand(input string, board rule.Board) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, errEmptyCommand
	}

	if len(fields) == 1 {
		if kind, ok := keywords[fields[0]]; ok {
			return Command{Kind: kind}, nil
		}
		if kind, ok := rule.ParseOutcomeKind(fields[0]); ok {
			return Command{Kind: CmdChoose, Choice: kind}, nil
		}
	}
	if len(fields) > 2 {
		return Command{}, errUnknownCommand
	}

	c, err := card.Parse(fields[0])
	if err != nil {
		return Command{}, errUnknownCommand
	}
	cmd := Command{Kind: CmdPlay, Card: c}
	if len(fields) == 1 {
		return cmd, nil
	}

	cmd.Target, err = parseTarget(fields[1], board)
	if err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// parseTarget 解析落点：tN 为第 N 张散牌，bN 为第 N 个组合，否则按牌面解析
func parseTarget(s string, board rule.Board) (rule.Target, error) {
	if len(s) >= 2 && (s[0] == 't' || s[0] == 'b') {
		if n, err := strconv.Atoi(s[1:]); err == nil {
			if s[0] == 't' {
				if n < 1 || n > len(board.Cards) {
					return rule.Target{}, fmt.Errorf("桌面上没有第 %d 张散牌", n)
				}
				return rule.OnCard(board.Cards[n-1].Card), nil
			}
			if n < 1 || n > len(board.Builds) {
				return rule.Target{}, fmt.Errorf("桌面上没有第 %d 个组合", n)
			}
			return rule.OnBuild(board.Builds[n-1].ID), nil
		}
	}

	c, err := card.Parse(s)
	if err != nil {
		return rule.Target{}, errUnknownCommand
	}
	return rule.OnCard(c), nil
}
