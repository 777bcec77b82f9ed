package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/apperrors"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/rule"
)

var c = card.MustParse

func table(cards ...string) []rule.TableCard {
	out := make([]rule.TableCard, len(cards))
	for i, s := range cards {
		out[i] = rule.TableCard{Card: c(s), PlayedBy: rule.SidePlayer}
	}
	return out
}

func TestChoose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		hand         []string
		board        rule.Board
		wantPriority Priority
		wantCard     string
		wantTarget   rule.Target
	}{
		{
			name:         "ace capture beats earlier plain capture",
			hand:         []string{"5h", "As"},
			board:        rule.Board{Cards: table("5c", "Ac")},
			wantPriority: HighValueCapture,
			wantCard:     "As",
			wantTarget:   rule.OnCard(c("Ac")),
		},
		{
			name: "build holding the spy is a high-value capture",
			hand: []string{"3h", "7h"},
			board: rule.Board{
				Cards:  table("3c"),
				Builds: []*rule.Build{{ID: "b7", Value: 7, Owner: rule.SidePlayer, Groups: [][]card.Card{card.MustParseAll("5d", "2s")}}},
			},
			wantPriority: HighValueCapture,
			wantCard:     "7h",
			wantTarget:   rule.OnBuild("b7"),
		},
		{
			name:         "spade capture",
			hand:         []string{"5h", "7d"},
			board:        rule.Board{Cards: table("7c", "5s")},
			wantPriority: SpadeCapture,
			wantCard:     "5h",
			wantTarget:   rule.OnCard(c("5s")),
		},
		{
			name:         "build before plain capture",
			hand:         []string{"9c", "2c", "7d"},
			board:        rule.Board{Cards: table("9h", "5h")},
			wantPriority: BuildFormation,
			wantCard:     "2c",
			wantTarget:   rule.OnCard(c("5h")),
		},
		{
			name:         "plain capture",
			hand:         []string{"3d", "9c"},
			board:        rule.Board{Cards: table("9h")},
			wantPriority: AnyCapture,
			wantCard:     "9c",
			wantTarget:   rule.OnCard(c("9h")),
		},
		{
			name:         "equal value still captures when no build is possible",
			hand:         []string{"2c", "5d"},
			board:        rule.Board{Cards: table("5h")},
			wantPriority: AnyCapture,
			wantCard:     "5d",
			wantTarget:   rule.OnCard(c("5h")),
		},
		{
			name:         "discard lowest when nothing matches",
			hand:         []string{"5d", "2c"},
			board:        rule.Board{Cards: table("6h")},
			wantPriority: Discard,
			wantCard:     "2c",
		},
		{
			name:         "discard on empty table",
			hand:         []string{"8d", "3c", "3h"},
			board:        rule.Board{},
			wantPriority: Discard,
			wantCard:     "3c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, err := Choose(card.MustParseAll(tt.hand...), tt.board)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPriority, d.Priority)
			assert.Equal(t, c(tt.wantCard), d.Move.Card)
			assert.Equal(t, tt.wantTarget, d.Move.Target)
			assert.Equal(t, rule.SideAI, d.Move.Side)
		})
	}
}

func TestChoose_SkipsBuildRejectedByRules(t *testing.T) {
	t.Parallel()

	// 对手已有 7 点组合，2+5 不能再组成 7
	board := rule.Board{
		Cards:  table("5h"),
		Builds: []*rule.Build{{ID: "b7", Value: 7, Owner: rule.SidePlayer, Groups: [][]card.Card{card.MustParseAll("4h", "3h")}}},
	}
	d, err := Choose(card.MustParseAll("2c", "7d"), board)
	require.NoError(t, err)
	assert.Equal(t, AnyCapture, d.Priority)
	assert.Equal(t, c("7d"), d.Move.Card)
	assert.Equal(t, rule.OnBuild("b7"), d.Move.Target)
}

func TestChoose_EmptyHand(t *testing.T) {
	t.Parallel()

	_, err := Choose(nil, rule.Board{Cards: table("5h")})
	assert.ErrorIs(t, err, apperrors.ErrNoMove)

	_, _, err = RunTurn(nil, rule.Board{})
	assert.ErrorIs(t, err, apperrors.ErrNoMove)
}

func TestRunTurn_PrefersBuildOnChoice(t *testing.T) {
	t.Parallel()

	board := rule.Board{Cards: table("4c")}
	o, next, err := RunTurn(card.MustParseAll("4d", "8h"), board)
	require.NoError(t, err)

	assert.Equal(t, rule.NewBuild, o.Kind)
	assert.Empty(t, next.Cards)
	require.Len(t, next.Builds, 1)
	assert.Equal(t, 8, next.Builds[0].Value)
	assert.Equal(t, rule.SideAI, next.Builds[0].Owner)
	assert.Len(t, board.Cards, 1)
}

func TestRunTurn_CaptureChoosesChow(t *testing.T) {
	t.Parallel()

	// 4♠ 是黑桃，吃牌优先于组合；同时持有 8 时仍选择吃
	board := rule.Board{Cards: table("4s")}
	o, next, err := RunTurn(card.MustParseAll("4d", "8h"), board)
	require.NoError(t, err)

	assert.Equal(t, rule.Chow, o.Kind)
	assert.ElementsMatch(t, card.MustParseAll("4d", "4s"), o.Captured)
	assert.True(t, next.IsEmpty())
}

func TestRunTurn_Discard(t *testing.T) {
	t.Parallel()

	o, next, err := RunTurn(card.MustParseAll("5d", "2c"), rule.Board{Cards: table("6h")})
	require.NoError(t, err)

	assert.Equal(t, rule.Placement, o.Kind)
	require.Len(t, next.Cards, 2)
	assert.Equal(t, rule.TableCard{Card: c("2c"), PlayedBy: rule.SideAI}, next.Cards[1])
}
