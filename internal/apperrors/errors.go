package apperrors

import "errors"

// 错误码
const (
	CodeNotYourTurn = iota + 1001
	CodeInvalidBuild
	CodeInsufficientCards
	CodeNoMove
	CodeDeckIntegrity
	CodeCardNotInHand
	CodeTargetNotFound
	CodeNoPendingChoice
	CodeChoicePending
	CodeGameOver
	CodeInvalidChoice
)

// GameError 游戏错误（规则引擎和会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrNotYourTurn       = &GameError{Code: CodeNotYourTurn, Message: "还没轮到您"}
	ErrInvalidBuild      = &GameError{Code: CodeInvalidBuild, Message: "无效的组合"}
	ErrInsufficientCards = &GameError{Code: CodeInsufficientCards, Message: "牌堆剩余牌数不足"}
	ErrNoMove            = &GameError{Code: CodeNoMove, Message: "没有可出的牌"}
	ErrDeckIntegrity     = &GameError{Code: CodeDeckIntegrity, Message: "牌堆数据异常"}
	ErrCardNotInHand     = &GameError{Code: CodeCardNotInHand, Message: "手牌中没有这张牌"}
	ErrTargetNotFound    = &GameError{Code: CodeTargetNotFound, Message: "桌面上没有该目标"}
	ErrNoPendingChoice   = &GameError{Code: CodeNoPendingChoice, Message: "当前没有待选择的操作"}
	ErrChoicePending     = &GameError{Code: CodeChoicePending, Message: "请先选择吃牌还是组合"}
	ErrGameOver          = &GameError{Code: CodeGameOver, Message: "游戏已结束"}
	ErrInvalidChoice     = &GameError{Code: CodeInvalidChoice, Message: "无效的选择"}
)

// CodeOf 返回错误链中第一个 GameError 的错误码，没有则返回 0
func CodeOf(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return 0
}
