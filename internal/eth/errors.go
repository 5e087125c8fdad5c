package eth

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// RPCError означает сбой узла или сети при read-only вызове.
type RPCError struct {
	Contract string
	Method   string
	Err      error
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc вызов %s.%s: %v", e.Contract, e.Method, e.Err)
}

func (e *RPCError) Unwrap() error { return e.Err }

// TimeoutError означает, что обращение к узлу не уложилось в отведённый таймаут.
// Отделён от RPCError, чтобы зависший узел не маскировался под обычный сбой.
type TimeoutError struct {
	Contract string
	Method   string
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("таймаут вызова %s.%s: %v", e.Contract, e.Method, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// SubmissionError означает, что мутирующая транзакция не была принята или
// откатилась. Единственный сигнал успеха — полученная квитанция со статусом 1;
// всё остальное — отказ, который никогда не ретраится автоматически.
type SubmissionError struct {
	Contract string
	Method   string
	TxHash   common.Hash
	Reverted bool
	Err      error
}

func (e *SubmissionError) Error() string {
	if e.Reverted {
		return fmt.Sprintf("транзакция %s.%s (%s) откатилась", e.Contract, e.Method, e.TxHash.Hex())
	}
	return fmt.Sprintf("отправка %s.%s: %v", e.Contract, e.Method, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
