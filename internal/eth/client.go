package eth

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/shacklabs/house-gateway/internal/logging"
)

// Backend — подмножество методов узла, которыми пользуется шлюз.
// *ethclient.Client реализует интерфейс целиком; тесты подставляют заглушку.
type Backend interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Client связывает бэкенд узла, аккаунт оператора и параметры отправки.
// Явно конструируется в main и передаётся в биндинги контрактов.
type Client struct {
	backend     Backend
	operator    *Operator
	signer      types.Signer
	gasLimit    uint64
	callTimeout time.Duration
	mineTimeout time.Duration
	pollEvery   time.Duration
}

// ClientConfig — параметры клиента узла.
type ClientConfig struct {
	Operator    *Operator
	ChainID     *big.Int
	GasLimit    uint64        // лимит газа каждой транзакции (env GAS)
	CallTimeout time.Duration // таймаут одного обращения к узлу
}

// NewClient создает клиент поверх заданного бэкенда.
func NewClient(backend Backend, cfg ClientConfig) *Client {
	callTimeout := cfg.CallTimeout
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	return &Client{
		backend:     backend,
		operator:    cfg.Operator,
		signer:      types.NewEIP155Signer(cfg.ChainID),
		gasLimit:    cfg.GasLimit,
		callTimeout: callTimeout,
		// майнинг занимает дольше одиночного RPC; ждём до четырёх таймаутов
		mineTimeout: 4 * callTimeout,
		pollEvery:   500 * time.Millisecond,
	}
}

// Operator возвращает аккаунт оператора.
func (cl *Client) Operator() *Operator { return cl.operator }

// Contract — один деплоенный контракт: адрес + ABI + общий клиент.
type Contract struct {
	client  *Client
	name    string
	address common.Address
	abi     abi.ABI
}

// NewContract разбирает ABI и привязывает его к адресу.
func NewContract(client *Client, name string, address string, abiJSON string) (*Contract, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("разбор ABI контракта %s: %w", name, err)
	}
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("некорректный адрес контракта %s: %q", name, address)
	}
	return &Contract{
		client:  client,
		name:    name,
		address: common.HexToAddress(address),
		abi:     parsed,
	}, nil
}

// Address возвращает адрес контракта.
func (c *Contract) Address() common.Address { return c.address }

// View выполняет read-only вызов (eth_call): без транзакции, без газа.
func (c *Contract) View(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, &RPCError{Contract: c.name, Method: method, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.client.callTimeout)
	defer cancel()

	out, err := c.client.backend.CallContract(ctx, ethereum.CallMsg{
		To:   &c.address,
		Data: data,
	}, nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Contract: c.name, Method: method, Err: err}
		}
		return nil, &RPCError{Contract: c.name, Method: method, Err: err}
	}

	vals, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, &RPCError{Contract: c.name, Method: method, Err: err}
	}
	return vals, nil
}

// Submit подписывает и отправляет мутирующую транзакцию от аккаунта оператора,
// затем ждёт квитанцию. Любой исход кроме квитанции со статусом 1 — ошибка;
// повторная отправка не выполняется никогда (риск двойного списания газа).
func (c *Contract) Submit(ctx context.Context, method string, args ...interface{}) (*types.Receipt, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, &SubmissionError{Contract: c.name, Method: method, Err: err}
	}

	cl := c.client

	setupCtx, cancel := context.WithTimeout(ctx, cl.callTimeout)
	defer cancel()

	nonce, err := cl.backend.PendingNonceAt(setupCtx, cl.operator.Address())
	if err != nil {
		return nil, c.setupErr(method, err)
	}
	gasPrice, err := cl.backend.SuggestGasPrice(setupCtx)
	if err != nil {
		return nil, c.setupErr(method, err)
	}

	tx := types.NewTransaction(nonce, c.address, big.NewInt(0), cl.gasLimit, gasPrice, data)
	signedTx, err := types.SignTx(tx, cl.signer, cl.operator.key)
	if err != nil {
		return nil, &SubmissionError{Contract: c.name, Method: method, Err: err}
	}

	if err := cl.backend.SendTransaction(setupCtx, signedTx); err != nil {
		return nil, &SubmissionError{Contract: c.name, Method: method, TxHash: signedTx.Hash(), Err: err}
	}

	logging.Debug("отправлена транзакция %s.%s tx=%s nonce=%d", c.name, method, signedTx.Hash().Hex(), nonce)

	return c.waitMined(ctx, method, signedTx.Hash())
}

func (c *Contract) setupErr(method string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Contract: c.name, Method: method, Err: err}
	}
	return &RPCError{Contract: c.name, Method: method, Err: err}
}

// waitMined опрашивает узел до появления квитанции или истечения таймаута.
func (c *Contract) waitMined(ctx context.Context, method string, txHash common.Hash) (*types.Receipt, error) {
	cl := c.client
	ctx, cancel := context.WithTimeout(ctx, cl.mineTimeout)
	defer cancel()

	ticker := time.NewTicker(cl.pollEvery)
	defer ticker.Stop()

	for {
		receipt, err := cl.backend.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			if receipt.Status == types.ReceiptStatusFailed {
				return nil, &SubmissionError{Contract: c.name, Method: method, TxHash: txHash, Reverted: true}
			}
			logging.Debug("транзакция %s.%s замайнена в блоке %d", c.name, method, receipt.BlockNumber.Uint64())
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, &TimeoutError{Contract: c.name, Method: method, Err: err}
			}
			return nil, &RPCError{Contract: c.name, Method: method, Err: err}
		}

		select {
		case <-ctx.Done():
			return nil, &TimeoutError{Contract: c.name, Method: method, Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}

// EventData извлекает non-indexed поля первого события name из квитанции.
func (c *Contract) EventData(receipt *types.Receipt, name string) (map[string]interface{}, error) {
	event, ok := c.abi.Events[name]
	if !ok {
		return nil, fmt.Errorf("событие %s отсутствует в ABI контракта %s", name, c.name)
	}
	for _, lg := range receipt.Logs {
		if lg.Address != c.address || len(lg.Topics) == 0 || lg.Topics[0] != event.ID {
			continue
		}
		out := make(map[string]interface{})
		if err := c.abi.UnpackIntoMap(out, name, lg.Data); err != nil {
			return nil, fmt.Errorf("декодирование события %s: %w", name, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("событие %s не найдено в квитанции %s", name, receipt.TxHash.Hex())
}
