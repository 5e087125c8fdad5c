package eth

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Тестовый ключ из стандартного набора разработки, в сети не используется
const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

const testABI = `[
	{"constant":true,"inputs":[],"name":"getValue","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"value","type":"uint256"}],"name":"setValue","outputs":[],"type":"function"},
	{"anonymous":false,"inputs":[{"indexed":false,"name":"newValue","type":"uint256"}],"name":"ValueChanged","type":"event"}
]`

const testAddr = "0x1000000000000000000000000000000000000001"

// fakeBackend — заглушка узла: отвечает заранее заданными данными
type fakeBackend struct {
	mu sync.Mutex

	callResult []byte
	callErr    error

	sendErr error
	sentTx  *types.Transaction

	receipt     *types.Receipt
	receiptErr  error
	notFoundHit int // сколько раз вернуть NotFound до квитанции
}

func (f *fakeBackend) CallContract(ctx context.Context, call ethereum.CallMsg, block *big.Int) ([]byte, error) {
	return f.callResult, f.callErr
}

func (f *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return 7, nil
}

func (f *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentTx = tx
	return f.sendErr
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.notFoundHit > 0 {
		f.notFoundHit--
		return nil, ethereum.NotFound
	}
	if f.receiptErr != nil {
		return nil, f.receiptErr
	}
	return f.receipt, nil
}

func newTestContract(t *testing.T, backend Backend) *Contract {
	t.Helper()

	operator, err := NewOperator(testKey)
	if err != nil {
		t.Fatalf("Ошибка создания оператора: %v", err)
	}

	client := NewClient(backend, ClientConfig{
		Operator:    operator,
		ChainID:     big.NewInt(1337),
		GasLimit:    3_000_000,
		CallTimeout: 2 * time.Second,
	})
	client.pollEvery = 10 * time.Millisecond

	contract, err := NewContract(client, "Test", testAddr, testABI)
	if err != nil {
		t.Fatalf("Ошибка привязки контракта: %v", err)
	}
	return contract
}

func packUint(t *testing.T, v int64) []byte {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(testABI))
	if err != nil {
		t.Fatalf("Ошибка разбора ABI: %v", err)
	}
	out, err := parsed.Methods["getValue"].Outputs.Pack(big.NewInt(v))
	if err != nil {
		t.Fatalf("Ошибка упаковки: %v", err)
	}
	return out
}

// TestView_DecodesResult проверяет чтение и декодирование eth_call
func TestView_DecodesResult(t *testing.T) {
	backend := &fakeBackend{callResult: packUint(t, 42)}
	contract := newTestContract(t, backend)

	vals, err := contract.View(context.Background(), "getValue")
	if err != nil {
		t.Fatalf("Ошибка вызова View: %v", err)
	}
	if len(vals) != 1 {
		t.Fatalf("Ожидалось одно значение, получено %d", len(vals))
	}

	got, ok := vals[0].(*big.Int)
	if !ok {
		t.Fatalf("Ожидался *big.Int, получен %T", vals[0])
	}
	if got.Int64() != 42 {
		t.Errorf("Ожидалось 42, получено %s", got)
	}
}

// TestView_Timeout проверяет, что дедлайн превращается в TimeoutError
func TestView_Timeout(t *testing.T) {
	backend := &fakeBackend{callErr: context.DeadlineExceeded}
	contract := newTestContract(t, backend)

	_, err := contract.View(context.Background(), "getValue")
	if err == nil {
		t.Fatal("Ожидалась ошибка")
	}

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("Ожидался TimeoutError, получен %T: %v", err, err)
	}
}

// TestView_RPCError проверяет, что прочие сбои узла заворачиваются в RPCError
func TestView_RPCError(t *testing.T) {
	backend := &fakeBackend{callErr: errors.New("connection refused")}
	contract := newTestContract(t, backend)

	_, err := contract.View(context.Background(), "getValue")
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("Ожидался RPCError, получен %T: %v", err, err)
	}
}

// TestSubmit_WaitsForReceipt проверяет полный цикл: подпись, отправка, опрос квитанции
func TestSubmit_WaitsForReceipt(t *testing.T) {
	backend := &fakeBackend{
		receipt: &types.Receipt{
			Status:      types.ReceiptStatusSuccessful,
			BlockNumber: big.NewInt(100),
		},
		notFoundHit: 2, // квитанция появляется не сразу
	}
	contract := newTestContract(t, backend)

	receipt, err := contract.Submit(context.Background(), "setValue", big.NewInt(5))
	if err != nil {
		t.Fatalf("Ошибка отправки: %v", err)
	}
	if receipt.BlockNumber.Uint64() != 100 {
		t.Errorf("Ожидался блок 100, получен %d", receipt.BlockNumber.Uint64())
	}

	backend.mu.Lock()
	sent := backend.sentTx
	backend.mu.Unlock()
	if sent == nil {
		t.Fatal("Транзакция не была отправлена")
	}
	if sent.Nonce() != 7 {
		t.Errorf("Ожидался nonce 7, получен %d", sent.Nonce())
	}
	if sent.Gas() != 3_000_000 {
		t.Errorf("Ожидался лимит газа 3000000, получен %d", sent.Gas())
	}
}

// TestSubmit_Reverted проверяет, что квитанция со статусом 0 — это SubmissionError
func TestSubmit_Reverted(t *testing.T) {
	backend := &fakeBackend{
		receipt: &types.Receipt{
			Status:      types.ReceiptStatusFailed,
			BlockNumber: big.NewInt(100),
		},
	}
	contract := newTestContract(t, backend)

	_, err := contract.Submit(context.Background(), "setValue", big.NewInt(5))
	if err == nil {
		t.Fatal("Ожидалась ошибка")
	}

	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("Ожидался SubmissionError, получен %T: %v", err, err)
	}
	if !subErr.Reverted {
		t.Error("Ожидался флаг Reverted")
	}
}

// TestSubmit_SendFailure проверяет, что отказ узла при отправке не опрашивается дальше
func TestSubmit_SendFailure(t *testing.T) {
	backend := &fakeBackend{sendErr: errors.New("nonce too low")}
	contract := newTestContract(t, backend)

	_, err := contract.Submit(context.Background(), "setValue", big.NewInt(5))
	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("Ожидался SubmissionError, получен %T: %v", err, err)
	}
	if subErr.Reverted {
		t.Error("Флаг Reverted не должен быть установлен при отказе отправки")
	}
}

// TestEventData проверяет извлечение события из квитанции
func TestEventData(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(testABI))
	if err != nil {
		t.Fatalf("Ошибка разбора ABI: %v", err)
	}
	event := parsed.Events["ValueChanged"]
	data, err := event.Inputs.Pack(big.NewInt(99))
	if err != nil {
		t.Fatalf("Ошибка упаковки события: %v", err)
	}

	receipt := &types.Receipt{
		TxHash: common.HexToHash("0xabc"),
		Logs: []*types.Log{
			{
				Address: common.HexToAddress(testAddr),
				Topics:  []common.Hash{event.ID},
				Data:    data,
			},
		},
	}

	contract := newTestContract(t, &fakeBackend{})
	out, err := contract.EventData(receipt, "ValueChanged")
	if err != nil {
		t.Fatalf("Ошибка извлечения события: %v", err)
	}

	newValue, ok := out["newValue"].(*big.Int)
	if !ok || newValue.Int64() != 99 {
		t.Errorf("Ожидалось newValue=99, получено %v", out["newValue"])
	}
}

// TestEventData_NotInReceipt проверяет ошибку при отсутствии события
func TestEventData_NotInReceipt(t *testing.T) {
	contract := newTestContract(t, &fakeBackend{})
	receipt := &types.Receipt{TxHash: common.HexToHash("0xdef")}

	if _, err := contract.EventData(receipt, "ValueChanged"); err == nil {
		t.Fatal("Ожидалась ошибка для квитанции без событий")
	}
}
