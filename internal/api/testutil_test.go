package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/shacklabs/house-gateway/internal/auth"
	"github.com/shacklabs/house-gateway/internal/contracts"
	"github.com/shacklabs/house-gateway/internal/eth"
)

// Тестовый ключ из стандартного набора разработки
const testOperatorKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

const (
	gameAddr      = "0x2000000000000000000000000000000000000001"
	houseAddr     = "0x2000000000000000000000000000000000000002"
	validatorAddr = "0x2000000000000000000000000000000000000003"
	settingAddr   = "0x2000000000000000000000000000000000000004"
	helperAddr    = "0x2000000000000000000000000000000000000005"
)

// Адрес кошелька тестового игрока; имя пользователя совпадает с ним
const testUsername = "0x70997970c51812dc3a010c7d01b50e0d17dc79c8"

type viewFn func(args []interface{}) ([]interface{}, error)

// fakeNode имитирует узел сети: view-вызовы отвечают по имени метода,
// мутаторы записываются и сразу получают квитанцию
type fakeNode struct {
	mu sync.Mutex

	abis  []abi.ABI
	views map[string]viewFn

	submitted []string // имена замайненных методов
	sendErr   error
	revert    bool
	logs      []*types.Log
}

func newFakeNode(t *testing.T) *fakeNode {
	t.Helper()
	node := &fakeNode{views: make(map[string]viewFn)}
	for _, raw := range []string{
		contracts.GameABI, contracts.HouseABI, contracts.ValidatorABI,
		contracts.SettingABI, contracts.HelperABI,
	} {
		parsed, err := abi.JSON(strings.NewReader(raw))
		require.NoError(t, err)
		node.abis = append(node.abis, parsed)
	}
	return node
}

// stub задает ответ view-метода фиксированными значениями
func (f *fakeNode) stub(method string, vals ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views[method] = func([]interface{}) ([]interface{}, error) {
		return vals, nil
	}
}

// stubErr заставляет view-метод вернуть ошибку
func (f *fakeNode) stubErr(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views[method] = func([]interface{}) ([]interface{}, error) {
		return nil, err
	}
}

func (f *fakeNode) methodByData(data []byte) (*abi.Method, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("короткие данные вызова")
	}
	for i := range f.abis {
		if m, err := f.abis[i].MethodById(data[:4]); err == nil {
			return m, nil
		}
	}
	return nil, fmt.Errorf("неизвестный селектор %x", data[:4])
}

func (f *fakeNode) CallContract(ctx context.Context, call ethereum.CallMsg, block *big.Int) ([]byte, error) {
	method, err := f.methodByData(call.Data)
	if err != nil {
		return nil, err
	}

	args, err := method.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	fn, ok := f.views[method.Name]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("нет заглушки для метода %s", method.Name)
	}

	vals, err := fn(args)
	if err != nil {
		return nil, err
	}
	return method.Outputs.Pack(vals...)
}

func (f *fakeNode) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return 1, nil
}

func (f *fakeNode) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeNode) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	method, err := f.methodByData(tx.Data())
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.submitted = append(f.submitted, method.Name)
	return nil
}

func (f *fakeNode) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	status := types.ReceiptStatusSuccessful
	if f.revert {
		status = types.ReceiptStatusFailed
	}
	return &types.Receipt{
		Status:      status,
		TxHash:      txHash,
		BlockNumber: big.NewInt(777),
		Logs:        f.logs,
	}, nil
}

// submittedMethods возвращает список отправленных мутаторов
func (f *fakeNode) submittedMethods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.submitted...)
}

// updateResourceLog собирает лог события UpdateResource для квитанции
func (f *fakeNode) updateResourceLog(t *testing.T, user common.Address, updated int64) {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(contracts.GameABI))
	require.NoError(t, err)
	event := parsed.Events["UpdateResource"]

	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(updated))
	require.NoError(t, err)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = []*types.Log{{
		Address: common.HexToAddress(gameAddr),
		Topics:  []common.Hash{event.ID, common.BytesToHash(user.Bytes())},
		Data:    data,
	}}
}

// newTestServer собирает сервер поверх фейкового узла и памяти вместо БД
func newTestServer(t *testing.T, node *fakeNode) (*RestServer, auth.UserRepository) {
	t.Helper()

	// Изолируем метрики от других тестов
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	gin.SetMode(gin.TestMode)

	operator, err := eth.NewOperator(testOperatorKey)
	require.NoError(t, err)

	client := eth.NewClient(node, eth.ClientConfig{
		Operator:    operator,
		ChainID:     big.NewInt(1337),
		GasLimit:    3_000_000,
		CallTimeout: 2 * time.Second,
	})

	set, err := contracts.NewSet(client, contracts.Addresses{
		Game:      gameAddr,
		House:     houseAddr,
		Validator: validatorAddr,
		Setting:   settingAddr,
		Helper:    helperAddr,
	})
	require.NoError(t, err)

	repo := auth.NewMemoryUserRepo()
	server := NewRestServer(RestServerConfig{
		Port:      "0",
		UserRepo:  repo,
		Contracts: set,
		Precision: 100,
	})
	return server, repo
}

// authToken выдает валидный заголовок Authorization для тестового игрока
func authToken(t *testing.T, username string) string {
	t.Helper()
	token, err := auth.GenerateJWT(username)
	require.NoError(t, err)
	return auth.TokenScheme + " " + token
}

// doJSON выполняет запрос к роутеру и возвращает рекордер ответа
func doJSON(t *testing.T, server *RestServer, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

// decodeBody разбирает JSON-ответ в map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// ownerStatus настраивает getOwnerAndStatus: владелец, активация, статус смерти
func ownerStatus(node *fakeNode, owner common.Address, activated bool, dead int64) {
	node.stub("getOwnerAndStatus", owner, activated, big.NewInt(dead))
}

func bigs(vals ...int64) []*big.Int {
	out := make([]*big.Int, len(vals))
	for i, v := range vals {
		out[i] = big.NewInt(v)
	}
	return out
}
