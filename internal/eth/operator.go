package eth

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Operator — единственный аккаунт-ретранслятор: его ключом подписываются и
// оплачиваются все мутирующие вызовы от имени всех пользователей.
type Operator struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewOperator разбирает hex-ключ (с "0x" или без) и выводит адрес аккаунта.
func NewOperator(hexKey string) (*Operator, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, fmt.Errorf("приватный ключ оператора не задан")
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("некорректный приватный ключ оператора: %w", err)
	}
	return &Operator{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address возвращает адрес оператора.
func (o *Operator) Address() common.Address { return o.address }
