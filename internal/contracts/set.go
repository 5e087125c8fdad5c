package contracts

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/shacklabs/house-gateway/internal/eth"
)

// Set — пять контрактов игры, связанные одним клиентом узла.
// Конструируется один раз при старте и внедряется в HTTP-слой.
type Set struct {
	Game      *Game
	House     *House
	Validator *Validator
	Setting   *Setting
	Helper    *Helper

	client *eth.Client
}

// OperatorAddress — адрес аккаунта, подписывающего транзакции.
func (s *Set) OperatorAddress() common.Address {
	return s.client.Operator().Address()
}

// Addresses — адреса деплоенных контрактов из конфигурации.
type Addresses struct {
	Game      string
	House     string
	Validator string
	Setting   string
	Helper    string
}

// NewSet привязывает все пять контрактов к клиенту.
func NewSet(client *eth.Client, addrs Addresses) (*Set, error) {
	game, err := NewGame(client, addrs.Game)
	if err != nil {
		return nil, err
	}
	house, err := NewHouse(client, addrs.House)
	if err != nil {
		return nil, err
	}
	validator, err := NewValidator(client, addrs.Validator)
	if err != nil {
		return nil, err
	}
	setting, err := NewSetting(client, addrs.Setting)
	if err != nil {
		return nil, err
	}
	helper, err := NewHelper(client, addrs.Helper)
	if err != nil {
		return nil, err
	}
	return &Set{
		Game:      game,
		House:     house,
		Validator: validator,
		Setting:   setting,
		Helper:    helper,
		client:    client,
	}, nil
}
