package contracts

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/shacklabs/house-gateway/internal/eth"
)

// OwnerAndStatus — владелец и статус дома из одного view-вызова.
// DeadStatus != 0 означает мёртвый дом.
type OwnerAndStatus struct {
	Owner      common.Address
	Activated  bool
	DeadStatus *big.Int
}

// OwnedBy сравнивает владельца с именем пользователя (hex-адрес, регистр не важен).
func (s OwnerAndStatus) OwnedBy(username string) bool {
	return strings.ToLower(s.Owner.Hex()) == strings.ToLower(username)
}

// IsDead сообщает, мёртв ли дом.
func (s OwnerAndStatus) IsDead() bool {
	return s.DeadStatus.Sign() != 0
}

// House — NFT-контракт домов, только view-методы.
type House struct {
	c *eth.Contract
}

func NewHouse(client *eth.Client, address string) (*House, error) {
	c, err := eth.NewContract(client, "House", address, HouseABI)
	if err != nil {
		return nil, err
	}
	return &House{c: c}, nil
}

func (h *House) GetOwnerAndStatus(ctx context.Context, tokenID *big.Int) (OwnerAndStatus, error) {
	vals, err := h.c.View(ctx, "getOwnerAndStatus", tokenID)
	if err != nil {
		return OwnerAndStatus{}, err
	}
	owner, ok := vals[0].(common.Address)
	if !ok {
		return OwnerAndStatus{}, fmt.Errorf("неожиданный тип выхода: %T", vals[0])
	}
	activated, ok := vals[1].(bool)
	if !ok {
		return OwnerAndStatus{}, fmt.Errorf("неожиданный тип выхода: %T", vals[1])
	}
	dead, err := asBig(vals[2])
	if err != nil {
		return OwnerAndStatus{}, err
	}
	return OwnerAndStatus{Owner: owner, Activated: activated, DeadStatus: dead}, nil
}

// GetHouse возвращает сырой массив полей дома; индексы значимых полей
// (expireGardenTime=8, lastFertilizedGardenTime=9, hasAddon=21, hasBoost=25)
// зафиксированы контрактом.
func (h *House) GetHouse(ctx context.Context, tokenID *big.Int) ([]*big.Int, error) {
	return bigSlice(h.c.View(ctx, "getHouse", tokenID))
}

func (h *House) GetFacilityLevel(ctx context.Context, tokenID, facilityType *big.Int) (*big.Int, error) {
	return oneBig(h.c.View(ctx, "getFacilityLevel", tokenID, facilityType))
}

func (h *House) GetHasAddons(ctx context.Context, tokenID *big.Int) ([12]bool, error) {
	vals, err := h.c.View(ctx, "getHasAddons", tokenID)
	if err != nil {
		return [12]bool{}, err
	}
	flags, ok := vals[0].([12]bool)
	if !ok {
		return [12]bool{}, fmt.Errorf("неожиданный тип выхода: %T", vals[0])
	}
	return flags, nil
}

func (h *House) GetAddonSalvageCost(ctx context.Context, tokenID, addonID *big.Int) ([]*big.Int, error) {
	return bigSlice(h.c.View(ctx, "getAddonSalvageCost", tokenID, addonID))
}

func (h *House) CalculateMaxPowerLimitByUser(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	return oneBig(h.c.View(ctx, "calculateMaxPowerLimitByUser", tokenID))
}

func (h *House) GetFirepitRemainDays(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	return oneBig(h.c.View(ctx, "getFirepitRemainDays", tokenID))
}

func (h *House) GetResourceReward(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	return oneBig(h.c.View(ctx, "getResourceReward", tokenID))
}

func (h *House) GetDepositedBalance(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	return oneBig(h.c.View(ctx, "getDepositedBalance", tokenID))
}

func (h *House) GetTokenReward(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	return oneBig(h.c.View(ctx, "getTokenReward", tokenID))
}
