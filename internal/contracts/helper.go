package contracts

import (
	"context"
	"math/big"

	"github.com/shacklabs/house-gateway/internal/eth"
)

// RepairData — данные ремонта из одного view-вызова Helper-контракта.
type RepairData struct {
	MaxDurability *big.Int
	CurDurability *big.Int
	RepairCost    *big.Int
}

// Helper — агрегирующие view-методы поверх House/Setting.
type Helper struct {
	c *eth.Contract
}

func NewHelper(client *eth.Client, address string) (*Helper, error) {
	c, err := eth.NewContract(client, "Helper", address, HelperABI)
	if err != nil {
		return nil, err
	}
	return &Helper{c: c}, nil
}

func (h *Helper) GetHouseDetails(ctx context.Context, tokenID *big.Int) ([]*big.Int, error) {
	return bigSlice(h.c.View(ctx, "getHouseDetails", tokenID))
}

func (h *Helper) GetRepairData(ctx context.Context, tokenID, percent *big.Int) (RepairData, error) {
	vals, err := h.c.View(ctx, "getRepairData", tokenID, percent)
	if err != nil {
		return RepairData{}, err
	}
	maxDur, err := asBig(vals[0])
	if err != nil {
		return RepairData{}, err
	}
	curDur, err := asBig(vals[1])
	if err != nil {
		return RepairData{}, err
	}
	cost, err := asBig(vals[2])
	if err != nil {
		return RepairData{}, err
	}
	return RepairData{MaxDurability: maxDur, CurDurability: curDur, RepairCost: cost}, nil
}

func (h *Helper) GetHarvestCost(ctx context.Context, tokenID, harvestingReward *big.Int) (*big.Int, error) {
	return oneBig(h.c.View(ctx, "getHarvestCost", tokenID, harvestingReward))
}
