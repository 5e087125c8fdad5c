package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/shacklabs/house-gateway/internal/eth"
)

// Validator — read-only проверки легальности действий перед тратой газа.
// Хендлеры намеренно трактуют ошибку вызова как «правило не выполнено»,
// см. allowed в internal/api.
type Validator struct {
	c *eth.Contract
}

func NewValidator(client *eth.Client, address string) (*Validator, error) {
	c, err := eth.NewContract(client, "Validator", address, ValidatorABI)
	if err != nil {
		return nil, err
	}
	return &Validator{c: c}, nil
}

func (v *Validator) CanBuyAddon(ctx context.Context, tokenID, addonID *big.Int, user common.Address) (bool, error) {
	return oneBool(v.c.View(ctx, "canBuyAddon", tokenID, addonID, user))
}

func (v *Validator) CanSalvageAddon(ctx context.Context, tokenID, addonID *big.Int, user common.Address) (bool, error) {
	return oneBool(v.c.View(ctx, "canSalvageAddon", tokenID, addonID, user))
}

func (v *Validator) CanFertilizeGarden(ctx context.Context, tokenID *big.Int, user common.Address) (bool, error) {
	return oneBool(v.c.View(ctx, "canFertilizeGarden", tokenID, user))
}

func (v *Validator) CanBuyToolshed(ctx context.Context, tokenID, toolshedType *big.Int, user common.Address) (bool, error) {
	return oneBool(v.c.View(ctx, "canBuyToolshed", tokenID, toolshedType, user))
}

// CanSwitchToolshed дополнительно возвращает прежний тип сарая: мутирующий
// вызов обязан его нести.
func (v *Validator) CanSwitchToolshed(ctx context.Context, tokenID, toolshedType *big.Int, user common.Address) (bool, *big.Int, error) {
	vals, err := v.c.View(ctx, "canSwitchToolshed", tokenID, toolshedType, user)
	if err != nil {
		return false, nil, err
	}
	ok, okCast := vals[0].(bool)
	if !okCast {
		return false, nil, errUnexpected(vals[0])
	}
	prevType, err := asBig(vals[1])
	if err != nil {
		return false, nil, err
	}
	return ok, prevType, nil
}

func (v *Validator) CanBuyFireplace(ctx context.Context, tokenID *big.Int, user common.Address) (bool, error) {
	return oneBool(v.c.View(ctx, "canBuyFireplace", tokenID, user))
}

// CanBurnLumber принимает снимок ресурсов (power, lastUpdate) и возвращает
// вычисленную энергию для мутирующего вызова.
func (v *Validator) CanBurnLumber(ctx context.Context, tokenID, lumber, power, lastUpdate *big.Int, user common.Address) (bool, *big.Int, error) {
	vals, err := v.c.View(ctx, "canBurnLumber", tokenID, lumber, power, lastUpdate, user)
	if err != nil {
		return false, nil, err
	}
	ok, okCast := vals[0].(bool)
	if !okCast {
		return false, nil, errUnexpected(vals[0])
	}
	out, err := asBig(vals[1])
	if err != nil {
		return false, nil, err
	}
	return ok, out, nil
}

func (v *Validator) CanBuyHarvester(ctx context.Context, tokenID *big.Int, user common.Address) (bool, error) {
	return oneBool(v.c.View(ctx, "canBuyHarvester", tokenID, user))
}

func (v *Validator) CanBuyConcreteFoundation(ctx context.Context, tokenID *big.Int, user common.Address) (bool, error) {
	return oneBool(v.c.View(ctx, "canBuyConcreteFoundation", tokenID, user))
}

func (v *Validator) CanBuyTokenOverdrive(ctx context.Context, tokenID *big.Int, user common.Address) (bool, error) {
	return oneBool(v.c.View(ctx, "canBuyTokenOverdrive", tokenID, user))
}

func (v *Validator) CanBuyResourceOverdrive(ctx context.Context, tokenID, facilityType *big.Int, user common.Address) (bool, error) {
	return oneBool(v.c.View(ctx, "canBuyResourceOverdrive", tokenID, facilityType, user))
}

func (v *Validator) CanFrontloadFirepit(ctx context.Context, tokenID, lumber *big.Int, user common.Address) (bool, error) {
	return oneBool(v.c.View(ctx, "canFrontloadFirepit", tokenID, lumber, user))
}

func (v *Validator) CanGatherLumberWithPower(ctx context.Context, tokenID, lumber, lastGatherTime *big.Int, user common.Address) (bool, error) {
	return oneBool(v.c.View(ctx, "canGatherLumberWithPower", tokenID, lumber, lastGatherTime, user))
}

func (v *Validator) CanUpgradeFacility(ctx context.Context, tokenID, facilityType *big.Int, user common.Address) (bool, error) {
	return oneBool(v.c.View(ctx, "canUpgradeFacility", tokenID, facilityType, user))
}

// CanHarvest возвращает токен-награду и бонус кострища вместе с вердиктом.
func (v *Validator) CanHarvest(ctx context.Context, tokenID, harvestingReward *big.Int, user common.Address) (bool, *big.Int, *big.Int, error) {
	vals, err := v.c.View(ctx, "canHarvest", tokenID, harvestingReward, user)
	if err != nil {
		return false, nil, nil, err
	}
	ok, okCast := vals[0].(bool)
	if !okCast {
		return false, nil, nil, errUnexpected(vals[0])
	}
	tokenReward, err := asBig(vals[1])
	if err != nil {
		return false, nil, nil, err
	}
	firepitBonus, err := asBig(vals[2])
	if err != nil {
		return false, nil, nil, err
	}
	return ok, tokenReward, firepitBonus, nil
}
