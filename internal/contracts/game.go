package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/shacklabs/house-gateway/internal/eth"
)

// UpdateResourceEvent — имя события Game-контракта с пост-транзакционным
// значением ресурса; fortify читает его прямо из квитанции.
const UpdateResourceEvent = "UpdateResource"

// Game — единственный мутирующий контракт: по одному методу на игровое действие.
type Game struct {
	c *eth.Contract
}

func NewGame(client *eth.Client, address string) (*Game, error) {
	c, err := eth.NewContract(client, "Game", address, GameABI)
	if err != nil {
		return nil, err
	}
	return &Game{c: c}, nil
}

// GetResource возвращает массив ресурсов пользователя; элемент 0 — отметка
// последнего обновления, её обязан нести каждый мутирующий вызов.
func (g *Game) GetResource(ctx context.Context, user common.Address, tokenID *big.Int) ([]*big.Int, error) {
	return bigSlice(g.c.View(ctx, "getResource", user, tokenID))
}

func (g *Game) GetLastGatherLumberTime(ctx context.Context, user common.Address) (*big.Int, error) {
	return oneBig(g.c.View(ctx, "getLastGatherLumberTime", user))
}

func (g *Game) ActivateHouse(ctx context.Context, user common.Address, tokenID, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "activateHouse", user, tokenID, lastUpdate)
}

func (g *Game) BuyAddon(ctx context.Context, user common.Address, tokenID, addonID, addonCost, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "buyAddon", user, tokenID, addonID, addonCost, lastUpdate)
}

func (g *Game) SalvageAddon(ctx context.Context, user common.Address, tokenID, addonID, salvageCost, sellCost, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "salvageAddon", user, tokenID, addonID, salvageCost, sellCost, lastUpdate)
}

func (g *Game) FertilizeGarden(ctx context.Context, user common.Address, tokenID, cost, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "fertilizeGarden", user, tokenID, cost, lastUpdate)
}

func (g *Game) BuyToolshed(ctx context.Context, user common.Address, tokenID, toolshedType, cost, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "buyToolshed", user, tokenID, toolshedType, cost, lastUpdate)
}

func (g *Game) SwitchToolshed(ctx context.Context, user common.Address, tokenID, toolshedType, prevType, cost, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "switchToolshed", user, tokenID, toolshedType, prevType, cost, lastUpdate)
}

func (g *Game) BuyFireplace(ctx context.Context, user common.Address, tokenID, cost, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "buyFireplace", user, tokenID, cost, lastUpdate)
}

func (g *Game) BurnLumberToMakePower(ctx context.Context, user common.Address, tokenID, lumber, power, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "burnLumberToMakePower", user, tokenID, lumber, power, lastUpdate)
}

func (g *Game) BuyHarvester(ctx context.Context, user common.Address, tokenID, cost, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "buyHarvester", user, tokenID, cost, lastUpdate)
}

func (g *Game) BuyConcreteFoundation(ctx context.Context, user common.Address, tokenID, cost, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "buyConcreteFoundation", user, tokenID, cost, lastUpdate)
}

func (g *Game) BuyTokenOverdrive(ctx context.Context, user common.Address, tokenID, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "buyTokenOverdrive", user, tokenID, lastUpdate)
}

func (g *Game) BuyResourceOverdrive(ctx context.Context, user common.Address, tokenID, facilityType, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "buyResourceOverdrive", user, tokenID, facilityType, lastUpdate)
}

func (g *Game) FrontLoadFirepit(ctx context.Context, user common.Address, tokenID, lumber, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "frontLoadFirepit", user, tokenID, lumber, lastUpdate)
}

func (g *Game) GatherLumberWithPower(ctx context.Context, user common.Address, tokenID, lumber, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "gatherLumberWithPower", user, tokenID, lumber, lastUpdate)
}

func (g *Game) UpgradeFacility(ctx context.Context, user common.Address, tokenID, facilityType, cost, level, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "upgradeFacility", user, tokenID, facilityType, cost, level, lastUpdate)
}

func (g *Game) Fortify(ctx context.Context, user common.Address, tokenID, fortifyType, cost, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "fortify", user, tokenID, fortifyType, cost, lastUpdate)
}

func (g *Game) Repair(ctx context.Context, user common.Address, tokenID, percent, curDurability, repairCost, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "repair", user, tokenID, percent, curDurability, repairCost, lastUpdate)
}

func (g *Game) Harvest(ctx context.Context, user common.Address, tokenID, harvestingReward, resourceReward, tokenReward, firepitBonus, powerCost, lastUpdate *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "harvest", user, tokenID, harvestingReward, resourceReward, tokenReward, firepitBonus, powerCost, lastUpdate)
}

func (g *Game) OnSale(ctx context.Context, user common.Address, tokenID, price *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "onSale", user, tokenID, price)
}

func (g *Game) OffSale(ctx context.Context, user common.Address, tokenID *big.Int) (*types.Receipt, error) {
	return g.c.Submit(ctx, "offSale", user, tokenID)
}

// UpdatedResource достаёт значение ресурса из события UpdateResource квитанции.
func (g *Game) UpdatedResource(receipt *types.Receipt) (*big.Int, error) {
	data, err := g.c.EventData(receipt, UpdateResourceEvent)
	if err != nil {
		return nil, err
	}
	return asBig(data["updatedResource"])
}
