package contracts

import (
	"context"
	"math/big"

	"github.com/shacklabs/house-gateway/internal/eth"
)

// Setting — таблицы стоимостей действий, только view-методы.
type Setting struct {
	c *eth.Contract
}

func NewSetting(client *eth.Client, address string) (*Setting, error) {
	c, err := eth.NewContract(client, "Setting", address, SettingABI)
	if err != nil {
		return nil, err
	}
	return &Setting{c: c}, nil
}

func (s *Setting) GetBaseAddonCostByID(ctx context.Context, addonID *big.Int) (*big.Int, error) {
	return oneBig(s.c.View(ctx, "getBaseAddonCostById", addonID))
}

// GetSalvageCost возвращает (salvageCost, sellCost) с учётом установленных аддонов.
func (s *Setting) GetSalvageCost(ctx context.Context, addonID *big.Int, hasAddons [12]bool) (*big.Int, *big.Int, error) {
	vals, err := s.c.View(ctx, "getSalvageCost", addonID, hasAddons)
	if err != nil {
		return nil, nil, err
	}
	salvageCost, err := asBig(vals[0])
	if err != nil {
		return nil, nil, err
	}
	sellCost, err := asBig(vals[1])
	if err != nil {
		return nil, nil, err
	}
	return salvageCost, sellCost, nil
}

func (s *Setting) GetFertilizeGardenCost(ctx context.Context) (*big.Int, error) {
	return oneBig(s.c.View(ctx, "getFertilizeGardenCost"))
}

func (s *Setting) GetToolshedBuildCost(ctx context.Context, toolshedType *big.Int) (*big.Int, error) {
	return oneBig(s.c.View(ctx, "getToolshedBuildCost", toolshedType))
}

func (s *Setting) GetToolshedSwitchCost(ctx context.Context) (*big.Int, error) {
	return oneBig(s.c.View(ctx, "getToolshedSwitchCost"))
}

func (s *Setting) GetFireplaceCost(ctx context.Context) (*big.Int, error) {
	return oneBig(s.c.View(ctx, "getFireplaceCost"))
}

func (s *Setting) GetHarvesterCost(ctx context.Context) (*big.Int, error) {
	return oneBig(s.c.View(ctx, "getHarvesterCost"))
}

func (s *Setting) GetDurabilityDiscountCost(ctx context.Context) (*big.Int, error) {
	return oneBig(s.c.View(ctx, "getDurabilityDiscountCost"))
}

func (s *Setting) GetFacilityUpgradeCost(ctx context.Context, facilityType, level *big.Int) (*big.Int, error) {
	return oneBig(s.c.View(ctx, "getFacilityUpgradeCost", facilityType, level))
}

func (s *Setting) GetFortifyCost(ctx context.Context, fortifyType *big.Int) (*big.Int, error) {
	return oneBig(s.c.View(ctx, "getFortifyCost", fortifyType))
}
