package api

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"

	"github.com/shacklabs/house-gateway/internal/eventbus"
	"github.com/shacklabs/house-gateway/internal/logging"
)

// Тела запросов игровых действий. Все числовые поля клиент шлет
// как JSON-числа, в контрактные вызовы они уходят как uint256.
type actionRequest struct {
	TokenID          int64 `json:"tokenId"`
	AddonID          int64 `json:"addonId"`
	ToolshedType     int64 `json:"toolshedType"`
	FacilityType     int64 `json:"facilityType"`
	Type             int64 `json:"type"`
	Lumber           int64 `json:"lumber"`
	Percent          int64 `json:"percent"`
	Price            int64 `json:"price"`
	HarvestingReward int64 `json:"harvestingReward"`
}

func bindAction(c *gin.Context) (actionRequest, bool) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "Invalid request body")
		return req, false
	}
	return req, true
}

// resAt достает элемент массива ресурсов, не падая на коротком ответе
func resAt(resource []*big.Int, i int) *big.Int {
	if i < len(resource) {
		return resource[i]
	}
	return new(big.Int)
}

// submitFailed — отправка или майнинг транзакции не удались
func (s *RestServer) submitFailed(c *gin.Context, action string, err error) {
	s.promMw.CountSubmission(action, false)
	logging.Error("Действие %s не прошло: %v", action, err)
	failRead(c, err)
}

// submitted фиксирует замайненную транзакцию: метрика и событие в шину
func (s *RestServer) submitted(action, username string, tokenID *big.Int, receipt *types.Receipt) {
	s.promMw.CountSubmission(action, true)
	s.publisher.PublishAction(eventbus.ActionEvent{
		Action:    action,
		User:      username,
		TokenID:   tokenID.String(),
		TxHash:    receipt.TxHash.Hex(),
		Block:     receipt.BlockNumber.Uint64(),
		Timestamp: time.Now().UTC(),
	})
}

// ---- Чтения ----

func (s *RestServer) handleGetResource(c *gin.Context) {
	tokenID, ok := queryTokenID(c)
	if !ok {
		return
	}
	user := common.HexToAddress(currentUser(c))

	resource, err := s.contracts.Game.GetResource(c.Request.Context(), user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{"reason": bigStrings(resource)})
}

func (s *RestServer) handleGetHouse(c *gin.Context) {
	tokenID, ok := queryTokenID(c)
	if !ok {
		return
	}

	house, err := s.contracts.House.GetHouse(c.Request.Context(), tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{"reason": bigStrings(house)})
}

func (s *RestServer) handleGetHouseDetails(c *gin.Context) {
	tokenID, ok := queryTokenID(c)
	if !ok {
		return
	}

	details, err := s.contracts.Helper.GetHouseDetails(c.Request.Context(), tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{"reason": bigStrings(details)})
}

func queryTokenID(c *gin.Context) (*big.Int, bool) {
	raw := c.Query("tokenId")
	tokenID, ok := new(big.Int).SetString(raw, 10)
	if raw == "" || !ok || tokenID.Sign() < 0 {
		failValidation(c, "Invalid token id")
		return nil, false
	}
	return tokenID, true
}

// ---- Действия ----

func (s *RestServer) handleActivateHouse(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)

	status, err := s.contracts.House.GetOwnerAndStatus(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	if !status.OwnedBy(username) {
		failValidation(c, "Activate permission denied")
		return
	}
	if status.Activated {
		failValidation(c, "Already activated")
		return
	}
	if status.IsDead() {
		failValidation(c, "House is Dead")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.ActivateHouse(ctx, user, tokenID, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "activateHouse", err)
		return
	}
	s.submitted("activateHouse", username, tokenID, receipt)

	maxPowerLimit, err := s.contracts.House.CalculateMaxPowerLimitByUser(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{
		"maxPowerLimit": bigString(maxPowerLimit),
		"reason":        "House activated!",
	})
}

func (s *RestServer) handleBuyAddon(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)
	addonID := big.NewInt(req.AddonID)

	if req.AddonID < 0 || req.AddonID >= 12 {
		failValidation(c, "Invalid addon id")
		return
	}

	// В отличие от остальных валидаторов ошибка здесь отдается клиенту
	okToBuy, err := s.contracts.Validator.CanBuyAddon(ctx, tokenID, addonID, user)
	if err != nil {
		failRead(c, err)
		return
	}
	if !okToBuy {
		failValidation(c, "Buy Addon validation failed!")
		return
	}

	addonCost, err := s.contracts.Setting.GetBaseAddonCostByID(ctx, addonID)
	if err != nil {
		failRead(c, err)
		return
	}
	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.BuyAddon(ctx, user, tokenID, addonID, addonCost, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "buyAddon", err)
		return
	}
	s.submitted("buyAddon", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	house, err := s.contracts.House.GetHouse(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	details, err := s.contracts.Helper.GetHouseDetails(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	salvageData, err := s.contracts.House.GetAddonSalvageCost(ctx, tokenID, addonID)
	if err != nil {
		failRead(c, err)
		return
	}

	successJSON(c, gin.H{
		"reason":           "Addon bought successfully!",
		"resource":         bigStrings(resource),
		"hasAddon":         bigString(resAt(house, 21)),
		"expireGardenTime": bigString(resAt(house, 8)),
		"multiplier":       bigString(resAt(details, 2)),
		"salvageAddonData": bigStrings(salvageData),
	})
}

func (s *RestServer) handleSalvageAddon(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)
	addonID := big.NewInt(req.AddonID)

	if req.AddonID < 0 || req.AddonID >= 12 {
		failValidation(c, "Invalid addon id")
		return
	}

	canSalvage, err := s.contracts.Validator.CanSalvageAddon(ctx, tokenID, addonID, user)
	if !allowed(canSalvage, err, "canSalvageAddon") {
		failValidation(c, "Salvage Addon validation failed!")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	hasAddons, err := s.contracts.House.GetHasAddons(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	salvageCost, sellCost, err := s.contracts.Setting.GetSalvageCost(ctx, addonID, hasAddons)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.SalvageAddon(ctx, user, tokenID, addonID, salvageCost, sellCost, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "salvageAddon", err)
		return
	}
	s.submitted("salvageAddon", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	house, err := s.contracts.House.GetHouse(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	details, err := s.contracts.Helper.GetHouseDetails(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	successJSON(c, gin.H{
		"reason":     "Addon salvaged successfully!",
		"resource":   bigStrings(resource),
		"hasAddon":   bigString(resAt(house, 21)),
		"multiplier": bigString(resAt(details, 2)),
	})
}

func (s *RestServer) handleFertilizeGarden(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)

	canDo, err := s.contracts.Validator.CanFertilizeGarden(ctx, tokenID, user)
	if !allowed(canDo, err, "canFertilizeGarden") {
		failValidation(c, "Fertilize Garden validation failed!")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	cost, err := s.contracts.Setting.GetFertilizeGardenCost(ctx)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.FertilizeGarden(ctx, user, tokenID, cost, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "fertilizeGarden", err)
		return
	}
	s.submitted("fertilizeGarden", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	house, err := s.contracts.House.GetHouse(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	successJSON(c, gin.H{
		"reason":                   "Garden fertilized successfully!",
		"resource":                 bigStrings(resource),
		"lastFertilizedGardenTime": bigString(resAt(house, 9)),
	})
}

func (s *RestServer) handleBuyToolshed(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)
	toolshedType := big.NewInt(req.ToolshedType)

	canDo, err := s.contracts.Validator.CanBuyToolshed(ctx, tokenID, toolshedType, user)
	if !allowed(canDo, err, "canBuyToolshed") {
		failValidation(c, "Buy Toolshed validation failed!")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	cost, err := s.contracts.Setting.GetToolshedBuildCost(ctx, toolshedType)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.BuyToolshed(ctx, user, tokenID, toolshedType, cost, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "buyToolshed", err)
		return
	}
	s.submitted("buyToolshed", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{
		"resource": bigStrings(resource),
		"reason":   "Toolshed bought successfully!",
	})
}

func (s *RestServer) handleSwitchToolshed(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)
	toolshedType := big.NewInt(req.ToolshedType)

	canDo, prevType, err := s.contracts.Validator.CanSwitchToolshed(ctx, tokenID, toolshedType, user)
	if !allowed(canDo, err, "canSwitchToolshed") {
		failValidation(c, "Switch Toolshed validation failed!")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	cost, err := s.contracts.Setting.GetToolshedSwitchCost(ctx)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.SwitchToolshed(ctx, user, tokenID, toolshedType, prevType, cost, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "switchToolshed", err)
		return
	}
	s.submitted("switchToolshed", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{
		"resource": bigStrings(resource),
		"reason":   "Toolshed switched successfully!",
	})
}

func (s *RestServer) handleBuyFireplace(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)

	canDo, err := s.contracts.Validator.CanBuyFireplace(ctx, tokenID, user)
	if !allowed(canDo, err, "canBuyFireplace") {
		failValidation(c, "Buy Fireplace validation failed!")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	cost, err := s.contracts.Setting.GetFireplaceCost(ctx)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.BuyFireplace(ctx, user, tokenID, cost, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "buyFireplace", err)
		return
	}
	s.submitted("buyFireplace", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{
		"resource": bigStrings(resource),
		"reason":   "Fireplace bought successfully!",
	})
}

func (s *RestServer) handleBurnLumber(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)
	lumber := big.NewInt(req.Lumber)

	// Ресурсы читаются до валидации: валидатору нужны power и lastUpdate
	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	canDo, power, err := s.contracts.Validator.CanBurnLumber(ctx, tokenID, lumber, resAt(resource, 1), resAt(resource, 0), user)
	if !allowed(canDo, err, "canBurnLumber") {
		failValidation(c, "Burn Lumber validation failed!")
		return
	}

	receipt, err := s.contracts.Game.BurnLumberToMakePower(ctx, user, tokenID, lumber, power, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "burnLumberToMakePower", err)
		return
	}
	s.submitted("burnLumberToMakePower", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{
		"resource": bigStrings(resource),
		"reason":   "Burn lumber to generate power successfully!",
	})
}

func (s *RestServer) handleBuyHarvester(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)

	canDo, err := s.contracts.Validator.CanBuyHarvester(ctx, tokenID, user)
	if !allowed(canDo, err, "canBuyHarvester") {
		failValidation(c, "Buy Harvester validation failed!")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	cost, err := s.contracts.Setting.GetHarvesterCost(ctx)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.BuyHarvester(ctx, user, tokenID, cost, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "buyHarvester", err)
		return
	}
	s.submitted("buyHarvester", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{
		"resource": bigStrings(resource),
		"reason":   "Harvester bought successfully!",
	})
}

func (s *RestServer) handleBuyConcreteFoundation(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)

	canDo, err := s.contracts.Validator.CanBuyConcreteFoundation(ctx, tokenID, user)
	if !allowed(canDo, err, "canBuyConcreteFoundation") {
		failValidation(c, "Buy Concrete Foundation validation failed!")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	cost, err := s.contracts.Setting.GetDurabilityDiscountCost(ctx)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.BuyConcreteFoundation(ctx, user, tokenID, cost, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "buyConcreteFoundation", err)
		return
	}
	s.submitted("buyConcreteFoundation", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{
		"resource": bigStrings(resource),
		"reason":   "Concrete Foundation bought successfully!",
	})
}

func (s *RestServer) handleBuyTokenOverdrive(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)

	canDo, err := s.contracts.Validator.CanBuyTokenOverdrive(ctx, tokenID, user)
	if !allowed(canDo, err, "canBuyTokenOverdrive") {
		failValidation(c, "Buy tokenOverdrive validation failed!")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.BuyTokenOverdrive(ctx, user, tokenID, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "buyTokenOverdrive", err)
		return
	}
	s.submitted("buyTokenOverdrive", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	house, err := s.contracts.House.GetHouse(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	successJSON(c, gin.H{
		"reason":   "TokenOverdrive bought successfully!",
		"resource": bigStrings(resource),
		"hasBoost": bigString(resAt(house, 25)),
	})
}

func (s *RestServer) handleBuyResourceOverdrive(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)
	facilityType := big.NewInt(req.FacilityType)

	canDo, err := s.contracts.Validator.CanBuyResourceOverdrive(ctx, tokenID, facilityType, user)
	if !allowed(canDo, err, "canBuyResourceOverdrive") {
		failValidation(c, "Buy ResourceOverdrive validation failed!")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.BuyResourceOverdrive(ctx, user, tokenID, facilityType, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "buyResourceOverdrive", err)
		return
	}
	s.submitted("buyResourceOverdrive", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	house, err := s.contracts.House.GetHouse(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	successJSON(c, gin.H{
		"reason":   "ResourceOverdrive bought successfully!",
		"resource": bigStrings(resource),
		"hasBoost": bigString(resAt(house, 25)),
	})
}

func (s *RestServer) handleFrontLoadFirepit(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)
	lumber := big.NewInt(req.Lumber)

	canDo, err := s.contracts.Validator.CanFrontloadFirepit(ctx, tokenID, lumber, user)
	if !allowed(canDo, err, "canFrontloadFirepit") {
		failValidation(c, "Frontload Firepit validation failed!")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.FrontLoadFirepit(ctx, user, tokenID, lumber, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "frontLoadFirepit", err)
		return
	}
	s.submitted("frontLoadFirepit", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	firepitDays, err := s.contracts.House.GetFirepitRemainDays(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	successJSON(c, gin.H{
		"reason":      "Firepit frontlaod successfully!",
		"resource":    bigStrings(resource),
		"firepitDays": bigString(firepitDays),
	})
}

func (s *RestServer) handleGatherLumber(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)
	lumber := big.NewInt(req.Lumber)

	gatherTime, err := s.contracts.Game.GetLastGatherLumberTime(ctx, user)
	if err != nil {
		failRead(c, err)
		return
	}

	canDo, err := s.contracts.Validator.CanGatherLumberWithPower(ctx, tokenID, lumber, gatherTime, user)
	if !allowed(canDo, err, "canGatherLumberWithPower") {
		failValidation(c, "Gather lumber with power validation failed!")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.GatherLumberWithPower(ctx, user, tokenID, lumber, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "gatherLumberWithPower", err)
		return
	}
	s.submitted("gatherLumberWithPower", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{
		"reason":   "Gathered Lumber with power successfully!",
		"resource": bigStrings(resource),
	})
}

func (s *RestServer) handleUpgradeFacility(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)
	facilityType := big.NewInt(req.FacilityType)

	canDo, err := s.contracts.Validator.CanUpgradeFacility(ctx, tokenID, facilityType, user)
	if !allowed(canDo, err, "canUpgradeFacility") {
		failValidation(c, "Upgrade facility validation failed!")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	level, err := s.contracts.House.GetFacilityLevel(ctx, tokenID, facilityType)
	if err != nil {
		failRead(c, err)
		return
	}
	// Стоимость берется для следующего уровня
	nextLevel := new(big.Int).Add(level, big.NewInt(1))
	cost, err := s.contracts.Setting.GetFacilityUpgradeCost(ctx, facilityType, nextLevel)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.UpgradeFacility(ctx, user, tokenID, facilityType, cost, level, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "upgradeFacility", err)
		return
	}
	s.submitted("upgradeFacility", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{
		"reason":   "Facility upgraded successfully!",
		"resource": bigStrings(resource),
	})
}

func (s *RestServer) handleFortify(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)
	fortifyType := big.NewInt(req.Type)

	status, err := s.contracts.House.GetOwnerAndStatus(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	if !status.OwnedBy(username) {
		failValidation(c, "Fortify permission denied")
		return
	}
	if !status.Activated {
		failValidation(c, "Activation required")
		return
	}
	if status.IsDead() {
		failValidation(c, "House is Dead")
		return
	}
	if req.Type < 0 || req.Type >= 3 {
		failValidation(c, "Invalid fortification type")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	cost, err := s.contracts.Setting.GetFortifyCost(ctx, fortifyType)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.Fortify(ctx, user, tokenID, fortifyType, cost, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "fortify", err)
		return
	}
	s.submitted("fortify", username, tokenID, receipt)

	// Новое значение ресурсов берется из события транзакции, без перечитывания
	updated, err := s.contracts.Game.UpdatedResource(receipt)
	if err != nil {
		failRead(c, err)
		return
	}

	successJSON(c, gin.H{
		"reason":      "Fortified successfully!",
		"resource":    bigString(updated),
		"blockNumber": receipt.BlockNumber.Uint64(),
	})
}

func (s *RestServer) handleRepair(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)
	percent := big.NewInt(req.Percent)

	status, err := s.contracts.House.GetOwnerAndStatus(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	if !status.OwnedBy(username) {
		failValidation(c, "Repair permission denied")
		return
	}
	if !status.Activated {
		failValidation(c, "Activation required")
		return
	}
	if status.IsDead() {
		failValidation(c, "House is Dead")
		return
	}
	if req.Percent <= 0 {
		failValidation(c, "Percent should above 0")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	repair, err := s.contracts.Helper.GetRepairData(ctx, tokenID, percent)
	if err != nil {
		failRead(c, err)
		return
	}

	cur := repair.CurDurability.Int64()
	max := repair.MaxDurability.Int64()
	minRepair := 10 * s.precision

	if cur+req.Percent > max {
		failValidation(c, "Overflow maximum durability")
		return
	}
	if max-cur >= minRepair {
		if req.Percent < minRepair {
			failValidation(c, "Should repair at least 10%")
			return
		}
	} else if cur+req.Percent != max {
		failValidation(c, "Should repair to max durability")
		return
	}

	receipt, err := s.contracts.Game.Repair(ctx, user, tokenID, percent, repair.CurDurability, repair.RepairCost, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "repair", err)
		return
	}
	s.submitted("repair", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{
		"reason":   "Repaired successfully!",
		"resource": bigStrings(resource),
	})
}

func (s *RestServer) handleHarvest(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)
	harvestingReward := big.NewInt(req.HarvestingReward)

	canDo, tokenReward, firepitBonus, err := s.contracts.Validator.CanHarvest(ctx, tokenID, harvestingReward, user)
	if !allowed(canDo, err, "canHarvest") {
		failValidation(c, "Harvest validation failed!")
		return
	}

	resource, err := s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	powerCost, err := s.contracts.Helper.GetHarvestCost(ctx, tokenID, harvestingReward)
	if err != nil {
		failRead(c, err)
		return
	}
	resourceReward, err := s.contracts.House.GetResourceReward(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	receipt, err := s.contracts.Game.Harvest(ctx, user, tokenID, harvestingReward, resourceReward, tokenReward, firepitBonus, powerCost, resAt(resource, 0))
	if err != nil {
		s.submitFailed(c, "harvest", err)
		return
	}
	s.submitted("harvest", username, tokenID, receipt)

	resource, err = s.contracts.Game.GetResource(ctx, user, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	successJSON(c, gin.H{
		"reason":   "Harvested successfully!",
		"resource": bigStrings(resource),
	})
}

func (s *RestServer) handleOnSale(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)

	status, err := s.contracts.House.GetOwnerAndStatus(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	if !status.OwnedBy(username) {
		failValidation(c, "OnSale permission denied")
		return
	}
	if !status.Activated {
		failValidation(c, "Activation required")
		return
	}
	if status.IsDead() {
		failValidation(c, "House is Dead")
		return
	}

	deposited, err := s.contracts.House.GetDepositedBalance(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	tokenReward, err := s.contracts.House.GetTokenReward(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}

	if deposited.Sign() != 0 {
		failValidation(c, "Shoud unstake all")
		return
	}
	if tokenReward.Sign() != 0 {
		failValidation(c, "Shoud harvest all tokens")
		return
	}

	receipt, err := s.contracts.Game.OnSale(ctx, user, tokenID, big.NewInt(req.Price))
	if err != nil {
		s.submitFailed(c, "onSale", err)
		return
	}
	s.submitted("onSale", username, tokenID, receipt)

	successJSON(c, gin.H{"reason": "OnSale successfully!"})
}

func (s *RestServer) handleOffSale(c *gin.Context) {
	req, ok := bindAction(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	username := currentUser(c)
	user := common.HexToAddress(username)
	tokenID := big.NewInt(req.TokenID)

	status, err := s.contracts.House.GetOwnerAndStatus(ctx, tokenID)
	if err != nil {
		failRead(c, err)
		return
	}
	if !status.OwnedBy(username) {
		failValidation(c, "OffSale permission denied")
		return
	}

	receipt, err := s.contracts.Game.OffSale(ctx, user, tokenID)
	if err != nil {
		s.submitFailed(c, "offSale", err)
		return
	}
	s.submitted("offSale", username, tokenID, receipt)

	successJSON(c, gin.H{"reason": "OffSale successfully!"})
}
