package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOwner() common.Address {
	return common.HexToAddress(testUsername)
}

// Владелец с другим адресом для проверок отказа в доступе
func strangerOwner() common.Address {
	return common.HexToAddress("0x3000000000000000000000000000000000000009")
}

// ---- Чтения ----

func TestGetResource(t *testing.T) {
	node := newFakeNode(t)
	node.stub("getResource", bigs(1000, 50, 60))
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "GET", "/api/getResource?tokenId=5", authToken(t, testUsername), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, []interface{}{"1000", "50", "60"}, body["reason"])
}

func TestGetResource_InvalidTokenID(t *testing.T) {
	server, _ := newTestServer(t, newFakeNode(t))

	for _, q := range []string{"", "?tokenId=abc", "?tokenId=-1"} {
		w := doJSON(t, server, "GET", "/api/getResource"+q, authToken(t, testUsername), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Failed", body["status"])
		assert.Equal(t, "Invalid token id", body["reason"])
	}
}

func TestGetHouse(t *testing.T) {
	node := newFakeNode(t)
	node.stub("getHouse", bigs(1, 2, 3))
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "GET", "/api/getHouse?tokenId=5", authToken(t, testUsername), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, []interface{}{"1", "2", "3"}, body["reason"])
}

func TestGetHouseDetails_ReadError(t *testing.T) {
	node := newFakeNode(t)
	node.stubErr("getHouseDetails", errors.New("node down"))
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "GET", "/api/getHouseDetails?tokenId=5", authToken(t, testUsername), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
}

// ---- activateHouse ----

func TestActivateHouse_PermissionDenied(t *testing.T) {
	node := newFakeNode(t)
	ownerStatus(node, strangerOwner(), false, 0)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/activateHouse", authToken(t, testUsername),
		map[string]int64{"tokenId": 1})

	body := decodeBody(t, w)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Failed", body["status"])
	assert.Equal(t, "Activate permission denied", body["reason"])
	assert.Empty(t, node.submittedMethods())
}

func TestActivateHouse_AlreadyActivated(t *testing.T) {
	node := newFakeNode(t)
	ownerStatus(node, testOwner(), true, 0)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/activateHouse", authToken(t, testUsername),
		map[string]int64{"tokenId": 1})

	body := decodeBody(t, w)
	assert.Equal(t, "Already activated", body["reason"])
	assert.Empty(t, node.submittedMethods())
}

func TestActivateHouse_DeadHouse(t *testing.T) {
	node := newFakeNode(t)
	ownerStatus(node, testOwner(), false, 2)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/activateHouse", authToken(t, testUsername),
		map[string]int64{"tokenId": 1})

	body := decodeBody(t, w)
	assert.Equal(t, "House is Dead", body["reason"])
	assert.Empty(t, node.submittedMethods())
}

func TestActivateHouse_Success(t *testing.T) {
	node := newFakeNode(t)
	ownerStatus(node, testOwner(), false, 0)
	node.stub("getResource", bigs(1700000000, 50, 60))
	node.stub("calculateMaxPowerLimitByUser", bigs(500)[0])
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/activateHouse", authToken(t, testUsername),
		map[string]int64{"tokenId": 1})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "House activated!", body["reason"])
	assert.Equal(t, "500", body["maxPowerLimit"])
	assert.Equal(t, []string{"activateHouse"}, node.submittedMethods())
}

// ---- buyAddon ----

func TestBuyAddon_InvalidAddonID(t *testing.T) {
	server, _ := newTestServer(t, newFakeNode(t))

	// Граница диапазона: 12 уже недопустим, отрицательные тоже
	for _, addonID := range []int64{12, 100, -1} {
		node := newFakeNode(t)
		server, _ = newTestServer(t, node)

		w := doJSON(t, server, "POST", "/api/buyAddon", authToken(t, testUsername),
			map[string]int64{"tokenId": 1, "addonId": addonID})

		body := decodeBody(t, w)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid addon id", body["reason"])
		assert.Empty(t, node.submittedMethods())
	}
}

func TestBuyAddon_ValidationFailed(t *testing.T) {
	node := newFakeNode(t)
	node.stub("canBuyAddon", false)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/buyAddon", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "addonId": 3})

	body := decodeBody(t, w)
	assert.Equal(t, "Failed", body["status"])
	assert.Equal(t, "Buy Addon validation failed!", body["reason"])
}

// Ошибка валидатора на buyAddon отдается клиенту, а не глотается
func TestBuyAddon_ValidatorErrorSurfaces(t *testing.T) {
	node := newFakeNode(t)
	node.stubErr("canBuyAddon", errors.New("execution reverted"))
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/buyAddon", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "addonId": 3})

	body := decodeBody(t, w)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", body["status"])
	assert.Empty(t, node.submittedMethods())
}

func TestBuyAddon_Success(t *testing.T) {
	node := newFakeNode(t)
	node.stub("canBuyAddon", true)
	node.stub("getBaseAddonCostById", bigs(250)[0])
	node.stub("getResource", bigs(1000, 50, 60))
	house := bigs(0, 1, 2, 3, 4, 5, 6, 7, 800, 900, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25)
	node.stub("getHouse", house)
	node.stub("getHouseDetails", bigs(10, 20, 30))
	node.stub("getAddonSalvageCost", bigs(40, 50))
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/buyAddon", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "addonId": 3})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Addon bought successfully!", body["reason"])
	assert.Equal(t, "21", body["hasAddon"])
	assert.Equal(t, "800", body["expireGardenTime"])
	assert.Equal(t, "30", body["multiplier"])
	assert.Equal(t, []interface{}{"40", "50"}, body["salvageAddonData"])
	assert.Equal(t, []string{"buyAddon"}, node.submittedMethods())
}

// ---- валидаторы с проглатыванием ошибок ----

func TestFertilizeGarden_ValidatorErrorSwallowed(t *testing.T) {
	node := newFakeNode(t)
	node.stubErr("canFertilizeGarden", errors.New("execution reverted"))
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/fertilizeGarden", authToken(t, testUsername),
		map[string]int64{"tokenId": 1})

	// Сбой валидатора трактуется как отказ, не как ошибка запроса
	body := decodeBody(t, w)
	assert.Equal(t, "Failed", body["status"])
	assert.Equal(t, "Fertilize Garden validation failed!", body["reason"])
	assert.Empty(t, node.submittedMethods())
}

func TestGatherLumber_ValidationFailed(t *testing.T) {
	node := newFakeNode(t)
	node.stub("getLastGatherLumberTime", bigs(1700000000)[0])
	node.stub("canGatherLumberWithPower", false)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/gatherLumberWithPower", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "lumber": 10})

	body := decodeBody(t, w)
	assert.Equal(t, "Gather lumber with power validation failed!", body["reason"])
	assert.Empty(t, node.submittedMethods())
}

func TestBurnLumber_Success(t *testing.T) {
	node := newFakeNode(t)
	node.stub("getResource", bigs(1700000000, 80, 90))
	node.stub("canBurnLumber", true, bigs(40)[0])
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/burnLumberToMakePower", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "lumber": 10})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Burn lumber to generate power successfully!", body["reason"])
	assert.Equal(t, []string{"burnLumberToMakePower"}, node.submittedMethods())
}

// ---- fortify ----

func TestFortify_InvalidType(t *testing.T) {
	node := newFakeNode(t)
	ownerStatus(node, testOwner(), true, 0)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/fortify", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "type": 3})

	body := decodeBody(t, w)
	assert.Equal(t, "Invalid fortification type", body["reason"])
	assert.Empty(t, node.submittedMethods())
}

func TestFortify_ActivationRequired(t *testing.T) {
	node := newFakeNode(t)
	ownerStatus(node, testOwner(), false, 0)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/fortify", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "type": 1})

	body := decodeBody(t, w)
	assert.Equal(t, "Activation required", body["reason"])
}

func TestFortify_Success(t *testing.T) {
	node := newFakeNode(t)
	ownerStatus(node, testOwner(), true, 0)
	node.stub("getResource", bigs(1700000000, 50, 60))
	node.stub("getFortifyCost", bigs(300)[0])
	// Новое значение ресурсов приходит событием в квитанции
	node.updateResourceLog(t, testOwner(), 4242)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/fortify", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "type": 1})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Fortified successfully!", body["reason"])
	assert.Equal(t, "4242", body["resource"])
	assert.Equal(t, float64(777), body["blockNumber"])
	assert.Equal(t, []string{"fortify"}, node.submittedMethods())
}

// ---- repair ----

func repairNode(t *testing.T, max, cur int64) *fakeNode {
	node := newFakeNode(t)
	ownerStatus(node, testOwner(), true, 0)
	node.stub("getResource", bigs(1700000000, 50, 60))
	node.stub("getRepairData", bigs(max)[0], bigs(cur)[0], bigs(10)[0])
	return node
}

func TestRepair_PercentNotPositive(t *testing.T) {
	node := repairNode(t, 10000, 8000)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/repair", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "percent": 0})

	body := decodeBody(t, w)
	assert.Equal(t, "Percent should above 0", body["reason"])
	assert.Empty(t, node.submittedMethods())
}

func TestRepair_OverflowMaxDurability(t *testing.T) {
	// 9500 + 600 > 10000
	node := repairNode(t, 10000, 9500)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/repair", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "percent": 600})

	body := decodeBody(t, w)
	assert.Equal(t, "Overflow maximum durability", body["reason"])
	assert.Empty(t, node.submittedMethods())
}

func TestRepair_AtLeastTenPercent(t *testing.T) {
	// Дефицит 2000 >= 10 * precision(100), ремонт меньше порога запрещен
	node := repairNode(t, 10000, 8000)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/repair", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "percent": 500})

	body := decodeBody(t, w)
	assert.Equal(t, "Should repair at least 10%", body["reason"])
	assert.Empty(t, node.submittedMethods())
}

func TestRepair_MustReachMax(t *testing.T) {
	// Дефицит 500 < порога: чинить можно только ровно до максимума
	node := repairNode(t, 10000, 9500)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/repair", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "percent": 300})

	body := decodeBody(t, w)
	assert.Equal(t, "Should repair to max durability", body["reason"])
	assert.Empty(t, node.submittedMethods())
}

func TestRepair_Success(t *testing.T) {
	node := repairNode(t, 10000, 8000)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/repair", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "percent": 2000})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Repaired successfully!", body["reason"])
	assert.Equal(t, []string{"repair"}, node.submittedMethods())
}

// ---- harvest ----

func TestHarvest_Success(t *testing.T) {
	node := newFakeNode(t)
	node.stub("canHarvest", true, bigs(15)[0], bigs(5)[0])
	node.stub("getResource", bigs(1700000000, 50, 60))
	node.stub("getHarvestCost", bigs(7)[0])
	node.stub("getResourceReward", bigs(12)[0])
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/harvest", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "harvestingReward": 100})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Harvested successfully!", body["reason"])
	assert.Equal(t, []string{"harvest"}, node.submittedMethods())
}

// ---- onSale / offSale ----

func onSaleNode(t *testing.T, deposited, tokenReward int64) *fakeNode {
	node := newFakeNode(t)
	ownerStatus(node, testOwner(), true, 0)
	node.stub("getDepositedBalance", bigs(deposited)[0])
	node.stub("getTokenReward", bigs(tokenReward)[0])
	return node
}

func TestOnSale_ShouldUnstakeAll(t *testing.T) {
	node := onSaleNode(t, 100, 0)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/onSale", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "price": 1000})

	body := decodeBody(t, w)
	assert.Equal(t, "Shoud unstake all", body["reason"])
	assert.Empty(t, node.submittedMethods())
}

func TestOnSale_ShouldHarvestAllTokens(t *testing.T) {
	node := onSaleNode(t, 0, 42)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/onSale", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "price": 1000})

	body := decodeBody(t, w)
	assert.Equal(t, "Shoud harvest all tokens", body["reason"])
	assert.Empty(t, node.submittedMethods())
}

func TestOnSale_Success(t *testing.T) {
	node := onSaleNode(t, 0, 0)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/onSale", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "price": 1000})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "OnSale successfully!", body["reason"])
	assert.Equal(t, []string{"onSale"}, node.submittedMethods())
}

func TestOffSale_PermissionDenied(t *testing.T) {
	node := newFakeNode(t)
	ownerStatus(node, strangerOwner(), true, 0)
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/offSale", authToken(t, testUsername),
		map[string]int64{"tokenId": 1})

	body := decodeBody(t, w)
	assert.Equal(t, "OffSale permission denied", body["reason"])
	assert.Empty(t, node.submittedMethods())
}

func TestOffSale_RevertedTransaction(t *testing.T) {
	node := newFakeNode(t)
	ownerStatus(node, testOwner(), true, 0)
	node.revert = true
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/offSale", authToken(t, testUsername),
		map[string]int64{"tokenId": 1})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
}

func TestUpgradeFacility_Success(t *testing.T) {
	node := newFakeNode(t)
	node.stub("canUpgradeFacility", true)
	node.stub("getResource", bigs(1700000000, 50, 60))
	node.stub("getFacilityLevel", bigs(2)[0])
	node.stub("getFacilityUpgradeCost", bigs(900)[0])
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/upgradeFacility", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "facilityType": 2})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Facility upgraded successfully!", body["reason"])
	assert.Equal(t, []string{"upgradeFacility"}, node.submittedMethods())
}

func TestSalvageAddon_Success(t *testing.T) {
	node := newFakeNode(t)
	node.stub("canSalvageAddon", true)
	node.stub("getResource", bigs(1700000000, 50, 60))
	node.stub("getHasAddons", [12]bool{true, false, true})
	node.stub("getSalvageCost", bigs(30)[0], bigs(70)[0])
	house := bigs(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25)
	node.stub("getHouse", house)
	node.stub("getHouseDetails", bigs(10, 20, 33))
	server, _ := newTestServer(t, node)

	w := doJSON(t, server, "POST", "/api/salvageAddon", authToken(t, testUsername),
		map[string]int64{"tokenId": 1, "addonId": 2})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Addon salvaged successfully!", body["reason"])
	assert.Equal(t, "33", body["multiplier"])
	assert.Equal(t, []string{"salvageAddon"}, node.submittedMethods())
}
