package contracts

// ABI пяти контрактов игры. Шлюз зависит только от перечисленных методов;
// полные артефакты живут в репозитории контрактов.

const GameABI = `[
{"type":"function","name":"getResource","stateMutability":"view","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"uint256[]"}]},
{"type":"function","name":"getLastGatherLumberTime","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"activateHouse","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"buyAddon","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"addonId","type":"uint256"},{"name":"addonCost","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"salvageAddon","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"addonId","type":"uint256"},{"name":"salvageCost","type":"uint256"},{"name":"sellCost","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"fertilizeGarden","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"cost","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"buyToolshed","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"toolshedType","type":"uint256"},{"name":"cost","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"switchToolshed","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"toolshedType","type":"uint256"},{"name":"prevType","type":"uint256"},{"name":"cost","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"buyFireplace","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"cost","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"burnLumberToMakePower","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"lumber","type":"uint256"},{"name":"power","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"buyHarvester","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"cost","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"buyConcreteFoundation","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"cost","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"buyTokenOverdrive","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"buyResourceOverdrive","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"facilityType","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"frontLoadFirepit","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"lumber","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"gatherLumberWithPower","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"lumber","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"upgradeFacility","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"facilityType","type":"uint256"},{"name":"cost","type":"uint256"},{"name":"level","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"fortify","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"fortifyType","type":"uint256"},{"name":"cost","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"repair","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"percent","type":"uint256"},{"name":"curDurability","type":"uint256"},{"name":"repairCost","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"harvest","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"harvestingReward","type":"uint256"},{"name":"resourceReward","type":"uint256"},{"name":"tokenReward","type":"uint256"},{"name":"firepitBonus","type":"uint256"},{"name":"powerCost","type":"uint256"},{"name":"lastUpdate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"onSale","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"price","type":"uint256"}],"outputs":[]},
{"type":"function","name":"offSale","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]},
{"type":"event","name":"UpdateResource","anonymous":false,"inputs":[{"name":"user","type":"address","indexed":true},{"name":"updatedResource","type":"uint256","indexed":false}]}
]`

const HouseABI = `[
{"type":"function","name":"getOwnerAndStatus","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"owner","type":"address"},{"name":"activated","type":"bool"},{"name":"deadStatus","type":"uint256"}]},
{"type":"function","name":"getHouse","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"uint256[]"}]},
{"type":"function","name":"getFacilityLevel","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"facilityType","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getHasAddons","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"bool[12]"}]},
{"type":"function","name":"getAddonSalvageCost","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"addonId","type":"uint256"}],"outputs":[{"name":"","type":"uint256[]"}]},
{"type":"function","name":"calculateMaxPowerLimitByUser","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getFirepitRemainDays","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getResourceReward","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getDepositedBalance","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getTokenReward","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const ValidatorABI = `[
{"type":"function","name":"canBuyAddon","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"addonId","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"canSalvageAddon","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"addonId","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"canFertilizeGarden","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"canBuyToolshed","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"toolshedType","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"canSwitchToolshed","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"toolshedType","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"ok","type":"bool"},{"name":"prevType","type":"uint256"}]},
{"type":"function","name":"canBuyFireplace","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"canBurnLumber","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"lumber","type":"uint256"},{"name":"power","type":"uint256"},{"name":"lastUpdate","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"ok","type":"bool"},{"name":"power","type":"uint256"}]},
{"type":"function","name":"canBuyHarvester","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"canBuyConcreteFoundation","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"canBuyTokenOverdrive","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"canBuyResourceOverdrive","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"facilityType","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"canFrontloadFirepit","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"lumber","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"canGatherLumberWithPower","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"lumber","type":"uint256"},{"name":"lastGatherTime","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"canUpgradeFacility","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"facilityType","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"canHarvest","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"harvestingReward","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"ok","type":"bool"},{"name":"tokenReward","type":"uint256"},{"name":"firepitBonus","type":"uint256"}]}
]`

const SettingABI = `[
{"type":"function","name":"getBaseAddonCostById","stateMutability":"view","inputs":[{"name":"addonId","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getSalvageCost","stateMutability":"view","inputs":[{"name":"addonId","type":"uint256"},{"name":"hasAddons","type":"bool[12]"}],"outputs":[{"name":"salvageCost","type":"uint256"},{"name":"sellCost","type":"uint256"}]},
{"type":"function","name":"getFertilizeGardenCost","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getToolshedBuildCost","stateMutability":"view","inputs":[{"name":"toolshedType","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getToolshedSwitchCost","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getFireplaceCost","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getHarvesterCost","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getDurabilityDiscountCost","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getFacilityUpgradeCost","stateMutability":"view","inputs":[{"name":"facilityType","type":"uint256"},{"name":"level","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getFortifyCost","stateMutability":"view","inputs":[{"name":"fortifyType","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const HelperABI = `[
{"type":"function","name":"getHouseDetails","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"uint256[]"}]},
{"type":"function","name":"getRepairData","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"percent","type":"uint256"}],"outputs":[{"name":"maxDurability","type":"uint256"},{"name":"curDurability","type":"uint256"},{"name":"repairCost","type":"uint256"}]},
{"type":"function","name":"getHarvestCost","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"harvestingReward","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]}
]`
