package calculator

import (
	"proforma/internal/model"
	"proforma/internal/service/store"
)

const (
	// co2PerCarbon CO2 与碳的摩尔质量比
	co2PerCarbon = 44.0 / 12.0
	// pulpPerWetChip 纸浆干料 = 湿木片 × 0.71 × 0.1
	pulpPerWetChip = 0.071
	// slurryTonsFactor 浆料配料折算系数（每千吨干料 6720）
	slurryTonsFactor = 6720.0 / 1000.0
	// projectCostRatio 项目汇总模型的固定成本占比
	projectCostRatio = 0.75
)

// Engine 派生计算引擎
type Engine struct {
	store *store.MemoryStore
}

// NewEngine 创建计算引擎
func NewEngine(store *store.MemoryStore) *Engine {
	return &Engine{store: store}
}

// Calculate 基于当前参数快照全量重算
func (e *Engine) Calculate() (model.ParameterSet, model.OutputSet) {
	snapshot := e.store.Snapshot()
	return snapshot, Derive(snapshot)
}

// Derive 由参数快照计算全部派生值。纯函数，每次全量计算
func Derive(in model.ParameterSet) model.OutputSet {
	calc := make(map[string]float64, 48)
	v := func(key string) float64 {
		return valueOr(in, key, 0)
	}

	// 时间基数
	hours := v(model.ParamDailyHours) * v(model.ParamTotalDays)
	calc[model.OutTotalHours] = hours
	calc[model.OutTotalHoursAllYears] = hours * model.ModelYears

	// 木片/纸浆注入速率（吨/小时）
	wetRate := v(model.ParamWoodChipRateWet)
	dryRate := wetRate / (1 + v(model.ParamMoistureContent))
	pulpRate := wetRate * pulpPerWetChip
	calc[model.OutWetRate] = wetRate
	calc[model.OutDryRate] = dryRate
	calc[model.OutPulpRate] = pulpRate

	// 年化
	wetAnnual := wetRate * hours
	dryAnnual := dryRate * hours
	calc[model.OutWetAnnual] = wetAnnual
	calc[model.OutDryAnnual] = dryAnnual
	calc[model.OutPulpAnnual] = pulpRate * hours

	// CO2e 与 CORC
	co2ePerHour := dryRate*v(model.ParamOrgCarbonWood)*co2PerCarbon +
		pulpRate*v(model.ParamOrgCarbonPulp)*co2PerCarbon
	corcRate := co2ePerHour * (1 - v(model.ParamVerifierDiscount))
	totalCORCsAnnual := corcRate * hours
	calc[model.OutCO2ePerHour] = co2ePerHour
	calc[model.OutCO2eAnnual] = co2ePerHour * hours
	calc[model.OutAnnualCO2e] = hours * co2ePerHour
	calc[model.OutCORCRate] = corcRate
	calc[model.OutTotalCORCsAnnual] = totalCORCsAnnual

	// 收入：单年值 × 5 年
	carbonCreditSalesDerived := totalCORCsAnnual * v(model.ParamAverageSalePrice)
	tipFee := v(model.ParamTipFee) * wetAnnual
	totalRevenue := model.ModelYears * (carbonCreditSalesDerived + tipFee)
	calc[model.OutCarbonCreditSales] = carbonCreditSalesDerived
	calc[model.OutTipFee] = tipFee
	calc[model.OutTotalRevenue] = totalRevenue

	// 按比例收取的服务费
	licenseFee := carbonCreditSalesDerived * v(model.ParamLicenseFee)
	carbonDirect := carbonCreditSalesDerived * v(model.ParamCarbonDirect)
	patchExchange := carbonCreditSalesDerived * v(model.ParamPatchExchange)
	puroServiceFee := totalCORCsAnnual * v(model.ParamPuroServiceFeeRate) * (1 + v(model.ParamTSBPremiumFee))
	calc[model.OutLicenseFeeAmount] = licenseFee
	calc[model.OutCarbonDirectAmount] = carbonDirect
	calc[model.OutPatchAmount] = patchExchange
	calc[model.OutPuroServiceFeeAmount] = puroServiceFee

	// 按用量计费
	slurry := v(model.ParamSlurryIngredients) * dryAnnual * slurryTonsFactor
	fuel := v(model.ParamFuelEnergy) * hours
	labor := v(model.ParamLaborContract) * hours
	calc[model.OutSlurryAmount] = slurry
	calc[model.OutFuelAmount] = fuel
	calc[model.OutLaborAmount] = labor

	// 变动成本：一次性费用只计入第一年
	oneTime := v(model.ParamEngineering) +
		v(model.ParamPermitting) +
		v(model.ParamLegal) +
		v(model.ParamSiteWork) +
		v(model.ParamSetupCost)
	recurring := v(model.ParamLandLease) +
		v(model.ParamWellDrilling) +
		v(model.ParamEquipmentLease)/model.ModelYears +
		v(model.ParamWaterTankRental) +
		v(model.ParamMattsHoses) +
		v(model.ParamWoodBiomass) +
		slurry +
		fuel +
		v(model.ParamEquipmentMaintenance) +
		v(model.ParamEquipmentTransport) +
		licenseFee +
		carbonDirect +
		patchExchange +
		v(model.ParamPuroAnnualFee) +
		puroServiceFee

	totalVariableCosts := 0.0
	commission := 0.0
	for year := 1; year <= model.ModelYears; year++ {
		isFirstYear := year == 1
		yearCost := recurring
		if isFirstYear {
			yearCost += oneTime
		}
		totalVariableCosts += yearCost
		commission += carbonCreditSalesDerived * v(model.CommissionKey(year))
	}
	calc[model.OutTotalVariableCosts] = totalVariableCosts
	calc[model.OutCommissionTotal] = commission

	// 毛利：使用输入项 Carbon Credit Sales（非上面的派生销售额）
	carbonCreditSalesInput := v(model.ParamCarbonCreditSales)
	grossMargin := 0.0
	for year := 1; year <= model.ModelYears; year++ {
		grossMargin += carbonCreditSalesInput * (corcRate * hours)
	}
	grossMargin -= totalVariableCosts
	calc[model.OutGrossMargin] = grossMargin
	calc[model.OutGMPercent] = safeDiv(grossMargin, totalRevenue)

	// 管理费用（× 5 年）
	insurance := sumOf(in, model.InsuranceKeys)
	generalConditions := sumOf(in, model.GeneralConditionKeys)
	developerFee := carbonCreditSalesDerived * v(model.ParamDeveloperFee)
	totalOverhead := model.ModelYears * (developerFee +
		v(model.ParamAccountingTax) +
		labor +
		v(model.ParamLegalMisc) +
		insurance +
		generalConditions)
	calc[model.OutInsuranceTotal] = insurance
	calc[model.OutGeneralConditionsTotal] = generalConditions
	calc[model.OutDeveloperFeeAmount] = developerFee
	calc[model.OutTotalOverhead] = totalOverhead

	// 净利润及土地方分成
	netBeforeSplit := grossMargin - totalOverhead
	landOwnerSplit := netBeforeSplit * v(model.ParamLandOwnerSplit)
	calc[model.OutNetProfitBeforeSplit] = netBeforeSplit
	calc[model.OutLandOwnerSplitAmount] = landOwnerSplit
	calc[model.OutProfitShareDistribution] = landOwnerSplit
	calc[model.OutNetProfitToSPE] = netBeforeSplit - landOwnerSplit

	// 项目汇总（与上面的损益链互不相关）
	totalCORCs := v(model.ParamAcres) * v(model.ParamElevation) * v(model.ParamCORCsPerAcft)
	totalSalePrice := v(model.ParamCORCSalePrice) * totalCORCs
	totalCost := totalSalePrice * projectCostRatio
	netProfit := totalSalePrice - totalCost
	calc[model.OutTotalCORCs] = totalCORCs
	calc[model.OutTotalCORCSalePrice] = totalSalePrice
	calc[model.OutTotalCost] = totalCost
	calc[model.OutNetProfit] = netProfit
	calc[model.OutProfitMargin] = safeDiv(netProfit, totalCost)

	return model.OutputSet{SourceVersion: in.Version, Values: calc}
}

// valueOr 读取数值参数，缺失时返回 fallback。布尔参数按 1/0 读取，不视为缺失
func valueOr(in model.ParameterSet, key string, fallback float64) float64 {
	val, ok := in.Get(key)
	if !ok {
		return fallback
	}
	return val.Float()
}

func sumOf(in model.ParameterSet, keys []string) float64 {
	total := 0.0
	for _, k := range keys {
		total += valueOr(in, k, 0)
	}
	return total
}

// safeDiv 除数为 0 时返回 0
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
