package calculator

import (
	"sort"

	"proforma/internal/model"
)

// Ref 公式依赖节点：输入参数或派生指标。二者可能同名，需分开标识
type Ref struct {
	Input bool   `json:"input"`
	Key   string `json:"key"`
}

func inputs(keys ...string) []Ref {
	refs := make([]Ref, 0, len(keys))
	for _, k := range keys {
		refs = append(refs, Ref{Input: true, Key: k})
	}
	return refs
}

func outputs(keys ...string) []Ref {
	refs := make([]Ref, 0, len(keys))
	for _, k := range keys {
		refs = append(refs, Ref{Key: k})
	}
	return refs
}

func join(groups ...[]Ref) []Ref {
	var refs []Ref
	for _, g := range groups {
		refs = append(refs, g...)
	}
	return refs
}

func commissionKeys() []string {
	keys := make([]string, 0, model.ModelYears)
	for year := 1; year <= model.ModelYears; year++ {
		keys = append(keys, model.CommissionKey(year))
	}
	return keys
}

// formulaDeps 派生指标 -> 直接依赖。仅作元数据，不参与计算
var formulaDeps = map[string][]Ref{
	model.OutTotalHours:         inputs(model.ParamDailyHours, model.ParamTotalDays),
	model.OutTotalHoursAllYears: outputs(model.OutTotalHours),
	model.OutWetRate:            inputs(model.ParamWoodChipRateWet),
	model.OutDryRate:            inputs(model.ParamWoodChipRateWet, model.ParamMoistureContent),
	model.OutPulpRate:           inputs(model.ParamWoodChipRateWet),
	model.OutWetAnnual:          outputs(model.OutWetRate, model.OutTotalHours),
	model.OutDryAnnual:          outputs(model.OutDryRate, model.OutTotalHours),
	model.OutPulpAnnual:         outputs(model.OutPulpRate, model.OutTotalHours),
	model.OutCO2ePerHour: join(
		outputs(model.OutDryRate, model.OutPulpRate),
		inputs(model.ParamOrgCarbonWood, model.ParamOrgCarbonPulp),
	),
	model.OutCO2eAnnual:       outputs(model.OutCO2ePerHour, model.OutTotalHours),
	model.OutAnnualCO2e:       outputs(model.OutCO2ePerHour, model.OutTotalHours),
	model.OutCORCRate:         join(outputs(model.OutCO2ePerHour), inputs(model.ParamVerifierDiscount)),
	model.OutTotalCORCsAnnual: outputs(model.OutCORCRate, model.OutTotalHours),

	model.OutCarbonCreditSales: join(outputs(model.OutTotalCORCsAnnual), inputs(model.ParamAverageSalePrice)),
	model.OutTipFee:            join(inputs(model.ParamTipFee), outputs(model.OutWetAnnual)),
	model.OutTotalRevenue:      outputs(model.OutCarbonCreditSales, model.OutTipFee),

	model.OutLicenseFeeAmount:   join(outputs(model.OutCarbonCreditSales), inputs(model.ParamLicenseFee)),
	model.OutCarbonDirectAmount: join(outputs(model.OutCarbonCreditSales), inputs(model.ParamCarbonDirect)),
	model.OutPatchAmount:        join(outputs(model.OutCarbonCreditSales), inputs(model.ParamPatchExchange)),
	model.OutPuroServiceFeeAmount: join(
		outputs(model.OutTotalCORCsAnnual),
		inputs(model.ParamPuroServiceFeeRate, model.ParamTSBPremiumFee),
	),
	model.OutSlurryAmount:           join(inputs(model.ParamSlurryIngredients), outputs(model.OutDryAnnual)),
	model.OutFuelAmount:             join(inputs(model.ParamFuelEnergy), outputs(model.OutTotalHours)),
	model.OutLaborAmount:            join(inputs(model.ParamLaborContract), outputs(model.OutTotalHours)),
	model.OutDeveloperFeeAmount:     join(outputs(model.OutCarbonCreditSales), inputs(model.ParamDeveloperFee)),
	model.OutCommissionTotal:        join(outputs(model.OutCarbonCreditSales), inputs(commissionKeys()...)),
	model.OutInsuranceTotal:         inputs(model.InsuranceKeys...),
	model.OutGeneralConditionsTotal: inputs(model.GeneralConditionKeys...),

	model.OutTotalVariableCosts: join(
		inputs(
			model.ParamEngineering, model.ParamPermitting, model.ParamLegal, model.ParamSiteWork, model.ParamSetupCost,
			model.ParamLandLease, model.ParamWellDrilling, model.ParamEquipmentLease, model.ParamWaterTankRental,
			model.ParamMattsHoses, model.ParamWoodBiomass, model.ParamEquipmentMaintenance,
			model.ParamEquipmentTransport, model.ParamPuroAnnualFee,
		),
		outputs(
			model.OutSlurryAmount, model.OutFuelAmount, model.OutLicenseFeeAmount,
			model.OutCarbonDirectAmount, model.OutPatchAmount, model.OutPuroServiceFeeAmount,
		),
	),
	model.OutGrossMargin: join(
		inputs(model.ParamCarbonCreditSales),
		outputs(model.OutCORCRate, model.OutTotalHours, model.OutTotalVariableCosts),
	),
	model.OutGMPercent: outputs(model.OutGrossMargin, model.OutTotalRevenue),
	model.OutTotalOverhead: join(
		outputs(model.OutDeveloperFeeAmount, model.OutLaborAmount, model.OutInsuranceTotal, model.OutGeneralConditionsTotal),
		inputs(model.ParamAccountingTax, model.ParamLegalMisc),
	),
	model.OutNetProfitBeforeSplit:    outputs(model.OutGrossMargin, model.OutTotalOverhead),
	model.OutLandOwnerSplitAmount:    join(outputs(model.OutNetProfitBeforeSplit), inputs(model.ParamLandOwnerSplit)),
	model.OutProfitShareDistribution: outputs(model.OutLandOwnerSplitAmount),
	model.OutNetProfitToSPE:          outputs(model.OutNetProfitBeforeSplit, model.OutLandOwnerSplitAmount),

	model.OutTotalCORCs:         inputs(model.ParamAcres, model.ParamElevation, model.ParamCORCsPerAcft),
	model.OutTotalCORCSalePrice: join(inputs(model.ParamCORCSalePrice), outputs(model.OutTotalCORCs)),
	model.OutTotalCost:          outputs(model.OutTotalCORCSalePrice),
	model.OutNetProfit:          outputs(model.OutTotalCORCSalePrice, model.OutTotalCost),
	model.OutProfitMargin:       outputs(model.OutNetProfit, model.OutTotalCost),
}

// Dependencies 派生指标的直接依赖
func Dependencies(outputKey string) []Ref {
	return append([]Ref(nil), formulaDeps[outputKey]...)
}

// AffectedOutputs 修改给定输入后需要变化的全部派生指标（传递闭包，按键排序）
func AffectedOutputs(inputKeys ...string) []string {
	// 反向邻接表
	dependents := make(map[Ref][]string)
	for key, deps := range formulaDeps {
		for _, d := range deps {
			dependents[d] = append(dependents[d], key)
		}
	}

	seen := make(map[string]bool)
	queue := make([]Ref, 0, len(inputKeys))
	for _, k := range inputKeys {
		queue = append(queue, Ref{Input: true, Key: k})
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range dependents[cur] {
			if seen[next] {
				continue
			}
			seen[next] = true
			queue = append(queue, Ref{Key: next})
		}
	}

	result := make([]string, 0, len(seen))
	for k := range seen {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

// Order 派生指标拓扑序；存在环时 ok 为 false
func Order() (order []string, ok bool) {
	indegree := make(map[string]int, len(formulaDeps))
	dependents := make(map[string][]string)
	for key, deps := range formulaDeps {
		if _, exists := indegree[key]; !exists {
			indegree[key] = 0
		}
		for _, d := range deps {
			if d.Input {
				continue
			}
			indegree[key]++
			dependents[d.Key] = append(dependents[d.Key], key)
		}
	}

	ready := make([]string, 0)
	for key, n := range indegree {
		if n == 0 {
			ready = append(ready, key)
		}
	}
	sort.Strings(ready)

	for len(ready) > 0 {
		cur := ready[0]
		ready = ready[1:]
		order = append(order, cur)
		next := dependents[cur]
		sort.Strings(next)
		for _, k := range next {
			indegree[k]--
			if indegree[k] == 0 {
				ready = append(ready, k)
			}
		}
	}

	return order, len(order) == len(formulaDeps)
}
