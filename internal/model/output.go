package model

// 派生指标键。部分键与输入参数同名（如 Carbon Credit Sales），但二者是不同的量
const (
	// 产能
	OutTotalHours         = "Total Hours of Injection"
	OutTotalHoursAllYears = "Total Hours All Years"
	OutWetRate            = "Wood Chip Injection Rate (Wet)"
	OutDryRate            = "Wood Chip Injection Rate (Dry)"
	OutPulpRate           = "Pulp Injection Rate (Dry)"
	OutWetAnnual          = "Wood Chip Injection Rate (Wet) Annual"
	OutDryAnnual          = "Wood Chip Injection Rate (Dry) Annual"
	OutPulpAnnual         = "Pulp Injection Rate (Dry) Annual"
	OutCO2ePerHour        = "CO2e Sequestration Rate Per Hour"
	OutCO2eAnnual         = "CO2e Sequestration Rate Annual"
	OutCORCRate           = "CORC Production Rate"
	OutTotalCORCsAnnual   = "Total CORCs Annual"
	OutAnnualCO2e         = "Annual CO2e Sequestration"

	// 收入
	OutCarbonCreditSales = "Carbon Credit Sales"
	OutTipFee            = "Tip Fee - related to rent below"
	OutTotalRevenue      = "Total Revenue"

	// 成本明细
	OutLicenseFeeAmount       = "Levitree Liscense Fee Amount"
	OutCarbonDirectAmount     = "Carbon Direct Amount"
	OutPatchAmount            = "Patch - Exchange Amount"
	OutPuroServiceFeeAmount   = "Puro Service Fee Amount"
	OutSlurryAmount           = "Other Slurry Ingredients Delivered Amount"
	OutFuelAmount             = "Fuel & Energy Amount"
	OutLaborAmount            = "Jerry Gutierrez Labor Contract Amount"
	OutDeveloperFeeAmount     = "Developer Fee Amount"
	OutCommissionTotal        = "Carbon Credit Commission Total"
	OutInsuranceTotal         = "Total Insurance"
	OutGeneralConditionsTotal = "Total General Conditions"

	// 损益
	OutTotalVariableCosts      = "Total Variable Costs"
	OutGrossMargin             = "Gross Margin"
	OutGMPercent               = "GM%"
	OutTotalOverhead           = "Total Overhead Costs"
	OutNetProfitBeforeSplit    = "Net Profit before Land Owner Split"
	OutLandOwnerSplitAmount    = "Land Owner Split Amount"
	OutProfitShareDistribution = "Total Profit Share Distribution"
	OutNetProfitToSPE          = "Net Profit to SPE / Taxable Income"

	// 项目汇总（独立的简化模型）
	OutTotalCORCs         = "Total CORCs"
	OutTotalCORCSalePrice = "Total CORC Sale Price"
	OutTotalCost          = "Total Cost"
	OutNetProfit          = "Net Profit"
	OutProfitMargin       = "Profit Margin"
)

// Format 展示格式
type Format string

const (
	FormatNumber   Format = "number"   // 四舍五入取整 + 千分位
	FormatCurrency Format = "currency" // $ 无小数
	FormatPercent  Format = "percent"  // ×100 保留一位小数
)

// Output 派生指标定义
type Output struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Format Format `json:"format"`
	Unit   string `json:"unit,omitempty"` // 数值后缀，如 T/hr
}

// OutputSection 派生指标分组
type OutputSection struct {
	Name    string   `json:"name"`
	Outputs []Output `json:"outputs"`
}

func numOut(key, unit string) Output {
	return Output{Key: key, Label: key, Format: FormatNumber, Unit: unit}
}

func cur(key string) Output {
	return Output{Key: key, Label: key, Format: FormatCurrency}
}

func pct(key string) Output {
	return Output{Key: key, Label: key, Format: FormatPercent}
}

var outputSections = []OutputSection{
	{
		Name: "Production Metrics",
		Outputs: []Output{
			numOut(OutTotalHours, ""),
			numOut(OutTotalHoursAllYears, ""),
			numOut(OutWetRate, "T/hr"),
			numOut(OutDryRate, "T/hr"),
			numOut(OutPulpRate, "T/hr"),
		},
	},
	{
		Name: "Annual Production",
		Outputs: []Output{
			numOut(OutWetAnnual, "T"),
			numOut(OutDryAnnual, "T"),
			numOut(OutPulpAnnual, "T"),
			numOut(OutCO2eAnnual, "T"),
		},
	},
	{
		Name: "CORC Production",
		Outputs: []Output{
			numOut(OutCO2ePerHour, "T/hr"),
			numOut(OutCORCRate, "CORCs/hr"),
			numOut(OutTotalCORCsAnnual, "CORCs"),
			numOut(OutAnnualCO2e, "T"),
		},
	},
	{
		Name: "Revenue & Costs",
		Outputs: []Output{
			cur(OutCarbonCreditSales),
			{Key: OutTipFee, Label: "Tip Fee Revenue", Format: FormatCurrency},
			cur(OutTotalRevenue),
			cur(OutTotalVariableCosts),
			cur(OutGrossMargin),
			pct(OutGMPercent),
			cur(OutTotalOverhead),
			cur(OutNetProfitBeforeSplit),
			cur(OutLandOwnerSplitAmount),
			cur(OutProfitShareDistribution),
			cur(OutNetProfitToSPE),
		},
	},
	{
		Name: "Cost Breakdown",
		Outputs: []Output{
			cur(OutLicenseFeeAmount),
			cur(OutCarbonDirectAmount),
			cur(OutPatchAmount),
			cur(OutPuroServiceFeeAmount),
			cur(OutSlurryAmount),
			cur(OutFuelAmount),
			cur(OutLaborAmount),
			cur(OutDeveloperFeeAmount),
			cur(OutCommissionTotal),
			cur(OutInsuranceTotal),
			cur(OutGeneralConditionsTotal),
		},
	},
	{
		Name: "Project Summary",
		Outputs: []Output{
			numOut(OutTotalCORCs, ""),
			cur(OutTotalCORCSalePrice),
			cur(OutTotalCost),
			cur(OutNetProfit),
			pct(OutProfitMargin),
		},
	},
}

var outputIndex = buildOutputIndex()

func buildOutputIndex() map[string]Output {
	idx := make(map[string]Output)
	for _, s := range outputSections {
		for _, o := range s.Outputs {
			idx[o.Key] = o
		}
	}
	return idx
}

// OutputSections 返回派生指标分组（副本）
func OutputSections() []OutputSection {
	out := make([]OutputSection, len(outputSections))
	for i, s := range outputSections {
		out[i] = OutputSection{
			Name:    s.Name,
			Outputs: append([]Output(nil), s.Outputs...),
		}
	}
	return out
}

// LookupOutput 按键查找派生指标定义
func LookupOutput(key string) (Output, bool) {
	o, ok := outputIndex[key]
	return o, ok
}

// OutputKeys 全部派生指标键（按分组顺序）
func OutputKeys() []string {
	keys := make([]string, 0, len(outputIndex))
	for _, s := range outputSections {
		for _, o := range s.Outputs {
			keys = append(keys, o.Key)
		}
	}
	return keys
}
