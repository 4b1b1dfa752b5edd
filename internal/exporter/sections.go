package exporter

import (
	"proforma/internal/model"
)

// sectionOutputs 每个输入分组在导出时对齐的派生指标
var sectionOutputs = map[string][]string{
	"Sequestration Assumptions": {
		model.OutTotalHours,
		model.OutTotalHoursAllYears,
	},
	"Assumptions": {
		model.OutWetRate,
		model.OutDryRate,
		model.OutPulpRate,
		model.OutWetAnnual,
		model.OutDryAnnual,
		model.OutPulpAnnual,
		model.OutCO2ePerHour,
		model.OutCO2eAnnual,
		model.OutCORCRate,
		model.OutTotalCORCsAnnual,
		model.OutAnnualCO2e,
	},
	"Revenue": {
		model.OutCarbonCreditSales,
		model.OutTipFee,
		model.OutTotalRevenue,
	},
	"Injection Costs": {
		model.OutSlurryAmount,
		model.OutFuelAmount,
		model.OutTotalVariableCosts,
	},
	"Verification/Sales Costs": {
		model.OutLicenseFeeAmount,
		model.OutCarbonDirectAmount,
		model.OutPatchAmount,
		model.OutPuroServiceFeeAmount,
	},
	"Consultants": {
		model.OutDeveloperFeeAmount,
		model.OutLaborAmount,
	},
	"Insurance": {
		model.OutInsuranceTotal,
	},
	"General Conditions": {
		model.OutGeneralConditionsTotal,
		model.OutTotalOverhead,
	},
	"Carbon Credit Commission": {
		model.OutCommissionTotal,
		model.OutGrossMargin,
		model.OutGMPercent,
		model.OutNetProfitBeforeSplit,
		model.OutLandOwnerSplitAmount,
		model.OutProfitShareDistribution,
		model.OutNetProfitToSPE,
	},
	"Project Parameters": {
		model.OutTotalCORCs,
		model.OutTotalCORCSalePrice,
		model.OutTotalCost,
		model.OutNetProfit,
		model.OutProfitMargin,
	},
}

// Cell 导出单元格；Blank 表示该侧无对应项
type Cell struct {
	Label string
	Value string
	Blank bool
}

// Row 一行：左侧输入、右侧派生值
type Row struct {
	Input  Cell
	Output Cell
}

// Section 导出分组
type Section struct {
	Name string
	Rows []Row
}

// BuildSections 按分组对齐输入与派生值。只读快照，不重算
func BuildSections(params model.ParameterSet, outputs model.OutputSet) []Section {
	inputSections := model.ParameterSections()
	sections := make([]Section, 0, len(inputSections))

	for _, is := range inputSections {
		outKeys := sectionOutputs[is.Name]
		n := len(is.Parameters)
		if len(outKeys) > n {
			n = len(outKeys)
		}

		rows := make([]Row, n)
		for i := 0; i < n; i++ {
			rows[i].Input = Cell{Blank: true}
			rows[i].Output = Cell{Blank: true}

			if i < len(is.Parameters) {
				p := is.Parameters[i]
				value := ""
				if v, ok := params.Get(p.Key); ok {
					value = v.String()
				}
				rows[i].Input = Cell{Label: p.Label, Value: value}
			}
			if i < len(outKeys) {
				key := outKeys[i]
				label := key
				if o, ok := model.LookupOutput(key); ok {
					label = o.Label
				}
				rows[i].Output = Cell{Label: label, Value: model.FormatRaw(outputs.Get(key))}
			}
		}

		sections = append(sections, Section{Name: is.Name, Rows: rows})
	}

	return sections
}
