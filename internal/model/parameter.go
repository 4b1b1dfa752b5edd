package model

import "fmt"

// 参数键（即表单字段名，拼写与原始表格保持一致）
const (
	// 注入排期
	ParamDailyHours            = "Daily Hours of Operation"
	ParamTotalDays             = "Total Days of Injection"
	ParamAverageSalePrice      = "Average Carbon Credit Sale Price"
	ParamMoistureContent       = "Wood Chip Moisture Content"
	ParamVerifierDiscount      = "CORC Verifier Emission Discount Rate"
	ParamWoodConsumptionRate   = "Delivered Wood Consumption Rate per Hour"
	ParamChipperTruckloads     = "Chipper Truckloads Daily per Hour"
	ParamCO2eSequestrationRate = "CO2e Sequestration Rate"
	ParamNumberOfWells         = "Number of Wells"
	ParamWellDrillingCostFoot  = "Well Drilling Cost/Foot"
	ParamWellDrilling          = "Well Drilling"
	ParamInjectionRigs         = "Injection Rigs Per Project"
	ParamEquipmentLease        = "Equipment Lease Amount"
	ParamModelStartDate        = "Model Start Date"
	ParamInjectionStartDate    = "Injection Start Date"

	// 生产假设
	ParamNumberOfProjects     = "Number of Projects"
	ParamTotalHoursInjection  = "Total Hours of Injection"
	ParamWoodChipRateWet      = "Wood Chip Injection Rate (Wet)"
	ParamWoodChipRateDry      = "Wood Chip Injection Rate (Dry)"
	ParamPulpRateDry          = "Pulp Injection Rate (Dry)"
	ParamOrgCarbonWood        = "Organic Carbon Content Wood Chips"
	ParamOrgCarbonPulp        = "Organic Carbon Content Pulp"
	ParamTSBPremiumFee        = "TSB Methodology Premium Fee"
	ParamCORCProductionRate   = "CORC Production Rate"
	ParamPuroServiceFeeRate   = "Puro Service Fee Rate"
	ParamPuroServiceFeeDiscnt = "Puro Service Fee Discounted?"

	// 收入
	ParamCarbonCreditSales = "Carbon Credit Sales"
	ParamTipFee            = "Tip Fee - related to rent below"

	// 前期建设成本
	ParamLandLease   = "Land Lease Cost"
	ParamEngineering = "Engineering & Design"
	ParamPermitting  = "Permitting & Approvals"
	ParamLegal       = "Legal"
	ParamSiteWork    = "Site Work / Materials Yard - Pre-Construction"

	// 注入成本
	ParamSetupCost            = "Setup Cost"
	ParamWaterTankRental      = "Water Tank Rental"
	ParamMattsHoses           = "Matts & Hoses"
	ParamWoodBiomass          = "Wood Biomass Processed/Delivered/Chipped"
	ParamSlurryIngredients    = "Other Slurry Ingredients Delivered"
	ParamFuelEnergy           = "Fuel & Energy"
	ParamEquipmentMaintenance = "Levitree Equipment Maintaince"
	ParamEquipmentTransport   = "Equipment Transportaion/Setup"

	// 核证/销售成本
	ParamLicenseFee    = "Levitree Liscense Fee"
	ParamCarbonDirect  = "Carbon Direct"
	ParamPatchExchange = "Patch - Exchange"
	ParamPuroAnnualFee = "Puro Annual Fee"

	// 顾问
	ParamDeveloperFee  = "Developer Fee"
	ParamAccountingTax = "Accounting & Tax - Baker Tilly"
	ParamLaborContract = "Jerry Gutierrez Labor Contract"
	ParamLegalMisc     = "Legal - Misc"

	// 保险
	ParamGeneralLiability    = "General Liability"
	ParamProperty            = "Property"
	ParamEquipment           = "Equipment"
	ParamEO                  = "E&O"
	ParamCyber               = "Cyber"
	ParamAuto                = "Auto"
	ParamTailCoverage        = "Tail Coverage"
	ParamContractorPollution = "Contractor Pollution"
	ParamSitePollution       = "Site Pollution"
	ParamExcessPolicies      = "Excess Policies"

	// 一般条件
	ParamInternet         = "Internet - Starlink"
	ParamPortables        = "Portables / Toilet"
	ParamFencing          = "Fencing"
	ParamBatteryGenerator = "Battery Generator"
	ParamTelco            = "Telco"
	ParamTechTools        = "Tech & Tools"
	ParamTrailer          = "Trailor"

	// 项目参数
	ParamElevation      = "Elevation (ft)"
	ParamAcres          = "Acres"
	ParamCORCsPerAcft   = "CORCs/acft"
	ParamCORCSalePrice  = "CORC Sale Price"
	ParamTruckLoads     = "Truck Loads"
	ParamHoursInjection = "Hours of Injecion"
	ParamLandOwnerSplit = "Land Owner Split"
)

// ModelYears 模型年限，成本与收入均按固定 5 年摊算
const ModelYears = 5

// CommissionKey 第 year 年碳信用佣金比例参数键
func CommissionKey(year int) string {
	return fmt.Sprintf("Carbon Credit Commission year %d", year)
}

// Parameter 参数定义
type Parameter struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Default Value  `json:"default"`
}

// ParameterSection 参数分组
type ParameterSection struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
}

func num(key string, v float64) Parameter {
	return Parameter{Key: key, Label: key, Default: NumberValue(v)}
}

func flag(key string, v bool) Parameter {
	return Parameter{Key: key, Label: key, Default: FlagValue(v)}
}

func commissionParams(rates ...float64) []Parameter {
	params := make([]Parameter, 0, len(rates))
	for i, r := range rates {
		year := i + 1
		params = append(params, Parameter{
			Key:     CommissionKey(year),
			Label:   fmt.Sprintf("Year %d", year),
			Default: NumberValue(r),
		})
	}
	return params
}

// parameterSections 11 个输入分组及默认值
var parameterSections = []ParameterSection{
	{
		Name: "Sequestration Assumptions",
		Parameters: []Parameter{
			num(ParamDailyHours, 8),
			num(ParamTotalDays, 175),
			num(ParamAverageSalePrice, 200),
			num(ParamMoistureContent, 0.40),
			num(ParamVerifierDiscount, 0.37),
			num(ParamWoodConsumptionRate, 11),
			num(ParamChipperTruckloads, 2.75),
			num(ParamCO2eSequestrationRate, 14),
			num(ParamNumberOfWells, 125),
			num(ParamWellDrillingCostFoot, 10),
			num(ParamWellDrilling, 0),
			num(ParamInjectionRigs, 1),
			num(ParamEquipmentLease, 150),
			num(ParamModelStartDate, 45658),
			num(ParamInjectionStartDate, 45870),
		},
	},
	{
		Name: "Assumptions",
		Parameters: []Parameter{
			num(ParamNumberOfProjects, 1),
			num(ParamTotalHoursInjection, 1400),
			num(ParamWoodChipRateWet, 10),
			num(ParamWoodChipRateDry, 6),
			num(ParamPulpRateDry, 0.6),
			num(ParamOrgCarbonWood, 0.48),
			num(ParamOrgCarbonPulp, 0.45),
			num(ParamTSBPremiumFee, 0.12),
			num(ParamCORCProductionRate, 9),
			num(ParamPuroServiceFeeRate, 0.10),
			flag(ParamPuroServiceFeeDiscnt, false),
		},
	},
	{
		Name: "Revenue",
		Parameters: []Parameter{
			num(ParamCarbonCreditSales, 400),
			num(ParamTipFee, 0),
		},
	},
	{
		Name: "Pre-Construction Costs",
		Parameters: []Parameter{
			num(ParamLandLease, 1),
			num(ParamEngineering, 50000),
			num(ParamPermitting, 50000),
			num(ParamLegal, 50000),
			num(ParamSiteWork, 75000),
		},
	},
	{
		Name: "Injection Costs",
		Parameters: []Parameter{
			num(ParamSetupCost, 40000),
			num(ParamWaterTankRental, 89425),
			num(ParamMattsHoses, 5000),
			num(ParamWoodBiomass, 0),
			num(ParamSlurryIngredients, 125),
			num(ParamFuelEnergy, 20),
			num(ParamEquipmentMaintenance, 10000),
			num(ParamEquipmentTransport, 10000),
		},
	},
	{
		Name: "Verification/Sales Costs",
		Parameters: []Parameter{
			num(ParamLicenseFee, 0.15),
			num(ParamCarbonDirect, 0.15),
			num(ParamPatchExchange, 0.02),
			num(ParamPuroAnnualFee, 1470),
		},
	},
	{
		Name: "Consultants",
		Parameters: []Parameter{
			num(ParamDeveloperFee, 0.05),
			num(ParamAccountingTax, 60000),
			num(ParamLaborContract, 100),
			num(ParamLegalMisc, 10000),
		},
	},
	{
		Name: "Insurance",
		Parameters: []Parameter{
			num(ParamGeneralLiability, 10000),
			num(ParamProperty, 1500),
			num(ParamEquipment, 1500),
			num(ParamEO, 15000),
			num(ParamCyber, 1000),
			num(ParamAuto, 3500),
			num(ParamTailCoverage, 20000),
			num(ParamContractorPollution, 2500),
			num(ParamSitePollution, 5000),
			num(ParamExcessPolicies, 5000),
		},
	},
	{
		Name: "General Conditions",
		Parameters: []Parameter{
			num(ParamInternet, 2400),
			num(ParamPortables, 3000),
			num(ParamFencing, 10000),
			num(ParamBatteryGenerator, 5000),
			num(ParamTelco, 1800),
			num(ParamTechTools, 18000),
			num(ParamTrailer, 9000),
		},
	},
	{
		Name:       "Carbon Credit Commission",
		Parameters: commissionParams(0.05, 0.04, 0.03, 0.02, 0.01),
	},
	{
		Name: "Project Parameters",
		Parameters: []Parameter{
			num(ParamElevation, 5),
			num(ParamAcres, 256),
			num(ParamCORCsPerAcft, 528),
			num(ParamCORCSalePrice, 200),
			num(ParamTruckLoads, 16),
			num(ParamHoursInjection, 10),
			num(ParamLandOwnerSplit, 0),
		},
	},
}

// 保险与一般条件费用明细（汇总用）
var (
	InsuranceKeys = []string{
		ParamGeneralLiability, ParamProperty, ParamEquipment, ParamEO, ParamCyber,
		ParamAuto, ParamTailCoverage, ParamContractorPollution, ParamSitePollution, ParamExcessPolicies,
	}
	GeneralConditionKeys = []string{
		ParamInternet, ParamPortables, ParamFencing, ParamBatteryGenerator,
		ParamTelco, ParamTechTools, ParamTrailer,
	}
)

var parameterIndex = buildParameterIndex()

func buildParameterIndex() map[string]Parameter {
	idx := make(map[string]Parameter)
	for _, s := range parameterSections {
		for _, p := range s.Parameters {
			idx[p.Key] = p
		}
	}
	return idx
}

// ParameterSections 返回输入分组（副本）
func ParameterSections() []ParameterSection {
	out := make([]ParameterSection, len(parameterSections))
	for i, s := range parameterSections {
		out[i] = ParameterSection{
			Name:       s.Name,
			Parameters: append([]Parameter(nil), s.Parameters...),
		}
	}
	return out
}

// LookupParameter 按键查找参数定义
func LookupParameter(key string) (Parameter, bool) {
	p, ok := parameterIndex[key]
	return p, ok
}

// DefaultParameterSet 默认参数快照（版本 0）
func DefaultParameterSet() ParameterSet {
	values := make(map[string]Value, len(parameterIndex))
	for k, p := range parameterIndex {
		values[k] = p.Default
	}
	return ParameterSet{Values: values}
}
