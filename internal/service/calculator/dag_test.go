package calculator

import (
	"sort"
	"testing"

	"proforma/internal/model"
)

// TestOrderCoversAllOutputs 依赖图无环且覆盖全部派生指标
func TestOrderCoversAllOutputs(t *testing.T) {
	order, ok := Order()
	if !ok {
		t.Fatal("formula graph has a cycle")
	}

	keys := model.OutputKeys()
	if len(order) != len(keys) {
		t.Fatalf("order has %d keys, catalog has %d", len(order), len(keys))
	}

	pos := make(map[string]int, len(order))
	for i, k := range order {
		pos[k] = i
	}
	for _, k := range keys {
		if _, ok := pos[k]; !ok {
			t.Errorf("%s missing from order", k)
		}
	}

	// 每个依赖先于使用者
	for key, deps := range formulaDeps {
		for _, d := range deps {
			if d.Input {
				if _, ok := model.LookupParameter(d.Key); !ok {
					t.Errorf("%s depends on unknown input %q", key, d.Key)
				}
				continue
			}
			if pos[d.Key] >= pos[key] {
				t.Errorf("%s should come before %s", d.Key, key)
			}
		}
	}
}

// TestAffectedOutputs 测试修改输入的影响范围
func TestAffectedOutputs(t *testing.T) {
	tests := []struct {
		name     string
		inputs   []string
		contains []string
		excludes []string
	}{
		{
			name:     "输入销售额只影响毛利链",
			inputs:   []string{model.ParamCarbonCreditSales},
			contains: []string{model.OutGrossMargin, model.OutGMPercent, model.OutNetProfitToSPE},
			excludes: []string{model.OutCarbonCreditSales, model.OutTotalRevenue, model.OutTotalCORCs},
		},
		{
			name:     "项目汇总独立",
			inputs:   []string{model.ParamAcres},
			contains: []string{model.OutTotalCORCs, model.OutTotalCORCSalePrice, model.OutTotalCost, model.OutNetProfit, model.OutProfitMargin},
			excludes: []string{model.OutGrossMargin, model.OutTotalHours},
		},
		{
			name:     "日工时影响产能与损益",
			inputs:   []string{model.ParamDailyHours},
			contains: []string{model.OutTotalHours, model.OutTotalCORCsAnnual, model.OutTotalVariableCosts, model.OutTotalOverhead},
			excludes: []string{model.OutWetRate, model.OutInsuranceTotal, model.OutTotalCORCs},
		},
		{
			name:     "未知参数",
			inputs:   []string{"Nope"},
			contains: nil,
			excludes: []string{model.OutTotalHours},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AffectedOutputs(tt.inputs...)
			if !sort.StringsAreSorted(got) {
				t.Errorf("result not sorted: %v", got)
			}
			set := make(map[string]bool, len(got))
			for _, k := range got {
				set[k] = true
			}
			for _, k := range tt.contains {
				if !set[k] {
					t.Errorf("expected %s in %v", k, got)
				}
			}
			for _, k := range tt.excludes {
				if set[k] {
					t.Errorf("did not expect %s in %v", k, got)
				}
			}
		})
	}
}

// TestDependenciesCopy 返回副本
func TestDependenciesCopy(t *testing.T) {
	deps := Dependencies(model.OutTotalHours)
	if len(deps) != 2 {
		t.Fatalf("deps = %v", deps)
	}
	deps[0].Key = "changed"
	if Dependencies(model.OutTotalHours)[0].Key == "changed" {
		t.Error("Dependencies should return a copy")
	}
	if len(Dependencies("Nope")) != 0 {
		t.Error("unknown output should have no dependencies")
	}
}
