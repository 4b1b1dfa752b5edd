package calculator

import (
	"testing"

	"proforma/internal/model"
)

func TestCheckOutputsDefaults(t *testing.T) {
	diags := CheckOutputs(Derive(model.DefaultParameterSet()))
	if len(diags) != 0 {
		t.Errorf("defaults should produce no diagnostics, got %v", diags)
	}
}

// TestCheckOutputsNonFinite 含水率 -1 时干料速率除以 0
func TestCheckOutputsNonFinite(t *testing.T) {
	diags := CheckOutputs(Derive(paramsOf(map[string]float64{
		model.ParamMoistureContent: -1,
	})))
	if !containsKey(diags, model.OutDryRate) {
		t.Fatalf("expected diagnostic for %s, got %v", model.OutDryRate, diags)
	}
	if containsKey(diags, model.OutWetRate) {
		t.Errorf("wet rate is finite, got %v", diags)
	}
}

// TestCheckOutputsGuardedRatio 分母为 0 的比率
func TestCheckOutputsGuardedRatio(t *testing.T) {
	diags := CheckOutputs(Derive(zeroParams()))
	if !containsKey(diags, model.OutGMPercent) || !containsKey(diags, model.OutProfitMargin) {
		t.Errorf("expected guarded ratio diagnostics, got %v", diags)
	}
}

func containsKey(diags []Diagnostic, key string) bool {
	for _, d := range diags {
		if d.Key == key {
			return true
		}
	}
	return false
}
