package calculator

import (
	"fmt"
	"math"

	"proforma/internal/model"
)

// Diagnostic 计算结果提示（不阻止计算）
type Diagnostic struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// guardedRatios 分母为 0 时按 0 处理的比率指标 -> 分母
var guardedRatios = []struct {
	ratio       string
	denominator string
}{
	{model.OutGMPercent, model.OutTotalRevenue},
	{model.OutProfitMargin, model.OutTotalCost},
}

// CheckOutputs 检查派生结果：非有限值、被置 0 的比率
func CheckOutputs(out model.OutputSet) []Diagnostic {
	diags := make([]Diagnostic, 0)

	for _, key := range model.OutputKeys() {
		v := out.Get(key)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			diags = append(diags, Diagnostic{
				Key:     key,
				Message: fmt.Sprintf("%s 不是有限值 (%s)", key, model.FormatRaw(v)),
			})
		}
	}

	for _, g := range guardedRatios {
		if out.Get(g.denominator) == 0 {
			diags = append(diags, Diagnostic{
				Key:     g.ratio,
				Message: fmt.Sprintf("%s 为 0，%s 按 0 处理", g.denominator, g.ratio),
			})
		}
	}

	return diags
}
