package v1

import (
	"math"

	"proforma/internal/format"
	"proforma/internal/model"
)

// finite 非有限值（NaN/±Inf）无法编码为 JSON，返回 nil
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func outputValues(outputs model.OutputSet) map[string]*float64 {
	values := make(map[string]*float64, len(outputs.Values))
	for k, v := range outputs.Values {
		values[k] = finite(v)
	}
	return values
}

// OutputView 单个派生指标
type OutputView struct {
	Key     string       `json:"key"`
	Label   string       `json:"label"`
	Format  model.Format `json:"format"`
	Value   *float64     `json:"value"`
	Display string       `json:"display"`
}

func outputView(o model.Output, outputs model.OutputSet) OutputView {
	v := outputs.Get(o.Key)
	return OutputView{
		Key:     o.Key,
		Label:   o.Label,
		Format:  o.Format,
		Value:   finite(v),
		Display: format.Output(o, v),
	}
}
