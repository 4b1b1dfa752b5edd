package calculator

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"proforma/internal/model"
	"proforma/internal/service/store"
)

var (
	ErrNoSolution    = errors.New("target is not bracketed by the search range")
	ErrInvalidRange  = errors.New("invalid search range")
	ErrUnknownOutput = errors.New("unknown output")
)

const (
	seekMaxIterations = 200
	seekTolerance     = 1e-9
)

// Adjuster 指标反推：修改单个输入参数，使某个派生指标达到目标值
type Adjuster struct {
	store  *store.MemoryStore
	engine *Engine
}

func NewAdjuster(store *store.MemoryStore, engine *Engine) *Adjuster {
	return &Adjuster{store: store, engine: engine}
}

// SeekResult 反推结果
type SeekResult struct {
	Input      string          `json:"input"`
	Output     string          `json:"output"`
	Value      float64         `json:"value"`
	Achieved   float64         `json:"achieved"`
	Iterations int             `json:"iterations"`
	Outputs    model.OutputSet `json:"-"`
}

// Adjust 在当前快照上反推，apply 为 true 时把结果写回参数存储
func (a *Adjuster) Adjust(inputKey, outputKey string, target, lo, hi float64, apply bool) (*SeekResult, error) {
	res, err := GoalSeek(a.store.Snapshot(), inputKey, outputKey, target, lo, hi)
	if err != nil {
		return nil, err
	}
	if !apply {
		return res, nil
	}
	if err := a.store.SetValue(inputKey, model.FormatRaw(res.Value)); err != nil {
		return nil, err
	}
	_, res.Outputs = a.engine.Calculate()
	return res, nil
}

// GoalSeek 二分法求解 inputKey ∈ [lo, hi] 使 outputKey ≈ target。要求端点处差值异号（或某端恰为解）
func GoalSeek(in model.ParameterSet, inputKey, outputKey string, target, lo, hi float64) (*SeekResult, error) {
	inputKey = strings.TrimSpace(inputKey)
	outputKey = strings.TrimSpace(outputKey)

	p, ok := model.LookupParameter(inputKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrUnknownParameter, inputKey)
	}
	if p.Default.Kind == model.KindFlag {
		return nil, fmt.Errorf("%w: %s", store.ErrFlagParameter, inputKey)
	}
	if _, ok := model.LookupOutput(outputKey); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOutput, outputKey)
	}
	if !isFinite(target) || !isFinite(lo) || !isFinite(hi) || lo > hi {
		return nil, ErrInvalidRange
	}

	work := in.Clone()
	eval := func(x float64) (float64, model.OutputSet) {
		work.Values[inputKey] = model.NumberValue(x)
		out := Derive(work)
		return out.Get(outputKey) - target, out
	}

	done := func(x float64, out model.OutputSet, iter int) *SeekResult {
		return &SeekResult{
			Input:      inputKey,
			Output:     outputKey,
			Value:      x,
			Achieved:   out.Get(outputKey),
			Iterations: iter,
			Outputs:    out,
		}
	}

	fLo, outLo := eval(lo)
	if !isFinite(fLo) {
		return nil, ErrNoSolution
	}
	if closeEnough(fLo, target) {
		return done(lo, outLo, 0), nil
	}
	fHi, outHi := eval(hi)
	if !isFinite(fHi) {
		return nil, ErrNoSolution
	}
	if closeEnough(fHi, target) {
		return done(hi, outHi, 0), nil
	}
	if (fLo < 0) == (fHi < 0) {
		return nil, ErrNoSolution
	}

	var (
		mid    float64
		outMid model.OutputSet
	)
	for iter := 1; iter <= seekMaxIterations; iter++ {
		mid = lo + (hi-lo)/2
		var fMid float64
		fMid, outMid = eval(mid)
		if !isFinite(fMid) {
			return nil, ErrNoSolution
		}
		if closeEnough(fMid, target) || hi-lo <= seekTolerance*math.Max(1, math.Abs(mid)) {
			return done(mid, outMid, iter), nil
		}
		if (fMid < 0) == (fLo < 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	return done(mid, outMid, seekMaxIterations), nil
}

// closeEnough 差值相对目标足够小
func closeEnough(diff, target float64) bool {
	return math.Abs(diff) <= seekTolerance*math.Max(1, math.Abs(target))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
