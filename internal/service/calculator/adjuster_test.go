package calculator

import (
	"errors"
	"testing"

	"proforma/internal/model"
	"proforma/internal/service/store"
)

func TestGoalSeek(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		output   string
		target   float64
		lo, hi   float64
		expected float64
	}{
		{"售价反推净利润", model.ParamCORCSalePrice, model.OutNetProfit, 16896000, 0, 1000, 100},
		{"日工时反推总工时", model.ParamDailyHours, model.OutTotalHours, 1750, 0, 24, 10},
		{"端点即解", model.ParamAcres, model.OutTotalCORCs, 0, 0, 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := GoalSeek(model.DefaultParameterSet(), tt.input, tt.output, tt.target, tt.lo, tt.hi)
			if err != nil {
				t.Fatalf("GoalSeek failed: %v", err)
			}
			if !floatNear(res.Value, tt.expected, 1e-6) {
				t.Errorf("value = %v, want %v", res.Value, tt.expected)
			}
			if !floatNear(res.Achieved, tt.target, 1e-6) {
				t.Errorf("achieved = %v, want %v", res.Achieved, tt.target)
			}
		})
	}
}

// TestGoalSeekDoesNotMutateInput 反推不修改传入快照
func TestGoalSeekDoesNotMutateInput(t *testing.T) {
	in := model.DefaultParameterSet()
	if _, err := GoalSeek(in, model.ParamDailyHours, model.OutTotalHours, 1750, 0, 24); err != nil {
		t.Fatal(err)
	}
	if v, _ := in.Get(model.ParamDailyHours); v.Float() != 8 {
		t.Errorf("input snapshot changed: %v", v.Float())
	}
}

func TestGoalSeekErrors(t *testing.T) {
	in := model.DefaultParameterSet()

	tests := []struct {
		name   string
		input  string
		output string
		lo, hi float64
		want   error
	}{
		{"未知参数", "Nope", model.OutTotalHours, 0, 1, store.ErrUnknownParameter},
		{"勾选参数", model.ParamPuroServiceFeeDiscnt, model.OutTotalHours, 0, 1, store.ErrFlagParameter},
		{"区间颠倒", model.ParamDailyHours, model.OutTotalHours, 10, 1, ErrInvalidRange},
		{"目标不在区间内", model.ParamDailyHours, model.OutTotalHours, 0, 1, ErrNoSolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GoalSeek(in, tt.input, tt.output, 1750, tt.lo, tt.hi)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := GoalSeek(in, model.ParamDailyHours, "Nope", 1, 0, 1); !errors.Is(err, ErrUnknownOutput) {
		t.Errorf("err = %v, want ErrUnknownOutput", err)
	}
}

// TestAdjusterApply 写回参数存储
func TestAdjusterApply(t *testing.T) {
	s := store.NewMemoryStore()
	a := NewAdjuster(s, NewEngine(s))

	res, err := a.Adjust(model.ParamDailyHours, model.OutTotalHours, 1750, 0, 24, false)
	if err != nil {
		t.Fatal(err)
	}
	if s.Version() != 0 {
		t.Error("preview should not modify the store")
	}

	res, err = a.Adjust(model.ParamDailyHours, model.OutTotalHours, 1750, 0, 24, true)
	if err != nil {
		t.Fatal(err)
	}
	if !s.IsModified(model.ParamDailyHours) {
		t.Error("DailyHours should be modified")
	}
	if !floatNear(res.Outputs.Get(model.OutTotalHours), 1750, 1e-6) {
		t.Errorf("Total Hours = %v, want 1750", res.Outputs.Get(model.OutTotalHours))
	}
}
