package format

import (
	"math"
	"testing"

	"proforma/internal/model"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"零", 0, "$0"},
		{"整数", 1400, "$1,400"},
		{"大额", 2424252.6, "$2,424,253"},
		{"负数", -22627696.07, "-$22,627,696"},
		{"半数进位", 2.5, "$3"},
		{"负半数", -2.5, "-$3"},
		{"舍入为零的负数", -0.4, "-$0"},
		{"负零", math.Copysign(0, -1), "$0"},
		{"NaN", math.NaN(), "$0"},
		{"正无穷", math.Inf(1), "$∞"},
		{"负无穷", math.Inf(-1), "-$∞"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.value); got != tt.expected {
				t.Errorf("Currency(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"零", 0, "0.0%"},
		{"三分之一", 1.0 / 3.0, "33.3%"},
		{"负数", -1.866777, "-186.7%"},
		{"整百", 1, "100.0%"},
		{"平局进位", 0.0125, "1.3%"},
		{"小平局进位", 0.0025, "0.3%"},
		{"负平局远离零", -0.0125, "-1.3%"},
		{"非精确平局", 0.0115, "1.1%"},
		{"负零", math.Copysign(0, -1), "0.0%"},
		{"NaN", math.NaN(), "0.0%"},
		{"正无穷", math.Inf(1), "Infinity%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.value); got != tt.expected {
				t.Errorf("Percent(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"零", 0, "0"},
		{"取整", 7.142857, "7"},
		{"半数向上", 0.5, "1"},
		{"负半数向上", -2.5, "-2"},
		{"千分位", 12121.263, "12,121"},
		{"百万", 675840, "675,840"},
		{"负小数", -0.2, "-0"},
		{"负零", math.Copysign(0, -1), "0"},
		{"NaN", math.NaN(), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.value); got != tt.expected {
				t.Errorf("Number(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestOutput(t *testing.T) {
	rate, _ := model.LookupOutput(model.OutDryRate)
	if got := Output(rate, 7.14); got != "7 T/hr" {
		t.Errorf("Output(dry rate) = %q", got)
	}

	gm, _ := model.LookupOutput(model.OutGMPercent)
	if got := Output(gm, 0.256); got != "25.6%" {
		t.Errorf("Output(GM%%) = %q", got)
	}

	sales, _ := model.LookupOutput(model.OutCarbonCreditSales)
	if got := Output(sales, 1000); got != "$1,000" {
		t.Errorf("Output(sales) = %q", got)
	}
}
