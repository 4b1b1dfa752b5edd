package format

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"proforma/internal/model"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency 货币：$ 前缀，千分位，无小数（四舍五入，远离 0）。舍入为 0 的负数保留负号
func Currency(v float64) string {
	v = orZero(v)
	n := math.Round(v)
	if v < 0 {
		return "-$" + grouped(-n)
	}
	return "$" + grouped(n)
}

// Percent 百分比：value×100 保留一位小数，恰好落在 .x5 上时远离 0 进位
func Percent(v float64) string {
	x := orZero(v) * 100
	if math.IsInf(x, 1) {
		return "Infinity%"
	}
	if math.IsInf(x, -1) {
		return "-Infinity%"
	}

	sign := ""
	if x < 0 {
		sign = "-"
	}
	a := math.Abs(x)

	// a*10 精确且小数部分恰为 0.5 时才是真正的平局
	r := a * 10
	if math.FMA(a, 10, -r) == 0 && r-math.Floor(r) == 0.5 {
		return sign + strconv.FormatFloat((math.Floor(r)+1)/10, 'f', 1, 64) + "%"
	}
	return sign + strconv.FormatFloat(a, 'f', 1, 64) + "%"
}

// Number 数值：先四舍五入（.5 向上）取整，再加千分位。(-0.5, 0) 区间显示为 -0
func Number(v float64) string {
	v = orZero(v)
	n := math.Floor(v + 0.5)
	if v < 0 {
		return "-" + grouped(-n)
	}
	return grouped(n)
}

// Output 按指标定义格式化，数值型附带单位
func Output(o model.Output, v float64) string {
	switch o.Format {
	case model.FormatCurrency:
		return Currency(v)
	case model.FormatPercent:
		return Percent(v)
	default:
		s := Number(v)
		if o.Unit != "" {
			s += " " + o.Unit
		}
		return s
	}
}

// orZero NaN 与 -0 按 0 显示
func orZero(v float64) float64 {
	if math.IsNaN(v) || v == 0 {
		return 0
	}
	return v
}

func grouped(n float64) string {
	if math.IsInf(n, 0) {
		return "∞"
	}
	// -0 与 0 统一
	if n == 0 {
		n = 0
	}
	return printer.Sprintf("%.0f", n)
}
