package model

import (
	"encoding/json"
	"strconv"
)

// ValueKind 参数值类型
type ValueKind string

const (
	KindNumber ValueKind = "number" // 数值
	KindFlag   ValueKind = "flag"   // 勾选项
)

// Value 参数值：数值或布尔
type Value struct {
	Kind   ValueKind
	Number float64
	Flag   bool
}

// NumberValue 创建数值参数
func NumberValue(v float64) Value {
	return Value{Kind: KindNumber, Number: v}
}

// FlagValue 创建布尔参数
func FlagValue(b bool) Value {
	return Value{Kind: KindFlag, Flag: b}
}

// Float 按数值读取；布尔值读作 1/0
func (v Value) Float() float64 {
	if v.Kind == KindFlag {
		if v.Flag {
			return 1
		}
		return 0
	}
	return v.Number
}

// String 原始值字符串（导出用，不做格式化）
func (v Value) String() string {
	if v.Kind == KindFlag {
		return strconv.FormatBool(v.Flag)
	}
	return FormatRaw(v.Number)
}

// MarshalJSON 数值输出为 number，勾选项输出为 bool
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindFlag {
		return json.Marshal(v.Flag)
	}
	return json.Marshal(v.Number)
}

// FormatRaw 浮点数最短表示
func FormatRaw(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
