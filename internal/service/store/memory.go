package store

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"proforma/internal/model"
)

var (
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrFlagParameter    = errors.New("parameter is a flag")
	ErrNumberParameter  = errors.New("parameter requires a number")
)

// MemoryStore 参数内存存储（默认值 + 用户编辑）
type MemoryStore struct {
	values   map[string]model.Value
	modified map[string]bool
	version  uint64
	mu       sync.RWMutex
}

// NewMemoryStore 创建参数存储，载入全部默认值
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:   model.DefaultParameterSet().Values,
		modified: make(map[string]bool),
	}
}

// SetValue 按文本设置数值参数；无法解析时记为 0
func (s *MemoryStore) SetValue(key, rawText string) error {
	p, ok := model.LookupParameter(key)
	if !ok {
		return ErrUnknownParameter
	}
	if p.Default.Kind == model.KindFlag {
		return ErrFlagParameter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = model.NumberValue(ParseNumber(rawText))
	s.modified[key] = true
	s.version++
	return nil
}

// SetFlag 设置勾选参数
func (s *MemoryStore) SetFlag(key string, v bool) error {
	p, ok := model.LookupParameter(key)
	if !ok {
		return ErrUnknownParameter
	}
	if p.Default.Kind != model.KindFlag {
		return ErrNumberParameter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = model.FlagValue(v)
	s.modified[key] = true
	s.version++
	return nil
}

// Snapshot 获取当前参数快照（深拷贝）
func (s *MemoryStore) Snapshot() model.ParameterSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[string]model.Value, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	return model.ParameterSet{Version: s.version, Values: values}
}

// Version 当前版本号，每次编辑递增
func (s *MemoryStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// IsModified 参数是否被用户修改过
func (s *MemoryStore) IsModified(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified[key]
}

// ModifiedCount 已修改参数数量
func (s *MemoryStore) ModifiedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.modified)
}

// ModifiedKeys 已修改参数键（排序）
func (s *MemoryStore) ModifiedKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.modified))
	for k := range s.modified {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reset 恢复默认值；未指定键时全部恢复
func (s *MemoryStore) Reset(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(keys) == 0 {
		s.values = model.DefaultParameterSet().Values
		s.modified = make(map[string]bool)
		s.version++
		return
	}

	changed := false
	for _, key := range keys {
		p, ok := model.LookupParameter(key)
		if !ok {
			continue
		}
		s.values[key] = p.Default
		delete(s.modified, key)
		changed = true
	}
	if changed {
		s.version++
	}
}

// leadingDecimal 十进制数字前缀，不认十六进制与 Infinity
var leadingDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber 取输入开头最长的十进制数字前缀（"12abc" 为 12）。
// 无前缀、溢出、NaN/Inf 一律为 0
func ParseNumber(rawText string) float64 {
	prefix := leadingDecimal.FindString(strings.TrimLeftFunc(rawText, unicode.IsSpace))
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
