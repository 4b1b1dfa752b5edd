package model

// ParameterSet 输入参数快照
type ParameterSet struct {
	Version uint64           `json:"version"`
	Values  map[string]Value `json:"values"`
}

// Get 按键读取参数
func (p ParameterSet) Get(key string) (Value, bool) {
	v, ok := p.Values[key]
	return v, ok
}

// Clone 深拷贝
func (p ParameterSet) Clone() ParameterSet {
	values := make(map[string]Value, len(p.Values))
	for k, v := range p.Values {
		values[k] = v
	}
	return ParameterSet{Version: p.Version, Values: values}
}

// OutputSet 派生结果，每次重算全新生成
type OutputSet struct {
	SourceVersion uint64             `json:"sourceVersion"` // 对应的参数快照版本
	Values        map[string]float64 `json:"values"`
}

// Get 读取派生值，缺失为 0
func (o OutputSet) Get(key string) float64 {
	return o.Values[key]
}
