package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"proforma/internal/model"
	"proforma/internal/service/calculator"
	paramstore "proforma/internal/service/store"
)

// ParameterView 单个输入参数
type ParameterView struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Kind     model.ValueKind `json:"kind"`
	Value    model.Value     `json:"value"`
	Raw      string          `json:"raw"`
	Default  model.Value     `json:"default"`
	Modified bool            `json:"modified"`
}

// ParameterSectionView 输入分组
type ParameterSectionView struct {
	Name       string          `json:"name"`
	Parameters []ParameterView `json:"parameters"`
}

// ListParameters 获取全部输入参数（按分组）
// GET /api/parameters
func (h *Handler) ListParameters(c *gin.Context) {
	snapshot := h.params.Snapshot()

	sections := make([]ParameterSectionView, 0)
	for _, s := range model.ParameterSections() {
		view := ParameterSectionView{Name: s.Name, Parameters: make([]ParameterView, 0, len(s.Parameters))}
		for _, p := range s.Parameters {
			v, _ := snapshot.Get(p.Key)
			view.Parameters = append(view.Parameters, ParameterView{
				Key:      p.Key,
				Label:    p.Label,
				Kind:     p.Default.Kind,
				Value:    v,
				Raw:      v.String(),
				Default:  p.Default,
				Modified: h.params.IsModified(p.Key),
			})
		}
		sections = append(sections, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"version":  snapshot.Version,
		"sections": sections,
	})
}

// UpdateParametersRequest 参数编辑请求；值可为原始文本、数字或布尔
type UpdateParametersRequest struct {
	Updates map[string]json.RawMessage `json:"updates"`
}

// CalculationResponse 编辑后的重算结果
type CalculationResponse struct {
	Version  uint64              `json:"version"`
	Outputs  map[string]*float64 `json:"outputs"`
	Affected []string            `json:"affected"`
}

// edit 已校验的一次编辑
type edit struct {
	key    string
	isFlag bool
	raw    string
	flag   bool
}

// UpdateParameters 批量编辑参数并重算
// PATCH /api/parameters
func (h *Handler) UpdateParameters(c *gin.Context) {
	var req UpdateParametersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if len(req.Updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有要更新的参数"})
		return
	}

	keys := make([]string, 0, len(req.Updates))
	for k := range req.Updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// 先全部校验，任一失败则不做修改
	edits := make([]edit, 0, len(keys))
	for _, k := range keys {
		e, err := parseEdit(k, req.Updates[k])
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "key": k})
			return
		}
		edits = append(edits, e)
	}

	for _, e := range edits {
		var err error
		if e.isFlag {
			err = h.params.SetFlag(e.key, e.flag)
		} else {
			err = h.params.SetValue(e.key, e.raw)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "key": e.key})
			return
		}
	}

	snapshot, outputs := h.engine.Calculate()
	c.JSON(http.StatusOK, CalculationResponse{
		Version:  snapshot.Version,
		Outputs:  outputValues(outputs),
		Affected: calculator.AffectedOutputs(keys...),
	})
}

// parseEdit 只拒绝未知参数。数值参数：文本与数字原样交给存储解析，其他 JSON 值按 0；
// 勾选参数：布尔、"true"/"false"、非 0 数字为真，其余为假
func parseEdit(key string, raw json.RawMessage) (edit, error) {
	p, ok := model.LookupParameter(key)
	if !ok {
		return edit{}, fmt.Errorf("%w: %s", paramstore.ErrUnknownParameter, key)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded interface{}
	if err := dec.Decode(&decoded); err != nil {
		decoded = nil
	}

	if p.Default.Kind == model.KindFlag {
		flag := false
		switch v := decoded.(type) {
		case bool:
			flag = v
		case string:
			flag, _ = strconv.ParseBool(strings.TrimSpace(v))
		case json.Number:
			flag = paramstore.ParseNumber(v.String()) != 0
		}
		return edit{key: key, isFlag: true, flag: flag}, nil
	}

	switch v := decoded.(type) {
	case string:
		return edit{key: key, raw: v}, nil
	case json.Number:
		return edit{key: key, raw: v.String()}, nil
	default:
		// null、布尔、数组、对象
		return edit{key: key, raw: ""}, nil
	}
}

// ResetParametersRequest 恢复默认值请求；keys 为空表示全部
type ResetParametersRequest struct {
	Keys []string `json:"keys"`
}

// ResetParameters 恢复默认值并重算
// POST /api/parameters/reset
func (h *Handler) ResetParameters(c *gin.Context) {
	var req ResetParametersRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
			return
		}
	}

	for _, k := range req.Keys {
		if _, ok := model.LookupParameter(k); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Errorf("%w: %s", paramstore.ErrUnknownParameter, k).Error(), "key": k})
			return
		}
	}

	h.params.Reset(req.Keys...)

	affected := model.OutputKeys()
	sort.Strings(affected)
	if len(req.Keys) > 0 {
		affected = calculator.AffectedOutputs(req.Keys...)
	}

	snapshot, outputs := h.engine.Calculate()
	c.JSON(http.StatusOK, CalculationResponse{
		Version:  snapshot.Version,
		Outputs:  outputValues(outputs),
		Affected: affected,
	})
}
