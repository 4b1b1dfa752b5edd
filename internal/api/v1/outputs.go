package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proforma/internal/model"
	"proforma/internal/service/calculator"
)

// ListOutputs 获取全部派生指标（原始值 + 显示值）
// GET /api/outputs
func (h *Handler) ListOutputs(c *gin.Context) {
	snapshot, outputs := h.engine.Calculate()

	items := make([]OutputView, 0, len(outputs.Values))
	for _, key := range model.OutputKeys() {
		o, _ := model.LookupOutput(key)
		items = append(items, outputView(o, outputs))
	}

	c.JSON(http.StatusOK, gin.H{
		"version":     snapshot.Version,
		"outputs":     items,
		"diagnostics": calculator.CheckOutputs(outputs),
	})
}

// OutputSectionView 派生指标分组
type OutputSectionView struct {
	Name    string       `json:"name"`
	Outputs []OutputView `json:"outputs"`
}

// GetProforma 获取分组后的损益表
// GET /api/proforma
func (h *Handler) GetProforma(c *gin.Context) {
	snapshot, outputs := h.engine.Calculate()

	sections := make([]OutputSectionView, 0)
	for _, s := range model.OutputSections() {
		view := OutputSectionView{Name: s.Name, Outputs: make([]OutputView, 0, len(s.Outputs))}
		for _, o := range s.Outputs {
			view.Outputs = append(view.Outputs, outputView(o, outputs))
		}
		sections = append(sections, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"version":  snapshot.Version,
		"sections": sections,
	})
}

// GetDependencies 查询派生指标的直接依赖
// GET /api/outputs/dependencies?key=...
func (h *Handler) GetDependencies(c *gin.Context) {
	key := c.Query("key")
	if _, ok := model.LookupOutput(key); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "派生指标不存在", "key": key})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":          key,
		"dependencies": calculator.Dependencies(key),
	})
}
