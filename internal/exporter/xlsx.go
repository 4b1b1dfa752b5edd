package exporter

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"proforma/internal/format"
	"proforma/internal/model"
)

const (
	proformaSheet = "Proforma"
	outputsSheet  = "Outputs"
)

// Exporter 工作簿导出器
type Exporter struct {
	templatePath string
}

// NewExporter 创建导出器；templatePath 为空时使用空白工作簿
func NewExporter(templatePath string) *Exporter {
	return &Exporter{templatePath: templatePath}
}

// Export 导出 Excel：Proforma 为对齐的输入/派生值，Outputs 为格式化后的指标
func (e *Exporter) Export(params model.ParameterSet, outputs model.OutputSet, progress ProgressFunc) (*excelize.File, error) {
	reportProgress(progress, 5, "准备工作簿")
	f, err := e.openWorkbook()
	if err != nil {
		return nil, err
	}

	reportProgress(progress, 20, "写入 Proforma")
	if err := writeProformaSheet(f, BuildSections(params, outputs)); err != nil {
		_ = f.Close()
		return nil, err
	}

	reportProgress(progress, 60, "写入 Outputs")
	if err := writeOutputsSheet(f, outputs); err != nil {
		_ = f.Close()
		return nil, err
	}

	if idx, err := f.GetSheetIndex(proformaSheet); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	reportProgress(progress, 100, "完成")
	return f, nil
}

func (e *Exporter) openWorkbook() (*excelize.File, error) {
	// 外部模板优先
	p := strings.TrimSpace(e.templatePath)
	if p == "" {
		p = strings.TrimSpace(os.Getenv("PROFORMA_XLSX_TEMPLATE"))
	}
	if p != "" {
		f, err := excelize.OpenFile(p)
		if err != nil {
			return nil, fmt.Errorf("打开模板失败: %w", err)
		}
		return f, nil
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", proformaSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("初始化工作簿失败: %w", err)
	}
	return f, nil
}

// ensureSheet 工作表不存在时创建
func ensureSheet(f *excelize.File, name string) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return err
	}
	if idx >= 0 {
		return nil
	}
	_, err = f.NewSheet(name)
	return err
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

func writeProformaSheet(f *excelize.File, sections []Section) error {
	if err := ensureSheet(f, proformaSheet); err != nil {
		return fmt.Errorf("创建工作表 %s 失败: %w", proformaSheet, err)
	}

	header, err := headerStyle(f)
	if err != nil {
		return fmt.Errorf("创建样式失败: %w", err)
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("创建样式失败: %w", err)
	}

	headers := []interface{}{"Input", "Value", "", "Output", "Value"}
	if err := f.SetSheetRow(proformaSheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetRowStyle(proformaSheet, 1, 1, header); err != nil {
		return err
	}

	row := 2
	for _, s := range sections {
		row++ // 分组之间空一行
		if err := setCellValue(f, proformaSheet, fmt.Sprintf("A%d", row), s.Name); err != nil {
			return err
		}
		if err := f.SetRowStyle(proformaSheet, row, row, title); err != nil {
			return err
		}
		row++

		for _, r := range s.Rows {
			if !r.Input.Blank {
				if err := setCellValue(f, proformaSheet, fmt.Sprintf("A%d", row), r.Input.Label); err != nil {
					return err
				}
				if err := setCellValue(f, proformaSheet, fmt.Sprintf("B%d", row), cellValue(r.Input.Value)); err != nil {
					return err
				}
			}
			if !r.Output.Blank {
				if err := setCellValue(f, proformaSheet, fmt.Sprintf("D%d", row), r.Output.Label); err != nil {
					return err
				}
				if err := setCellValue(f, proformaSheet, fmt.Sprintf("E%d", row), cellValue(r.Output.Value)); err != nil {
					return err
				}
			}
			row++
		}
	}

	if err := f.SetColWidth(proformaSheet, "A", "A", 42); err != nil {
		return err
	}
	if err := f.SetColWidth(proformaSheet, "B", "B", 16); err != nil {
		return err
	}
	if err := f.SetColWidth(proformaSheet, "C", "C", 4); err != nil {
		return err
	}
	if err := f.SetColWidth(proformaSheet, "D", "D", 44); err != nil {
		return err
	}
	return f.SetColWidth(proformaSheet, "E", "E", 20)
}

func writeOutputsSheet(f *excelize.File, outputs model.OutputSet) error {
	if err := ensureSheet(f, outputsSheet); err != nil {
		return fmt.Errorf("创建工作表 %s 失败: %w", outputsSheet, err)
	}

	header, err := headerStyle(f)
	if err != nil {
		return fmt.Errorf("创建样式失败: %w", err)
	}

	headers := []interface{}{"Section", "Output", "Value", "Display"}
	if err := f.SetSheetRow(outputsSheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetRowStyle(outputsSheet, 1, 1, header); err != nil {
		return err
	}

	row := 2
	for _, s := range model.OutputSections() {
		for _, o := range s.Outputs {
			v := outputs.Get(o.Key)
			values := []interface{}{s.Name, o.Label, numberCell(v), format.Output(o, v)}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(outputsSheet, cell, &values); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SetColWidth(outputsSheet, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(outputsSheet, "B", "B", 44); err != nil {
		return err
	}
	return f.SetColWidth(outputsSheet, "C", "D", 20)
}

// numberCell 非有限值写为文本
func numberCell(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return model.FormatRaw(v)
	}
	return v
}

// cellValue 数值写为数字、true/false 写为布尔，其余保持文本
func cellValue(s string) interface{} {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return numberCell(f)
	}
	return s
}

func setCellValue(f *excelize.File, sheet, cell string, value interface{}) error {
	return f.SetCellValue(sheet, cell, value)
}
