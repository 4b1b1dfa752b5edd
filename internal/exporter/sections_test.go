package exporter

import (
	"bytes"
	"strings"
	"testing"

	"proforma/internal/model"
	"proforma/internal/service/calculator"
)

func defaultSnapshot() (model.ParameterSet, model.OutputSet) {
	params := model.DefaultParameterSet()
	return params, calculator.Derive(params)
}

// TestBuildSectionsAlignment 每组行数 = max(输入数, 指标数)
func TestBuildSectionsAlignment(t *testing.T) {
	params, outputs := defaultSnapshot()
	sections := BuildSections(params, outputs)

	inputSections := model.ParameterSections()
	if len(sections) != len(inputSections) {
		t.Fatalf("sections = %d, want %d", len(sections), len(inputSections))
	}

	for i, s := range sections {
		want := len(inputSections[i].Parameters)
		if n := len(sectionOutputs[s.Name]); n > want {
			want = n
		}
		if len(s.Rows) != want {
			t.Errorf("%s: rows = %d, want %d", s.Name, len(s.Rows), want)
		}
	}
}

// TestBuildSectionsValues 单元格与快照值逐一相等，不做格式化
func TestBuildSectionsValues(t *testing.T) {
	params, outputs := defaultSnapshot()
	inputSections := model.ParameterSections()

	for i, s := range BuildSections(params, outputs) {
		for j, r := range s.Rows {
			if j < len(inputSections[i].Parameters) {
				p := inputSections[i].Parameters[j]
				v, _ := params.Get(p.Key)
				if r.Input.Blank || r.Input.Label != p.Label || r.Input.Value != v.String() {
					t.Errorf("%s row %d: input = %+v, want %q=%q", s.Name, j, r.Input, p.Label, v.String())
				}
			} else if !r.Input.Blank {
				t.Errorf("%s row %d: input side should be blank", s.Name, j)
			}

			keys := sectionOutputs[s.Name]
			if j < len(keys) {
				want := model.FormatRaw(outputs.Get(keys[j]))
				if r.Output.Blank || r.Output.Value != want {
					t.Errorf("%s row %d: output = %+v, want %q", s.Name, j, r.Output, want)
				}
			} else if !r.Output.Blank {
				t.Errorf("%s row %d: output side should be blank", s.Name, j)
			}
		}
	}
}

// TestBuildSectionsUsesSnapshot 导出只读快照，不重新计算
func TestBuildSectionsUsesSnapshot(t *testing.T) {
	params := model.DefaultParameterSet()
	outputs := model.OutputSet{Values: map[string]float64{model.OutTotalHours: 42}}

	for _, s := range BuildSections(params, outputs) {
		if s.Name != "Sequestration Assumptions" {
			continue
		}
		if s.Rows[0].Output.Value != "42" {
			t.Errorf("Total Hours = %q, want 42", s.Rows[0].Output.Value)
		}
		if s.Rows[1].Output.Value != "0" {
			t.Errorf("missing output = %q, want 0", s.Rows[1].Output.Value)
		}
	}
}

// TestWriteCSV 测试行格式与空侧
func TestWriteCSV(t *testing.T) {
	sections := []Section{
		{
			Name: "Revenue",
			Rows: []Row{
				{Input: Cell{Label: "Tip Fee", Value: "0"}, Output: Cell{Label: "Total Revenue", Value: "12.5"}},
				{Input: Cell{Blank: true}, Output: Cell{Label: "Tip Fee Revenue", Value: "0"}},
			},
		},
		{
			Name: "Insurance",
			Rows: []Row{
				{Input: Cell{Label: `Say "hi"`, Value: "true"}, Output: Cell{Blank: true}},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, sections); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := strings.Join([]string{
		`"Revenue"`,
		`"Tip Fee","0",,"Total Revenue","12.5"`,
		`,,,"Tip Fee Revenue","0"`,
		``,
		`"Insurance"`,
		`"Say ""hi""","true",,,`,
		``,
	}, "\n")
	if buf.String() != want {
		t.Errorf("CSV mismatch:\n%s\nwant:\n%s", buf.String(), want)
	}
}

// TestWriteCSVDefaults 默认参数导出：行数 = 标题 + 数据 + 分隔空行
func TestWriteCSVDefaults(t *testing.T) {
	params, outputs := defaultSnapshot()
	sections := BuildSections(params, outputs)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, sections); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	expected := len(sections) - 1
	for _, s := range sections {
		expected += 1 + len(s.Rows)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != expected {
		t.Errorf("lines = %d, want %d", len(lines), expected)
	}
	if !strings.Contains(buf.String(), `"Total Hours of Injection","1400"`) {
		t.Error("CSV should contain raw Total Hours of Injection")
	}
}
