package exporter

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteCSV 写出对齐的输入/派生值表。每个分组前有标题行，分组之间空一行
func WriteCSV(w io.Writer, sections []Section) error {
	bw := bufio.NewWriter(w)

	for i, s := range sections {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return fmt.Errorf("写入 CSV 失败: %w", err)
			}
		}
		if _, err := bw.WriteString(quote(s.Name) + "\n"); err != nil {
			return fmt.Errorf("写入 CSV 失败: %w", err)
		}
		for _, r := range s.Rows {
			if _, err := bw.WriteString(formatRow(r) + "\n"); err != nil {
				return fmt.Errorf("写入 CSV 失败: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("写入 CSV 失败: %w", err)
	}
	return nil
}

// formatRow "<输入名>","<输入值>",,"<指标名>","<指标值>"；空侧留空
func formatRow(r Row) string {
	fields := make([]string, 0, 5)
	fields = append(fields, cellFields(r.Input)...)
	fields = append(fields, "")
	fields = append(fields, cellFields(r.Output)...)
	return strings.Join(fields, ",")
}

func cellFields(c Cell) []string {
	if c.Blank {
		return []string{"", ""}
	}
	return []string{quote(c.Label), quote(c.Value)}
}

// quote 始终加引号，内部引号双写
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
