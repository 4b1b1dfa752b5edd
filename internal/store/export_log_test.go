package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"proforma/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "proforma.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestExportLogLifecycle 创建 -> 完成 -> 查询
func TestExportLogLifecycle(t *testing.T) {
	s := openTestStore(t)

	id, err := s.CreateExportLog(model.ExportFormatCSV, 7)
	if err != nil {
		t.Fatalf("CreateExportLog failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("id %q is not a uuid: %v", id, err)
	}

	logs, err := s.ListExportLogs(10)
	if err != nil {
		t.Fatalf("ListExportLogs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != model.ExportStatusProcessing || logs[0].CompletedAt != nil {
		t.Fatalf("logs = %+v, want one processing entry", logs)
	}

	if err := s.CompleteExportLog(id, 76, 4096, model.ExportStatusSuccess, ""); err != nil {
		t.Fatalf("CompleteExportLog failed: %v", err)
	}

	logs, err = s.ListExportLogs(10)
	if err != nil {
		t.Fatalf("ListExportLogs failed: %v", err)
	}
	got := logs[0]
	if got.ID != id || got.Format != model.ExportFormatCSV || got.ParamVersion != 7 {
		t.Errorf("log = %+v", got)
	}
	if got.RowCount != 76 || got.ByteSize != 4096 || got.Status != model.ExportStatusSuccess {
		t.Errorf("log = %+v", got)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt should be set")
	}
}

// TestCompleteUnknownExportLog 更新不存在的记录
func TestCompleteUnknownExportLog(t *testing.T) {
	s := openTestStore(t)
	if err := s.CompleteExportLog("missing", 0, 0, model.ExportStatusFailed, "x"); err == nil {
		t.Error("expected error for unknown id")
	}
}

// TestListExportLogsLimit 测试条数限制与排序
func TestListExportLogsLimit(t *testing.T) {
	s := openTestStore(t)

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := s.CreateExportLog(model.ExportFormatXLSX, uint64(i))
		if err != nil {
			t.Fatalf("CreateExportLog failed: %v", err)
		}
		ids = append(ids, id)
	}

	logs, err := s.ListExportLogs(3)
	if err != nil {
		t.Fatalf("ListExportLogs failed: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("len = %d, want 3", len(logs))
	}
	if logs[0].ID != ids[4] {
		t.Errorf("newest first: got %s, want %s", logs[0].ID, ids[4])
	}

	n, err := s.CountExportLogs()
	if err != nil || n != 5 {
		t.Errorf("CountExportLogs = %d, %v; want 5", n, err)
	}
}

// TestReopenStore 重新打开后记录仍在
func TestReopenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proforma.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := s.CreateExportLog(model.ExportFormatCSV, 1); err != nil {
		t.Fatalf("CreateExportLog failed: %v", err)
	}
	_ = s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	if n, _ := s.CountExportLogs(); n != 1 {
		t.Errorf("count after reopen = %d, want 1", n)
	}
}

// TestOpenUnderFile 上级路径是文件时打开失败
func TestOpenUnderFile(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(parent, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if s, err := Open(filepath.Join(parent, "proforma.db")); err == nil {
		_ = s.Close()
		t.Fatal("Open should fail when the parent is a regular file")
	}
}
