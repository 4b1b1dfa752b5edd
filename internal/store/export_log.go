package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"proforma/internal/model"
)

// CreateExportLog 创建导出记录，返回记录 ID
func (s *Store) CreateExportLog(format string, paramVersion uint64) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO export_logs (id, format, param_version, status)
		VALUES (?, ?, ?, ?)
	`, id, format, int64(paramVersion), model.ExportStatusProcessing)
	if err != nil {
		return "", fmt.Errorf("failed to create export log: %w", err)
	}
	return id, nil
}

// CompleteExportLog 完成导出记录更新
func (s *Store) CompleteExportLog(id string, rowCount int, byteSize int64, status, errorMessage string) error {
	res, err := s.db.Exec(`
		UPDATE export_logs SET
			row_count = ?,
			byte_size = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, rowCount, byteSize, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update export log: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("export log %s not found", id)
	}
	return nil
}

// ListExportLogs 最近的导出记录，新的在前
func (s *Store) ListExportLogs(limit int) ([]*model.ExportLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, format, param_version, row_count, byte_size, status, error_message, created_at, completed_at
		FROM export_logs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query export logs: %w", err)
	}
	defer rows.Close()

	var logs []*model.ExportLog
	for rows.Next() {
		var (
			l            model.ExportLog
			paramVersion int64
			completedAt  sql.NullTime
		)
		if err := rows.Scan(
			&l.ID, &l.Format, &paramVersion, &l.RowCount, &l.ByteSize,
			&l.Status, &l.ErrorMessage, &l.CreatedAt, &completedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan export log: %w", err)
		}
		l.ParamVersion = uint64(paramVersion)
		if completedAt.Valid {
			t := completedAt.Time
			l.CompletedAt = &t
		}
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate export logs: %w", err)
	}
	return logs, nil
}

// CountExportLogs 导出记录总数
func (s *Store) CountExportLogs() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM export_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count export logs: %w", err)
	}
	return n, nil
}
