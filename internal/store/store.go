package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var exportLogSchema string

// Store 导出记录库。参数从不落盘，库中只有 export_logs 一张表
type Store struct {
	db *sql.DB
}

// Open 打开导出记录库，不存在时连同上级目录一起创建
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create export log dir: %w", err)
	}

	// 写导出记录与读列表可能并发，等锁而不是直接报 SQLITE_BUSY
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open export log db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// migrate 建表；语句均为 IF NOT EXISTS，重复执行无副作用
func (s *Store) migrate() error {
	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("ping export log db: %w", err)
	}
	if _, err := s.db.Exec(exportLogSchema); err != nil {
		return fmt.Errorf("create export_logs: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
