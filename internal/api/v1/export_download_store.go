package v1

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

type exportDownload struct {
	filePath  string
	expiresAt time.Time
}

// exportDownloadStore 一次性下载令牌 -> 临时文件
type exportDownloadStore struct {
	mu    sync.Mutex
	items map[string]exportDownload
	now   func() time.Time
}

func newExportDownloadStore() *exportDownloadStore {
	return &exportDownloadStore{
		items: make(map[string]exportDownload),
		now:   time.Now,
	}
}

func (s *exportDownloadStore) put(filePath string, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()

	token = uuid.NewString()
	s.items[token] = exportDownload{
		filePath:  filePath,
		expiresAt: s.now().Add(ttl),
	}
	return token
}

// take 取出并删除令牌；过期视为不存在
func (s *exportDownloadStore) take(token string) (exportDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()

	v, ok := s.items[token]
	if !ok {
		return exportDownload{}, false
	}
	delete(s.items, token)
	return v, true
}

// purgeExpiredLocked 清理过期令牌及其文件
func (s *exportDownloadStore) purgeExpiredLocked() {
	now := s.now()
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
			_ = os.Remove(v.filePath)
		}
	}
}
