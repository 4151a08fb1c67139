package camera

import (
	"sync"
	"time"

	"kagami/internal/convert"
)

// Store は最新フレームのコピーを保持する
// キャプチャループが書き、HTTPハンドラが読む。
type Store struct {
	mu        sync.RWMutex
	frame     *convert.Frame
	sequence  uint64
	updatedAt time.Time
}

// NewStore は指定解像度のストアを作成する
func NewStore(width, height int) *Store {
	return &Store{
		frame: convert.NewFrame(width, height),
	}
}

// Update は最新フレームを差し替える
// src の内容をコピーするので、呼び出し元は戻った後に src を再利用してよい。
func (s *Store) Update(src *convert.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame.CopyFrom(src)
	s.sequence++
	s.updatedAt = time.Now()
}

// Snapshot は最新フレームの独立したコピーを返す
// まだ1フレームも届いていない場合は nil を返す。
func (s *Store) Snapshot() *convert.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sequence == 0 {
		return nil
	}
	dst := convert.NewFrame(s.frame.Width(), s.frame.Height())
	dst.CopyFrom(s.frame)
	return dst
}

// Sequence は受信したフレームの通し番号を返す
func (s *Store) Sequence() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sequence
}

// UpdatedAt は最後にフレームを受信した時刻を返す
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
