package audio

import "sync"

// ringCapacity はリングバッファの容量
// 44100Hz/2ch/16bit で約1.5秒分。これを超える滞留は遅延として聴感に出るので
// 古いデータから捨てる。
const ringCapacity = 256 * 1024

// ring は固定容量のバイトリングバッファ
// 満杯時の書き込みは最も古いデータを上書きする。
type ring struct {
	mu      sync.Mutex
	buf     [ringCapacity]byte
	start   int
	size    int
	dropped uint64
}

// Write はデータを書き込む。容量を超える分は古いデータを捨てる
func (r *ring) Write(p []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 1回の書き込みが容量を超える場合は末尾だけ残す
	if len(p) > ringCapacity {
		r.dropped += uint64(len(p) - ringCapacity)
		p = p[len(p)-ringCapacity:]
	}

	over := r.size + len(p) - ringCapacity
	if over > 0 {
		r.start = (r.start + over) % ringCapacity
		r.size -= over
		r.dropped += uint64(over)
	}

	end := (r.start + r.size) % ringCapacity
	n := copy(r.buf[end:], p)
	copy(r.buf[:], p[n:])
	r.size += len(p)
}

// Read は最大 len(p) バイトを読み出し、読めたバイト数を返す
func (r *ring) Read(p []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.size
	if n > len(p) {
		n = len(p)
	}
	m := copy(p, r.buf[r.start:min(r.start+n, ringCapacity)])
	copy(p[m:n], r.buf[:])
	r.start = (r.start + n) % ringCapacity
	r.size -= n
	return n
}

// Len は滞留中のバイト数を返す
func (r *ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Dropped は上書きにより失われた累計バイト数を返す
func (r *ring) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}
