package viewer

import (
	"sync"

	"kagami/internal/convert"
)

// frameStage は取得側と描画スレッドの間の1枚分のフレーム受け渡し点
// put は取得側が、take は描画スレッドが呼ぶ。どちらの側もロック下のコピーで
// 受け渡すため、双方が同じピクセルバッファに同時に触れることはない。
type frameStage struct {
	mu      sync.Mutex
	pending *convert.Frame
	fresh   bool
}

// newFrameStage は指定解像度の受け渡し点を作成する
func newFrameStage(width, height int) *frameStage {
	return &frameStage{pending: convert.NewFrame(width, height)}
}

// put は新しいフレームを待機枠にコピーする
// 未消費の待機フレームは上書きされ、常に最新の1枚だけが残る。
// 戻った時点でコピーは完了しており、呼び出し元は src を再利用してよい。
func (s *frameStage) put(src *convert.Frame) {
	s.mu.Lock()
	s.pending.CopyFrom(src)
	s.fresh = true
	s.mu.Unlock()
}

// take は待機中のフレームを dst にコピーする
// 前回の take 以降に新しいフレームがなければ false を返し、dst には触れない。
func (s *frameStage) take(dst *convert.Frame) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fresh {
		return false
	}
	dst.CopyFrom(s.pending)
	s.fresh = false
	return true
}
