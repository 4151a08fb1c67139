package camera

import (
	"log"
	"time"

	"kagami/internal/convert"
	"kagami/internal/run"
)

// framePool はキャプチャループが必要とするデバイス操作
// デバイスはこのワーカーが専有し、ループ終了時にワーカー自身が解放する。
type framePool interface {
	DequeueReady(timeout time.Duration) (index int, ready bool, err error)
	Requeue(index int) error
	Slot(index int) []byte
	StreamOff() error
	Close() error
}

// presenter はキャプチャループが必要とする表示操作
type presenter interface {
	Upload(src *convert.Frame)
	Draw()
}

// Worker はフレームの取得・変換・表示・返却のループを実行する
type Worker struct {
	pool    framePool
	pres    presenter
	store   *Store
	state   *run.State
	timeout time.Duration

	// 変換先バッファ。ループ内で毎フレーム再利用する
	frame *convert.Frame
}

// NewWorker はキャプチャワーカーを作成する
func NewWorker(pool framePool, pres presenter, store *Store, state *run.State, width, height int, timeout time.Duration) *Worker {
	return &Worker{
		pool:    pool,
		pres:    pres,
		store:   store,
		state:   state,
		timeout: timeout,
		frame:   convert.NewFrame(width, height),
	}
}

// Run はキャプチャループを実行する。ゴルーチンとして起動すること
//
// 1フレームの流れ:
//  1. 準備完了バッファの取り出し（タイムアウトつき）
//  2. YUYVからRGB24への変換
//  3. 表示用ラスタへの同期コピー
//  4. バッファのカーネルへの返却（コピー完了後なので安全）
//  5. 再描画依頼と最新フレームの更新
func (w *Worker) Run() {
	for w.state.Running() {
		index, ready, err := w.pool.DequeueReady(w.timeout)
		if err != nil {
			log.Printf("フレームの取り出しに失敗: %v", err)
			w.state.Stop()
			break
		}
		if !ready {
			// タイムアウトまたは未準備。停止要求を確認してループを続ける
			continue
		}

		if err := convert.YUYVToRGB(w.pool.Slot(index), w.frame); err != nil {
			log.Printf("フレームの変換に失敗: %v", err)
			if reqErr := w.pool.Requeue(index); reqErr != nil {
				log.Printf("バッファの返却に失敗: %v", reqErr)
			}
			w.state.Stop()
			break
		}

		// Upload は同期コピーなので、戻った時点でスロットを返却してよい
		w.pres.Upload(w.frame)
		if err := w.pool.Requeue(index); err != nil {
			log.Printf("バッファの返却に失敗: %v", err)
			w.state.Stop()
			break
		}

		w.store.Update(w.frame)
		w.pres.Draw()
	}

	// 排出: ストリーミングを止めてからデバイスを解放する
	if err := w.pool.StreamOff(); err != nil {
		log.Printf("ストリーミングの停止に失敗: %v", err)
	}
	if err := w.pool.Close(); err != nil {
		log.Printf("デバイスの解放に失敗: %v", err)
	}
	log.Println("キャプチャループ停止")
}
