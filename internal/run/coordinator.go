package run

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// watchInterval は停止要求の監視間隔
const watchInterval = 50 * time.Millisecond

// Coordinator はワーカーの起動と停止の合流を管理する構造体
type Coordinator struct {
	state     *State
	sessionID string
	wg        sync.WaitGroup
}

// NewCoordinator は新しいCoordinatorを作成する
// セッションIDは起動ごとに一意で、ログとステータス表示に使う。
func NewCoordinator(state *State) *Coordinator {
	return &Coordinator{
		state:     state,
		sessionID: uuid.New().String(),
	}
}

// SessionID はこの起動のセッションIDを返す
func (c *Coordinator) SessionID() string {
	return c.sessionID
}

// Go はワーカーをゴルーチンとして起動し、合流対象に加える
func (c *Coordinator) Go(name string, fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		log.Printf("ワーカー開始: %s", name)
		fn()
		log.Printf("ワーカー終了: %s", name)
	}()
}

// WatchSignals はSIGINT/SIGTERMを停止要求に変換する
func (c *Coordinator) WatchSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("シグナルを受信しました: %v", sig)
		c.state.Stop()
	}()
}

// WatchState は停止要求を監視し、検知したら quit を一度だけ呼ぶ
// イベントループの終了（Presenter.Quit）をワーカー側から起こすために使う。
func (c *Coordinator) WatchState(quit func()) {
	go func() {
		for c.state.Running() {
			time.Sleep(watchInterval)
		}
		quit()
	}()
}

// Wait は停止を要求し、すべてのワーカーの終了を待つ
func (c *Coordinator) Wait() {
	c.state.Stop()
	c.wg.Wait()
}
