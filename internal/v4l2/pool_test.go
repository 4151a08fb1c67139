//go:build linux && (amd64 || arm64)

package v4l2

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

// newTestDevice はioctlなしで所有権管理だけを検証するためのデバイスを作る
func newTestDevice(slots int) *Device {
	d := &Device{slots: make([]bufferSlot, slots)}
	for i := range d.slots {
		d.slots[i].owner = ownerKernel
	}
	return d
}

// TestSlotOwnershipTransitions はスロット所有権の遷移をテストする
func TestSlotOwnershipTransitions(t *testing.T) {
	d := newTestDevice(4)

	// デキューでアプリケーション所有になる
	if err := d.markDequeued(1); err != nil {
		t.Fatalf("デキューに失敗しました: %v", err)
	}
	if d.slots[1].owner != ownerApp {
		t.Error("スロットがアプリケーション所有になっていません")
	}

	// 再エンキューでカーネル所有に戻る
	if err := d.markRequeued(1); err != nil {
		t.Fatalf("再エンキューに失敗しました: %v", err)
	}
	if d.slots[1].owner != ownerKernel {
		t.Error("スロットがカーネル所有に戻っていません")
	}
}

// TestSlotOwnershipExclusivity は所有権の排他性をテストする
// デキュー済みスロットは再エンキューされるまで二重にデキューできない
func TestSlotOwnershipExclusivity(t *testing.T) {
	d := newTestDevice(4)

	if err := d.markDequeued(2); err != nil {
		t.Fatalf("デキューに失敗しました: %v", err)
	}

	// 二重デキューは拒否される
	if err := d.markDequeued(2); err == nil {
		t.Error("二重デキューがエラーになりませんでした")
	}

	// カーネル所有スロットの再エンキューは拒否される
	if err := d.markRequeued(0); err == nil {
		t.Error("カーネル所有スロットの再エンキューがエラーになりませんでした")
	}

	// 正しく返却すれば再びデキューできる
	if err := d.markRequeued(2); err != nil {
		t.Fatalf("再エンキューに失敗しました: %v", err)
	}
	if err := d.markDequeued(2); err != nil {
		t.Errorf("返却後のデキューに失敗しました: %v", err)
	}
}

// TestSlotOwnershipBounds は不正なインデックスの扱いをテストする
func TestSlotOwnershipBounds(t *testing.T) {
	d := newTestDevice(2)

	if err := d.markDequeued(-1); err == nil {
		t.Error("負のインデックスがエラーになりませんでした")
	}
	if err := d.markDequeued(2); err == nil {
		t.Error("範囲外のインデックスがエラーになりませんでした")
	}
	if err := d.markRequeued(5); err == nil {
		t.Error("範囲外の再エンキューがエラーになりませんでした")
	}
}

// TestDequeueReadyTimeoutBound は準備待ちが締め切りで打ち切られることをテストする
// 空のパイプをfdとして使い、データが来ないままタイムアウトする経路を通す。
func TestDequeueReadyTimeoutBound(t *testing.T) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		t.Fatalf("パイプの作成に失敗しました: %v", err)
	}
	defer func() {
		_ = unix.Close(p[0])
		_ = unix.Close(p[1])
	}()

	d := &Device{fd: p[0]}

	start := time.Now()
	_, ready, err := d.DequeueReady(50 * time.Millisecond)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("タイムアウトがエラーになりました: %v", err)
	}
	if ready {
		t.Error("データのないfdで ready = true が返りました")
	}
	if elapsed < 40*time.Millisecond {
		t.Errorf("タイムアウトより早く戻りました: %v", elapsed)
	}
	if elapsed > time.Second {
		t.Errorf("締め切りを大きく超えて待ちました: %v", elapsed)
	}
}

// TestDequeueReadyZeroTimeout は残り時間ゼロで即座に未準備が返ることをテストする
func TestDequeueReadyZeroTimeout(t *testing.T) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		t.Fatalf("パイプの作成に失敗しました: %v", err)
	}
	defer func() {
		_ = unix.Close(p[0])
		_ = unix.Close(p[1])
	}()

	d := &Device{fd: p[0]}

	_, ready, err := d.DequeueReady(0)
	if err != nil {
		t.Fatalf("エラーが返りました: %v", err)
	}
	if ready {
		t.Error("残り時間ゼロで ready = true が返りました")
	}
}

// TestCloseIdempotent はクローズの冪等性をテストする
func TestCloseIdempotent(t *testing.T) {
	// 未オープンのデバイスは何度クローズしても安全
	d := &Device{}
	if err := d.Close(); err != nil {
		t.Errorf("未オープンデバイスのクローズでエラー: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("二重クローズでエラー: %v", err)
	}
}
