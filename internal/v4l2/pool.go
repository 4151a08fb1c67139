//go:build linux && (amd64 || arm64)

package v4l2

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// バッファスロット数（4を要求し、最低2を必須とする）
const (
	requestedSlots = 4
	minimumSlots   = 2
)

// slotOwner はバッファスロットの所有者を表す
type slotOwner uint8

const (
	ownerKernel slotOwner = iota // カーネル所有（デバイスが書き込む可能性がある）
	ownerApp                     // アプリケーション所有（読み取り安全）
)

// bufferSlot はmmapされた1つのキャプチャバッファ
type bufferSlot struct {
	data   []byte
	length uint32
	owner  slotOwner
}

// Device はオープン済みのV4L2キャプチャデバイスと
// ネゴシエーション済みのバッファリングを保持する
type Device struct {
	fd   int
	path string
	card string

	width     uint32
	height    uint32
	sizeImage uint32

	slots     []bufferSlot
	streaming bool
	opened    bool
}

// Open はデバイスを読み書き・ノンブロッキングでオープンし、
// キャプチャとストリーミングに対応しているか確認する
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("%s のオープンに失敗: %w", path, err)
	}

	d := &Device{fd: fd, path: path, opened: true}

	var caps v4l2Capability
	if err := ioctl(fd, vidiocQuerycap, unsafe.Pointer(&caps)); err != nil {
		d.Close()
		return nil, fmt.Errorf("VIDIOC_QUERYCAP に失敗: %w", err)
	}
	d.card = cstr(caps.card[:])

	effective := caps.capabilities
	if effective&capDeviceCaps != 0 {
		effective = caps.deviceCaps
	}
	if effective&capVideoCapture == 0 {
		d.Close()
		return nil, fmt.Errorf("%s はビデオキャプチャに対応していません", path)
	}
	if effective&capStreaming == 0 {
		d.Close()
		return nil, fmt.Errorf("%s はストリーミングI/Oに対応していません", path)
	}

	return d, nil
}

// Negotiate はYUYVフォーマットと解像度を要求し、
// mmapバッファリングを確立してすべてのスロットをカーネルに渡す
func (d *Device) Negotiate(width, height int) error {
	// フォーマット設定
	format := v4l2Format{typ: bufTypeVideoCapture}
	pix := format.pix()
	pix.width = uint32(width)
	pix.height = uint32(height)
	pix.pixelformat = PixFmtYUYV
	pix.field = fieldNone

	if err := ioctl(d.fd, vidiocSFmt, unsafe.Pointer(&format)); err != nil {
		return fmt.Errorf("VIDIOC_S_FMT に失敗: %w", err)
	}
	if pix.pixelformat != PixFmtYUYV {
		return fmt.Errorf("デバイスがYUYVフォーマットを拒否しました (0x%08x)", pix.pixelformat)
	}

	// ドライバは解像度を調整することがある。調整後の値を正とする
	d.width = pix.width
	d.height = pix.height
	d.sizeImage = pix.sizeimage

	// バッファ要求
	req := v4l2RequestBuffers{
		count:  requestedSlots,
		typ:    bufTypeVideoCapture,
		memory: memoryMMap,
	}
	if err := ioctl(d.fd, vidiocReqbufs, unsafe.Pointer(&req)); err != nil {
		return fmt.Errorf("VIDIOC_REQBUFS に失敗: %w", err)
	}
	if req.count < minimumSlots {
		return fmt.Errorf("バッファ数が不足しています: %d (最低 %d)", req.count, minimumSlots)
	}

	// 各スロットを照会してmmapし、カーネルにエンキューする
	d.slots = make([]bufferSlot, req.count)
	for i := uint32(0); i < req.count; i++ {
		buf := v4l2Buffer{
			typ:    bufTypeVideoCapture,
			memory: memoryMMap,
			index:  i,
		}
		if err := ioctl(d.fd, vidiocQuerybuf, unsafe.Pointer(&buf)); err != nil {
			return fmt.Errorf("VIDIOC_QUERYBUF (index %d) に失敗: %w", i, err)
		}

		data, err := unix.Mmap(d.fd, int64(buf.offset), int(buf.length),
			unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			return fmt.Errorf("バッファ %d のmmapに失敗: %w", i, err)
		}
		d.slots[i] = bufferSlot{data: data, length: buf.length, owner: ownerKernel}

		if err := ioctl(d.fd, vidiocQBuf, unsafe.Pointer(&buf)); err != nil {
			return fmt.Errorf("VIDIOC_QBUF (index %d) に失敗: %w", i, err)
		}
	}

	return nil
}

// StreamOn はストリーミングを開始する
func (d *Device) StreamOn() error {
	bufType := uint32(bufTypeVideoCapture)
	if err := ioctl(d.fd, vidiocStreamOn, unsafe.Pointer(&bufType)); err != nil {
		return fmt.Errorf("VIDIOC_STREAMON に失敗: %w", err)
	}
	d.streaming = true
	return nil
}

// StreamOff はストリーミングを停止する
func (d *Device) StreamOff() error {
	if !d.streaming {
		return nil
	}
	bufType := uint32(bufTypeVideoCapture)
	if err := ioctl(d.fd, vidiocStreamOff, unsafe.Pointer(&bufType)); err != nil {
		return fmt.Errorf("VIDIOC_STREAMOFF に失敗: %w", err)
	}
	d.streaming = false
	return nil
}

// DequeueReady はデバイスの準備をタイムアウト付きで待ち、
// データの入ったスロットをデキューする。
// タイムアウトとEAGAINはエラーではなく ready=false として返す。
func (d *Device) DequeueReady(timeout time.Duration) (index int, ready bool, err error) {
	// EINTRの再試行は全体の締め切りを守る（毎回タイムアウトを引き直さない）
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, false, nil
		}

		var fds unix.FdSet
		fds.Zero()
		fds.Set(d.fd)
		tv := unix.NsecToTimeval(remaining.Nanoseconds())

		n, serr := unix.Select(d.fd+1, &fds, nil, nil, &tv)
		if serr == unix.EINTR {
			// シグナル割り込みは残り時間で再試行する
			continue
		}
		if serr != nil {
			return 0, false, fmt.Errorf("select に失敗: %w", serr)
		}
		if n == 0 {
			// タイムアウト: まだデータがない
			return 0, false, nil
		}
		break
	}

	buf := v4l2Buffer{
		typ:    bufTypeVideoCapture,
		memory: memoryMMap,
	}
	if err := ioctl(d.fd, vidiocDQBuf, unsafe.Pointer(&buf)); err != nil {
		if err == unix.EAGAIN {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("VIDIOC_DQBUF に失敗: %w", err)
	}

	if err := d.markDequeued(int(buf.index)); err != nil {
		return 0, false, err
	}
	return int(buf.index), true, nil
}

// Requeue はスロットの所有権をカーネルに返す。
// 呼び出し側はスロットのメモリを読み終えていなければならない。
func (d *Device) Requeue(index int) error {
	if err := d.markRequeued(index); err != nil {
		return err
	}

	buf := v4l2Buffer{
		typ:    bufTypeVideoCapture,
		memory: memoryMMap,
		index:  uint32(index),
	}
	if err := ioctl(d.fd, vidiocQBuf, unsafe.Pointer(&buf)); err != nil {
		// 失敗した場合、スロットはアプリケーション所有のまま
		d.slots[index].owner = ownerApp
		return fmt.Errorf("VIDIOC_QBUF (requeue, index %d) に失敗: %w", index, err)
	}
	return nil
}

// markDequeued はスロットをアプリケーション所有に遷移させる
func (d *Device) markDequeued(index int) error {
	if index < 0 || index >= len(d.slots) {
		return fmt.Errorf("不正なスロットインデックス: %d", index)
	}
	if d.slots[index].owner != ownerKernel {
		return fmt.Errorf("スロット %d は既にアプリケーションが所有しています", index)
	}
	d.slots[index].owner = ownerApp
	return nil
}

// markRequeued はスロットをカーネル所有に遷移させる
func (d *Device) markRequeued(index int) error {
	if index < 0 || index >= len(d.slots) {
		return fmt.Errorf("不正なスロットインデックス: %d", index)
	}
	if d.slots[index].owner != ownerApp {
		return fmt.Errorf("スロット %d はアプリケーションが所有していません", index)
	}
	d.slots[index].owner = ownerKernel
	return nil
}

// Slot はデキュー済みスロットのメモリ領域を返す
func (d *Device) Slot(index int) []byte {
	return d.slots[index].data
}

// Close はストリーミング停止・mmap解除・fdクローズを行う。
// 各解放は生成済みの場合のみ実行し、何度呼んでも安全。
func (d *Device) Close() error {
	if !d.opened {
		return nil
	}

	_ = d.StreamOff()

	for i := range d.slots {
		if d.slots[i].data != nil {
			_ = unix.Munmap(d.slots[i].data)
			d.slots[i].data = nil
		}
	}
	d.slots = nil

	err := unix.Close(d.fd)
	d.opened = false
	return err
}

// Width はネゴシエーション済みの幅を返す
func (d *Device) Width() int { return int(d.width) }

// Height はネゴシエーション済みの高さを返す
func (d *Device) Height() int { return int(d.height) }

// Card はQUERYCAPで取得したカード名を返す
func (d *Device) Card() string { return d.card }

// Path はデバイスパスを返す
func (d *Device) Path() string { return d.path }

// SlotCount は確保されたバッファスロット数を返す
func (d *Device) SlotCount() int { return len(d.slots) }
