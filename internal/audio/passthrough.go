package audio

import (
	"fmt"
	"log"
	"time"

	"github.com/gen2brain/malgo"

	"kagami/internal/config"
	"kagami/internal/run"
)

// pollInterval はブリッジループの待機時間
// キャプチャコールバック間隔より十分短くし、遅延を1ms程度に抑える。
const pollInterval = time.Millisecond

// Worker はマイク入力をスピーカーへ折り返すパススルーワーカー
type Worker struct {
	cfg   config.AudioConfig
	state *run.State

	ctx      *malgo.AllocatedContext
	capture  *malgo.Device
	playback *malgo.Device

	// キャプチャコールバックが書き、ブリッジループが読む
	captureRing ring
	// ブリッジループが書き、再生コールバックが読む
	playbackRing ring
}

// NewWorker は音声コンテキストとデバイスを初期化する
func NewWorker(cfg config.AudioConfig, state *run.State) (*Worker, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {})
	if err != nil {
		return nil, fmt.Errorf("音声コンテキストの初期化に失敗: %w", err)
	}

	w := &Worker{
		cfg:   cfg,
		state: state,
		ctx:   ctx,
	}

	if err := w.initDevices(); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func (w *Worker) initDevices() error {
	captureInfos, err := listDevices(w.ctx, malgo.Capture)
	if err != nil {
		return err
	}
	captureIdx, note := ResolveDevice(deviceNames(captureInfos), w.cfg.Selector)
	log.Printf("録音: %s", note)

	playbackInfos, err := listDevices(w.ctx, malgo.Playback)
	if err != nil {
		return err
	}
	playbackIdx, note := ClampIndex(deviceNames(playbackInfos), w.cfg.OutputIndex)
	log.Printf("再生: %s", note)

	captureConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	captureConfig.Capture.Format = malgo.FormatS16
	captureConfig.Capture.Channels = uint32(w.cfg.Channels)
	captureConfig.SampleRate = uint32(w.cfg.SampleRate)
	captureConfig.Alsa.NoMMap = 1
	if captureIdx != DefaultDevice {
		captureConfig.Capture.DeviceID = captureInfos[captureIdx].ID.Pointer()
	}

	onCapture := func(pOutput, pInput []byte, frameCount uint32) {
		if frameCount == 0 {
			return
		}
		// pInput はコールバック終了後に無効になるので即座にリングへ移す
		w.captureRing.Write(pInput)
	}

	// デバイスが予期せず止まったら（抜去など）全体を停止させる
	onStopped := func() {
		if w.state.Running() {
			log.Println("音声デバイスが停止しました")
			w.state.Stop()
		}
	}

	w.capture, err = malgo.InitDevice(w.ctx.Context, captureConfig, malgo.DeviceCallbacks{
		Data: onCapture,
		Stop: onStopped,
	})
	if err != nil {
		return fmt.Errorf("録音デバイスの初期化に失敗: %w", err)
	}

	playbackConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	playbackConfig.Playback.Format = malgo.FormatS16
	playbackConfig.Playback.Channels = uint32(w.cfg.Channels)
	playbackConfig.SampleRate = uint32(w.cfg.SampleRate)
	playbackConfig.Alsa.NoMMap = 1
	if playbackIdx != DefaultDevice {
		playbackConfig.Playback.DeviceID = playbackInfos[playbackIdx].ID.Pointer()
	}

	onPlayback := func(pOutput, pInput []byte, frameCount uint32) {
		n := w.playbackRing.Read(pOutput)
		// データが足りない分は無音で埋める
		for i := n; i < len(pOutput); i++ {
			pOutput[i] = 0
		}
	}

	w.playback, err = malgo.InitDevice(w.ctx.Context, playbackConfig, malgo.DeviceCallbacks{
		Data: onPlayback,
		Stop: onStopped,
	})
	if err != nil {
		return fmt.Errorf("再生デバイスの初期化に失敗: %w", err)
	}

	return nil
}

// Run はパススルーのブリッジループを実行する
// 停止要求まで、キャプチャリングから再生リングへチャンク単位でデータを移す。
// ゴルーチンとして起動すること。
func (w *Worker) Run() {
	if err := w.capture.Start(); err != nil {
		log.Printf("録音の開始に失敗: %v", err)
		w.state.Stop()
		return
	}
	if err := w.playback.Start(); err != nil {
		log.Printf("再生の開始に失敗: %v", err)
		_ = w.capture.Stop()
		w.state.Stop()
		return
	}

	log.Printf("音声パススルー開始 (%dHz/%dch)", w.cfg.SampleRate, w.cfg.Channels)

	chunk := make([]byte, w.cfg.ChunkSize)
	for w.state.Running() {
		if w.captureRing.Len() == 0 {
			time.Sleep(pollInterval)
			continue
		}
		n := w.captureRing.Read(chunk)
		w.playbackRing.Write(chunk[:n])
	}

	_ = w.playback.Stop()
	_ = w.capture.Stop()
	log.Println("音声パススルー停止")
}

// DroppedBytes は満杯による上書きで失われた累計バイト数を返す
func (w *Worker) DroppedBytes() uint64 {
	return w.captureRing.Dropped() + w.playbackRing.Dropped()
}

// Close はデバイスと音声コンテキストを解放する
// Run の終了後に呼ぶこと。
func (w *Worker) Close() {
	if w.playback != nil {
		w.playback.Uninit()
		w.playback = nil
	}
	if w.capture != nil {
		w.capture.Uninit()
		w.capture = nil
	}
	if w.ctx != nil {
		_ = w.ctx.Uninit()
		w.ctx.Free()
		w.ctx = nil
	}
}
