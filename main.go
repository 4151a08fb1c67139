package main

import (
	"log"
	"os"

	"kagami/internal/audio"
	"kagami/internal/camera"
	"kagami/internal/config"
	"kagami/internal/run"
	"kagami/internal/server"
	"kagami/internal/v4l2"
	"kagami/internal/viewer"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	state := run.NewState()
	coord := run.NewCoordinator(state)
	log.Printf("セッション開始: %s", coord.SessionID())

	// 映像デバイスを開いてフォーマットを交渉する
	// 以降デバイスはキャプチャワーカーが専有し、ワーカーが解放する
	dev, err := v4l2.Open(cfg.Video.Device)
	if err != nil {
		log.Fatalf("映像デバイスを開けませんでした: %v", err)
	}

	if err := dev.Negotiate(cfg.Video.Width, cfg.Video.Height); err != nil {
		log.Printf("フォーマットの交渉に失敗しました: %v", err)
		_ = dev.Close()
		os.Exit(1)
	}
	log.Printf("映像デバイス準備完了: %s (%s) %dx%d", dev.Path(), dev.Card(), dev.Width(), dev.Height())

	// デバイスが丸めた解像度を正とする
	cfg.Video.Width = dev.Width()
	cfg.Video.Height = dev.Height()

	pres := viewer.New(dev.Path(), dev.Width(), dev.Height(), state.Stop)
	store := camera.NewStore(dev.Width(), dev.Height())

	// 音声パススルー。初期化失敗は起動時の致命的エラー
	audioWorker, err := audio.NewWorker(cfg.Audio, state)
	if err != nil {
		log.Printf("音声の初期化に失敗しました: %v", err)
		_ = dev.Close()
		os.Exit(1)
	}
	defer audioWorker.Close()

	// 補助HTTPサーバー
	var srv *server.Server
	if cfg.Server.Enabled {
		srv = server.New(cfg, coord.SessionID(), store, audioWorker.DroppedBytes)
		srv.Start()
		defer func() {
			if err := srv.Shutdown(); err != nil {
				log.Printf("%v", err)
			}
		}()
	}

	if err := dev.StreamOn(); err != nil {
		// 生成の逆順で解放してから終了する
		log.Printf("ストリーミングの開始に失敗しました: %v", err)
		if srv != nil {
			_ = srv.Shutdown()
		}
		audioWorker.Close()
		_ = dev.Close()
		os.Exit(1)
	}

	capture := camera.NewWorker(dev, pres, store, state, dev.Width(), dev.Height(), cfg.Video.DequeueTimeout)
	coord.Go("capture", capture.Run)
	coord.Go("audio", audioWorker.Run)

	// シグナル・ワーカー側の停止要求をイベントループの終了につなぐ
	coord.WatchSignals()
	coord.WatchState(pres.Quit)

	// イベントループはメインゴルーチンで実行する
	pres.Run()

	// ウィンドウが閉じたら全ワーカーを合流させてから後始末する
	coord.Wait()
	log.Println("終了しました")
}
