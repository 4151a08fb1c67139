// Package main はデバイス一覧を表示するprobeコマンドの実装です
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gen2brain/malgo"

	"kagami/internal/v4l2"
)

func main() {
	// コマンドラインオプション
	var (
		videoOnly = flag.Bool("video", false, "映像デバイスのみ表示")
		audioOnly = flag.Bool("audio", false, "音声デバイスのみ表示")
		help      = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("Kagami probe")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  probe [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if !*audioOnly {
		probeVideo()
	}
	if !*videoOnly {
		probeAudio()
	}
}

// probeVideo はキャプチャ可能な映像デバイスを列挙する
func probeVideo() {
	devices, err := v4l2.ScanDevices()
	if err != nil {
		log.Fatalf("映像デバイスの走査に失敗しました: %v", err)
	}

	fmt.Println("映像デバイス:")
	if len(devices) == 0 {
		fmt.Println("  （見つかりませんでした）")
		return
	}
	for _, d := range devices {
		fmt.Printf("  %s: %s\n", d.Path, d.Card)
	}
}

// probeAudio は録音・再生デバイスをインデックスつきで列挙する
func probeAudio() {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {})
	if err != nil {
		log.Fatalf("音声コンテキストの初期化に失敗しました: %v", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	printDevices := func(label string, kind malgo.DeviceType) {
		infos, err := ctx.Devices(kind)
		if err != nil {
			log.Printf("%sデバイスの列挙に失敗しました: %v", label, err)
			return
		}
		fmt.Printf("%sデバイス:\n", label)
		if len(infos) == 0 {
			fmt.Println("  （見つかりませんでした）")
			return
		}
		for i, info := range infos {
			fmt.Printf("  %d: %s\n", i, info.Name())
		}
	}

	printDevices("録音", malgo.Capture)
	printDevices("再生", malgo.Playback)
}
