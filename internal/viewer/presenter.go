// Package viewer はプレビューウィンドウへのフレーム表示を担う
//
// # 責務
// - ネゴシエーション済み解像度のリサイズ可能ウィンドウの生成
// - 変換済みフレームのアップロードと再描画
// - 整数倍スケーリングによる描画矩形の計算
// - 終了要求（ウィンドウクローズ・Escapeキー）の通知
//
// # 仕様
// - fyneのイベントループはメインゴルーチンで実行する（描画リソースは
//   スレッド親和性を持つ）
// - キャンバスが読むラスタは描画スレッドの専有物で、fyne.Do の中でのみ
//   書き換える。取得側とは frameStage を介したコピーで受け渡す
// - Upload は同期的にコピーを完了するため、呼び出し元は戻った時点で
//   元のバッファを再利用してよい
// - 拡大はニアレストネイバー（ピクセル等倍）で行い、補間によるにじみを避ける
package viewer

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"kagami/internal/convert"
)

// Presenter はプレビューウィンドウとストリーミングテクスチャを管理する
type Presenter struct {
	fyneApp fyne.App
	window  fyne.Window
	image   *canvas.Image

	// 表示用ラスタ。描画スレッドの専有物で、fyne.Do の中でのみ触る
	raster *convert.Frame
	// 取得側との受け渡し点
	stage *frameStage

	quitOnce sync.Once
	onQuit   func()
}

// New はプレビューウィンドウを作成する
// onQuit はウィンドウクローズまたはEscapeキーで一度だけ呼ばれる。
func New(title string, width, height int, onQuit func()) *Presenter {
	a := app.New()
	w := a.NewWindow(title)

	p := &Presenter{
		fyneApp: a,
		window:  w,
		raster:  convert.NewFrame(width, height),
		stage:   newFrameStage(width, height),
		onQuit:  onQuit,
	}

	img := canvas.NewImageFromImage(p.raster)
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScalePixels // 整数倍前提なので補間しない
	p.image = img

	w.SetContent(container.New(newIntegerFitLayout(width, height), img))
	w.Resize(fyne.NewSize(float32(width), float32(height)))

	w.SetOnClosed(p.requestQuit)
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			p.requestQuit()
		}
	})

	return p
}

// Upload は変換済みフレームを受け渡し点にコピーする
// 戻った時点でコピーは完了しており、呼び出し元は src を再利用してよい。
// 表示用ラスタには触れないため、描画中の再描画と競合しない。
func (p *Presenter) Upload(src *convert.Frame) {
	p.stage.put(src)
}

// Draw は待機中のフレームを描画スレッド上でラスタに取り込み、再描画する
func (p *Presenter) Draw() {
	fyne.Do(func() {
		if p.stage.take(p.raster) {
			p.image.Refresh()
		}
	})
}

// Run はウィンドウを表示してイベントループを実行する
// メインゴルーチンから呼ぶこと。ループ終了までブロックする。
func (p *Presenter) Run() {
	p.window.ShowAndRun()
}

// Quit はイベントループを終了させる。どのゴルーチンから呼んでもよい
func (p *Presenter) Quit() {
	fyne.Do(func() {
		p.fyneApp.Quit()
	})
}

// requestQuit は終了要求を一度だけ通知する
func (p *Presenter) requestQuit() {
	p.quitOnce.Do(func() {
		if p.onQuit != nil {
			p.onQuit()
		}
	})
}
