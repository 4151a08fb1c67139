package viewer

import "fyne.io/fyne/v2"

// integerFitLayout はプレビュー画像を整数倍スケーリングで中央配置するレイアウト
type integerFitLayout struct {
	srcW int
	srcH int
}

// newIntegerFitLayout は指定のソース解像度向けのレイアウトを作成する
func newIntegerFitLayout(srcW, srcH int) fyne.Layout {
	return &integerFitLayout{srcW: srcW, srcH: srcH}
}

// MinSize はウィンドウの最小サイズ（等倍表示）を返す
func (l *integerFitLayout) MinSize(_ []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(float32(l.srcW), float32(l.srcH))
}

// Layout は出力面のサイズから整数倍の矩形を計算して画像を配置する
func (l *integerFitLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	rect := FitRect(l.srcW, l.srcH, int(size.Width), int(size.Height))

	for _, o := range objects {
		o.Resize(fyne.NewSize(float32(rect.Dx()), float32(rect.Dy())))
		o.Move(fyne.NewPos(float32(rect.Min.X), float32(rect.Min.Y)))
	}
}
