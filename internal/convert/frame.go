package convert

import (
	"image"
	"image/color"
)

// BytesPerPixel はRGB24の1ピクセルあたりのバイト数
const BytesPerPixel = 3

// Frame はRGB24のピクセルバッファを表す
// サイズは常に 幅×高さ×3 バイトで、一度確保したら毎フレーム再利用する。
// image.Image を実装するため、そのままJPEGエンコードや画面表示に使える。
type Frame struct {
	Pix    []byte // R, G, B の順に詰められたピクセルデータ
	width  int
	height int
}

// NewFrame は指定解像度のフレームバッファを確保する
func NewFrame(width, height int) *Frame {
	return &Frame{
		Pix:    make([]byte, width*height*BytesPerPixel),
		width:  width,
		height: height,
	}
}

// Width はフレームの幅を返す
func (f *Frame) Width() int { return f.width }

// Height はフレームの高さを返す
func (f *Frame) Height() int { return f.height }

// ColorModel は image.Image の実装
func (f *Frame) ColorModel() color.Model { return color.RGBAModel }

// Bounds は image.Image の実装
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// At は image.Image の実装
func (f *Frame) At(x, y int) color.Color {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return color.RGBA{}
	}
	i := (y*f.width + x) * BytesPerPixel
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: 0xff}
}

// Opaque は全ピクセルが不透明であることを示す
// image/jpeg がアルファ合成をスキップできるようにする
func (f *Frame) Opaque() bool { return true }

// CopyFrom は同じ解像度のフレームからピクセルデータをコピーする
func (f *Frame) CopyFrom(src *Frame) {
	copy(f.Pix, src.Pix)
}
