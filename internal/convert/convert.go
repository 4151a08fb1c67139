// Package convert はキャプチャフォーマットから表示フォーマットへの変換を担う
//
// # 責務
// - YUYV (パックドYUV 4:2:2) からRGB24への変換
// - 変換先フレームバッファの型定義
//
// # 仕様
// - BT.601系の固定小数点変換（整数演算のみ、浮動小数点なし）
// - 共有状態を持たない純関数。同じ変換先バッファを繰り返し使える
package convert

import "fmt"

// YUYVToRGB はYUYVフレーム1枚をRGB24に変換する
//
// 入力は4バイトごとに [Y0 U Y1 V] のマクロピクセルで、2つの輝度サンプルが
// 1組の色差を共有する。輝度から16、色差から128を引いたうえで
// 固定小数点係数により各チャンネルを計算し、[0,255]にクランプする。
func YUYVToRGB(yuyv []byte, dst *Frame) error {
	w, h := dst.Width(), dst.Height()
	need := w * h * 2
	if len(yuyv) < need {
		return fmt.Errorf("入力フレームが不足しています: %dバイト (必要 %dバイト)", len(yuyv), need)
	}

	npix := w * h
	for i, j := 0, 0; i < npix; i, j = i+2, j+4 {
		y0 := int(yuyv[j+0])
		u := int(yuyv[j+1]) - 128
		y1 := int(yuyv[j+2])
		v := int(yuyv[j+3]) - 128

		c0 := y0 - 16
		c1 := y1 - 16

		out0 := i * BytesPerPixel
		dst.Pix[out0+0] = clampU8((298*c0 + 409*v + 128) >> 8)
		dst.Pix[out0+1] = clampU8((298*c0 - 100*u - 208*v + 128) >> 8)
		dst.Pix[out0+2] = clampU8((298*c0 + 516*u + 128) >> 8)

		out1 := (i + 1) * BytesPerPixel
		dst.Pix[out1+0] = clampU8((298*c1 + 409*v + 128) >> 8)
		dst.Pix[out1+1] = clampU8((298*c1 - 100*u - 208*v + 128) >> 8)
		dst.Pix[out1+2] = clampU8((298*c1 + 516*u + 128) >> 8)
	}

	return nil
}

// clampU8 は値を [0,255] にクランプする
func clampU8(x int) byte {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return byte(x)
}
