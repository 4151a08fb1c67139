package viewer

import "image"

// FitRect は整数倍スケーリングの描画矩形を計算する
//
// 倍率は max(1, floor(min(dstW/srcW, dstH/srcH))) で、
// 矩形は srcW*scale × srcH*scale を出力面の中央に配置する。
// 非整数倍のスケーリング（にじみの原因）は決して行わない。
func FitRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	sx := dstW / srcW
	sy := dstH / srcH

	scale := sx
	if sy < sx {
		scale = sy
	}
	if scale < 1 {
		scale = 1
	}

	w := srcW * scale
	h := srcH * scale
	x := (dstW - w) / 2
	y := (dstH - h) / 2

	return image.Rect(x, y, x+w, y+h)
}
