package viewer

import (
	"image"
	"testing"
)

// TestFitRect は整数倍スケーリングの矩形計算をテストする
func TestFitRect(t *testing.T) {
	testCases := []struct {
		name                   string
		srcW, srcH, dstW, dstH int
		want                   image.Rectangle
	}{
		{
			name: "ちょうど2倍",
			srcW: 640, srcH: 480, dstW: 1280, dstH: 960,
			want: image.Rect(0, 0, 1280, 960),
		},
		{
			name: "片方の軸で制限されて1倍・中央配置",
			srcW: 640, srcH: 480, dstW: 1000, dstH: 1000,
			want: image.Rect(180, 260, 180+640, 260+480),
		},
		{
			name: "等倍",
			srcW: 640, srcH: 480, dstW: 640, dstH: 480,
			want: image.Rect(0, 0, 640, 480),
		},
		{
			name: "出力面がソースより小さくても最低1倍",
			srcW: 640, srcH: 480, dstW: 320, dstH: 240,
			want: image.Rect((320-640)/2, (240-480)/2, (320-640)/2+640, (240-480)/2+480),
		},
		{
			name: "縦長の出力面",
			srcW: 640, srcH: 480, dstW: 1280, dstH: 1600,
			want: image.Rect(0, (1600-960)/2, 1280, (1600-960)/2+960),
		},
		{
			name: "3倍まで拡大",
			srcW: 320, srcH: 240, dstW: 1000, dstH: 760,
			want: image.Rect((1000-960)/2, (760-720)/2, (1000-960)/2+960, (760-720)/2+720),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FitRect(tc.srcW, tc.srcH, tc.dstW, tc.dstH)
			if got != tc.want {
				t.Errorf("FitRect(%d,%d,%d,%d) = %v, want %v",
					tc.srcW, tc.srcH, tc.dstW, tc.dstH, got, tc.want)
			}
		})
	}
}

// TestFitRectIntegerScaleOnly は矩形が常にソースの整数倍であることを検証する
func TestFitRectIntegerScaleOnly(t *testing.T) {
	srcW, srcH := 640, 480
	for dstW := srcW; dstW < 4*srcW; dstW += 97 {
		for dstH := srcH; dstH < 4*srcH; dstH += 83 {
			r := FitRect(srcW, srcH, dstW, dstH)
			if r.Dx()%srcW != 0 || r.Dy()%srcH != 0 {
				t.Fatalf("非整数倍の矩形が生成されました: dst=%dx%d rect=%v", dstW, dstH, r)
			}
			if r.Dx()/srcW != r.Dy()/srcH {
				t.Fatalf("縦横の倍率が一致しません: dst=%dx%d rect=%v", dstW, dstH, r)
			}
		}
	}
}
