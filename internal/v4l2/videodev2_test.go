//go:build linux && (amd64 || arm64)

package v4l2

import "testing"

// TestIoctlRequestCodes は計算されたioctlリクエストコードが
// カーネルヘッダの既知の値と一致することを検証する
func TestIoctlRequestCodes(t *testing.T) {
	testCases := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"VIDIOC_QUERYCAP", vidiocQuerycap, 0x80685600},
		{"VIDIOC_S_FMT", vidiocSFmt, 0xc0d05605},
		{"VIDIOC_REQBUFS", vidiocReqbufs, 0xc0145608},
		{"VIDIOC_QUERYBUF", vidiocQuerybuf, 0xc0585609},
		{"VIDIOC_QBUF", vidiocQBuf, 0xc058560f},
		{"VIDIOC_DQBUF", vidiocDQBuf, 0xc0585611},
		{"VIDIOC_STREAMON", vidiocStreamOn, 0x40045612},
		{"VIDIOC_STREAMOFF", vidiocStreamOff, 0x40045613},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("リクエストコードが不正です: got 0x%08x, want 0x%08x", tc.got, tc.want)
			}
		})
	}
}

// TestFourCC はFourCCエンコードを検証する
func TestFourCC(t *testing.T) {
	if got := fourcc('Y', 'U', 'Y', 'V'); got != 0x56595559 {
		t.Errorf("YUYVのFourCCが不正です: 0x%08x", got)
	}
	if PixFmtYUYV != 0x56595559 {
		t.Errorf("PixFmtYUYVが不正です: 0x%08x", PixFmtYUYV)
	}
}

// TestCStr はNUL終端文字列の変換をテストする
func TestCStr(t *testing.T) {
	testCases := []struct {
		name string
		in   []byte
		want string
	}{
		{"NUL終端あり", []byte{'u', 'v', 'c', 0, 0, 0}, "uvc"},
		{"NUL終端なし", []byte{'a', 'b', 'c'}, "abc"},
		{"空", []byte{0}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cstr(tc.in); got != tc.want {
				t.Errorf("cstr(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// TestExtractDeviceNumber はデバイスパスからの番号抽出をテストする
func TestExtractDeviceNumber(t *testing.T) {
	testCases := []struct {
		path string
		want int
	}{
		{"/dev/video0", 0},
		{"/dev/video12", 12},
		{"/dev/media0", 0},
	}

	for _, tc := range testCases {
		if got := extractDeviceNumber(tc.path); got != tc.want {
			t.Errorf("extractDeviceNumber(%s) = %d, want %d", tc.path, got, tc.want)
		}
	}
}
