//go:build linux && (amd64 || arm64)

package v4l2

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// V4L2の基本定数
const (
	bufTypeVideoCapture = 1 // V4L2_BUF_TYPE_VIDEO_CAPTURE
	fieldNone           = 1 // V4L2_FIELD_NONE（プログレッシブ）
	memoryMMap          = 1 // V4L2_MEMORY_MMAP
)

// ケイパビリティフラグ
const (
	capVideoCapture = 0x00000001 // V4L2_CAP_VIDEO_CAPTURE
	capStreaming    = 0x04000000 // V4L2_CAP_STREAMING
	capDeviceCaps   = 0x80000000 // V4L2_CAP_DEVICE_CAPS
)

// PixFmtYUYV はパックドYUV 4:2:2（2ピクセルで4バイト）のFourCC
var PixFmtYUYV = fourcc('Y', 'U', 'Y', 'V')

// fourcc はピクセルフォーマット識別子を組み立てる
func fourcc(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// コンパイル時のサイズ検証
// カーネルABIと構造体レイアウトが一致しない場合はここでコンパイルに失敗する
var (
	_ [0]struct{} = [unsafe.Sizeof(v4l2Capability{}) - 104]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2PixFormat{}) - 48]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Format{}) - 208]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2RequestBuffers{}) - 20]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Timecode{}) - 16]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Buffer{}) - 88]struct{}{}

	_ [0]struct{} = [unsafe.Offsetof(v4l2Buffer{}.timestamp) - 24]struct{}{}
	_ [0]struct{} = [unsafe.Offsetof(v4l2Buffer{}.memory) - 60]struct{}{}
	_ [0]struct{} = [unsafe.Offsetof(v4l2Buffer{}.length) - 72]struct{}{}
)

// v4l2Capability は struct v4l2_capability（104バイト）
type v4l2Capability struct {
	driver       [16]byte
	card         [32]byte
	busInfo      [32]byte
	version      uint32
	capabilities uint32
	deviceCaps   uint32
	reserved     [3]uint32
}

// v4l2PixFormat は struct v4l2_pix_format（48バイト）
type v4l2PixFormat struct {
	width        uint32
	height       uint32
	pixelformat  uint32
	field        uint32
	bytesperline uint32
	sizeimage    uint32
	colorspace   uint32
	priv         uint32
	flags        uint32
	ycbcrEnc     uint32
	quantization uint32
	xferFunc     uint32
}

// v4l2Format は struct v4l2_format（208バイト）
// fmt は200バイトの共用体で、キャプチャ時は v4l2PixFormat として解釈する
type v4l2Format struct {
	typ uint32
	_   [4]byte // 共用体を64ビット境界に揃えるパディング
	fmt [200]byte
}

// pix は共用体をピクセルフォーマットとして返す
func (f *v4l2Format) pix() *v4l2PixFormat {
	return (*v4l2PixFormat)(unsafe.Pointer(&f.fmt[0]))
}

// v4l2RequestBuffers は struct v4l2_requestbuffers（20バイト）
type v4l2RequestBuffers struct {
	count    uint32
	typ      uint32
	memory   uint32
	reserved [2]uint32
}

// v4l2Timecode は struct v4l2_timecode（16バイト）
type v4l2Timecode struct {
	typ      uint32
	flags    uint32
	frames   uint8
	seconds  uint8
	minutes  uint8
	hours    uint8
	userbits [4]uint8
}

// v4l2Buffer は struct v4l2_buffer（64ビットで88バイト）
// m は共用体で、MMAPバッファでは先頭32ビットがオフセットになる
type v4l2Buffer struct {
	index     uint32
	typ       uint32
	bytesused uint32
	flags     uint32
	field     uint32
	_         uint32 // timeval を8バイト境界に揃えるパディング
	timestamp unix.Timeval
	timecode  v4l2Timecode
	sequence  uint32
	memory    uint32
	offset    uint32 // 共用体 m（MMAPではオフセット）
	_         uint32 // 共用体の残り
	length    uint32
	reserved2 uint32
	requestFD uint32
	_         uint32 // 末尾パディング
}

// ioctlリクエストのエンコード（linux/ioctl.h の _IOC 相当）
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return (dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift)
}

func ior(typ, nr, size uintptr) uintptr {
	return ioc(iocRead, typ, nr, size)
}

func iow(typ, nr, size uintptr) uintptr {
	return ioc(iocWrite, typ, nr, size)
}

func iowr(typ, nr, size uintptr) uintptr {
	return ioc(iocRead|iocWrite, typ, nr, size)
}

// VIDIOC_* リクエストコード
var (
	vidiocQuerycap  = ior('V', 0, unsafe.Sizeof(v4l2Capability{}))
	vidiocSFmt      = iowr('V', 5, unsafe.Sizeof(v4l2Format{}))
	vidiocReqbufs   = iowr('V', 8, unsafe.Sizeof(v4l2RequestBuffers{}))
	vidiocQuerybuf  = iowr('V', 9, unsafe.Sizeof(v4l2Buffer{}))
	vidiocQBuf      = iowr('V', 15, unsafe.Sizeof(v4l2Buffer{}))
	vidiocDQBuf     = iowr('V', 17, unsafe.Sizeof(v4l2Buffer{}))
	vidiocStreamOn  = iow('V', 18, unsafe.Sizeof(uint32(0)))
	vidiocStreamOff = iow('V', 19, unsafe.Sizeof(uint32(0)))
)

// ioctl はEINTRを透過的に再試行してioctlを発行する
func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
		if errno == 0 {
			return nil
		}
		if errno == unix.EINTR {
			continue
		}
		return errno
	}
}

// cstr はNUL終端のバイト列をGoの文字列に変換する
func cstr(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
