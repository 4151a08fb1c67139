//go:build linux && (amd64 || arm64)

package v4l2

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DeviceInfo は列挙されたキャプチャデバイスの情報
type DeviceInfo struct {
	Path   string // デバイスパス
	Card   string // QUERYCAPで取得したカード名
	Number int    // デバイス番号
}

var deviceNumberRe = regexp.MustCompile(`video(\d+)$`)

// ScanDevices はシステム内のV4L2キャプチャデバイスを列挙する
// デバイス番号の昇順で返し、キャプチャに対応しないノードは除外する
func ScanDevices() ([]DeviceInfo, error) {
	matches, err := filepath.Glob("/dev/video*")
	if err != nil {
		return nil, fmt.Errorf("デバイスのスキャンに失敗: %w", err)
	}

	sort.Slice(matches, func(i, j int) bool {
		return extractDeviceNumber(matches[i]) < extractDeviceNumber(matches[j])
	})

	var devices []DeviceInfo
	for _, path := range matches {
		card, err := QueryName(path)
		if err != nil {
			// 開けない・キャプチャでないノードは黙ってスキップする
			continue
		}
		devices = append(devices, DeviceInfo{
			Path:   path,
			Card:   card,
			Number: extractDeviceNumber(path),
		})
	}

	return devices, nil
}

// QueryName はデバイスのカード名をQUERYCAPで取得する
// キャプチャに対応しないデバイスはエラーを返す
func QueryName(path string) (string, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		return "", fmt.Errorf("%s のオープンに失敗: %w", path, err)
	}
	defer func() {
		_ = unix.Close(fd)
	}()

	var caps v4l2Capability
	if err := ioctl(fd, vidiocQuerycap, unsafe.Pointer(&caps)); err != nil {
		return "", fmt.Errorf("VIDIOC_QUERYCAP に失敗: %w", err)
	}

	effective := caps.capabilities
	if effective&capDeviceCaps != 0 {
		effective = caps.deviceCaps
	}
	if effective&capVideoCapture == 0 {
		return "", fmt.Errorf("%s はビデオキャプチャに対応していません", path)
	}

	return cstr(caps.card[:]), nil
}

// extractDeviceNumber はデバイスパスから番号を抽出する
func extractDeviceNumber(path string) int {
	matches := deviceNumberRe.FindStringSubmatch(path)
	if len(matches) < 2 {
		return 0
	}
	num, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	return num
}
