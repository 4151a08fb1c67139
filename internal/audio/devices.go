package audio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gen2brain/malgo"
)

// DefaultDevice は明示選択なし（システムデフォルト）を表すインデックス
const DefaultDevice = -1

// listDevices は指定種別のデバイス情報を列挙順で返す
func listDevices(ctx *malgo.AllocatedContext, kind malgo.DeviceType) ([]malgo.DeviceInfo, error) {
	infos, err := ctx.Devices(kind)
	if err != nil {
		return nil, fmt.Errorf("デバイスの列挙に失敗: %w", err)
	}
	return infos, nil
}

// deviceNames はデバイス情報から名前だけを取り出す
func deviceNames(infos []malgo.DeviceInfo) []string {
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	return names
}

// ResolveDevice はセレクタ文字列をデバイスのインデックスに解決する
//
// 解決規則:
//  1. 空文字列ならシステムデフォルト
//  2. 数値ならインデックスとして解釈する。範囲外は診断を添えてデフォルトに落とす
//  3. それ以外はデバイス名の部分一致で、列挙順の最初の一致を選ぶ
//  4. 一致なしも診断を添えてデフォルトに落とす
//
// 戻り値のインデックスが DefaultDevice のときはデバイスIDを指定せず初期化する。
// note は選択結果の説明で、ログ出力用。
func ResolveDevice(names []string, selector string) (index int, note string) {
	if selector == "" {
		return DefaultDevice, "デフォルトのデバイスを使用"
	}

	if n, err := strconv.Atoi(selector); err == nil {
		if n >= 0 && n < len(names) {
			return n, fmt.Sprintf("デバイス %d を選択: %s", n, names[n])
		}
		return DefaultDevice, fmt.Sprintf("インデックス %d は範囲外（デバイス数 %d）、デフォルトを使用", n, len(names))
	}

	for i, name := range names {
		if strings.Contains(name, selector) {
			return i, fmt.Sprintf("デバイス %d を選択: %s（%q に一致）", i, name, selector)
		}
	}
	return DefaultDevice, fmt.Sprintf("%q に一致するデバイスなし、デフォルトを使用", selector)
}

// ClampIndex はインデックスを列挙範囲に収める
// 範囲外は診断を添えてデフォルトに落とす。
func ClampIndex(names []string, index int) (int, string) {
	if index == DefaultDevice {
		return DefaultDevice, "デフォルトのデバイスを使用"
	}
	if index < 0 || index >= len(names) {
		return DefaultDevice, fmt.Sprintf("インデックス %d は範囲外（デバイス数 %d）、デフォルトを使用", index, len(names))
	}
	return index, fmt.Sprintf("デバイス %d を選択: %s", index, names[index])
}
