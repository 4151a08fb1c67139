package audio

import (
	"strings"
	"testing"
)

func TestResolveDevice(t *testing.T) {
	names := []string{"Built-in Audio", "USB Audio Device", "HDMI Output"}

	tests := []struct {
		name     string
		selector string
		want     int
	}{
		{
			name:     "空文字列はデフォルト",
			selector: "",
			want:     DefaultDevice,
		},
		{
			name:     "数値はインデックスとして解釈",
			selector: "1",
			want:     1,
		},
		{
			name:     "インデックス0も有効",
			selector: "0",
			want:     0,
		},
		{
			name:     "範囲外のインデックスはデフォルトに落ちる",
			selector: "5",
			want:     DefaultDevice,
		},
		{
			name:     "負のインデックスはデフォルトに落ちる",
			selector: "-2",
			want:     DefaultDevice,
		},
		{
			name:     "部分一致は最初の一致を選ぶ",
			selector: "Audio",
			want:     0,
		},
		{
			name:     "固有の部分文字列で特定のデバイスを選ぶ",
			selector: "USB",
			want:     1,
		},
		{
			name:     "一致なしはデフォルトに落ちる",
			selector: "Bluetooth",
			want:     DefaultDevice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, note := ResolveDevice(names, tt.selector)
			if got != tt.want {
				t.Errorf("ResolveDevice(%q) = %d, want %d", tt.selector, got, tt.want)
			}
			if note == "" {
				t.Error("note は常に空でない説明を返すべき")
			}
		})
	}
}

func TestResolveDeviceEmptyList(t *testing.T) {
	got, note := ResolveDevice(nil, "anything")
	if got != DefaultDevice {
		t.Errorf("デバイスなしでは常にデフォルト: got %d", got)
	}
	if !strings.Contains(note, "デフォルト") {
		t.Errorf("診断にフォールバックの説明が必要: %q", note)
	}
}

func TestClampIndex(t *testing.T) {
	names := []string{"A", "B"}

	tests := []struct {
		name  string
		index int
		want  int
	}{
		{name: "デフォルト指定はそのまま", index: DefaultDevice, want: DefaultDevice},
		{name: "有効なインデックス", index: 1, want: 1},
		{name: "範囲外はデフォルトに落ちる", index: 2, want: DefaultDevice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := ClampIndex(names, tt.index)
			if got != tt.want {
				t.Errorf("ClampIndex(%d) = %d, want %d", tt.index, got, tt.want)
			}
		})
	}
}
