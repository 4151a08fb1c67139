package audio

import (
	"bytes"
	"testing"
)

func TestRingWriteRead(t *testing.T) {
	var r ring

	data := []byte{1, 2, 3, 4, 5}
	r.Write(data)

	if got := r.Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}

	buf := make([]byte, 8)
	n := r.Read(buf)
	if n != 5 {
		t.Errorf("Read() = %d, want 5", n)
	}
	if !bytes.Equal(buf[:n], data) {
		t.Errorf("読み出したデータが一致しない: %v", buf[:n])
	}
	if got := r.Len(); got != 0 {
		t.Errorf("読み出し後の Len() = %d, want 0", got)
	}
}

func TestRingPartialRead(t *testing.T) {
	var r ring
	r.Write([]byte{1, 2, 3, 4})

	buf := make([]byte, 2)
	if n := r.Read(buf); n != 2 || !bytes.Equal(buf, []byte{1, 2}) {
		t.Errorf("1回目の読み出し: n=%d buf=%v", n, buf)
	}
	if n := r.Read(buf); n != 2 || !bytes.Equal(buf, []byte{3, 4}) {
		t.Errorf("2回目の読み出し: n=%d buf=%v", n, buf)
	}
}

func TestRingOverwriteDropsOldest(t *testing.T) {
	var r ring

	// 容量いっぱいまで書き込んでから追加で書くと、古いデータが消える
	first := bytes.Repeat([]byte{0xAA}, ringCapacity)
	r.Write(first)
	r.Write([]byte{1, 2, 3})

	if got := r.Len(); got != ringCapacity {
		t.Errorf("上書き後の Len() = %d, want %d", got, ringCapacity)
	}
	if got := r.Dropped(); got != 3 {
		t.Errorf("Dropped() = %d, want 3", got)
	}

	// 末尾3バイトは新しいデータであること
	buf := make([]byte, ringCapacity)
	r.Read(buf)
	if !bytes.Equal(buf[ringCapacity-3:], []byte{1, 2, 3}) {
		t.Errorf("末尾が新しいデータで上書きされていない: %v", buf[ringCapacity-3:])
	}
}

func TestRingOversizedWrite(t *testing.T) {
	var r ring

	// 容量を超える1回の書き込みは末尾だけが残る
	big := make([]byte, ringCapacity+10)
	for i := range big {
		big[i] = byte(i % 251)
	}
	r.Write(big)

	if got := r.Len(); got != ringCapacity {
		t.Errorf("Len() = %d, want %d", got, ringCapacity)
	}
	if got := r.Dropped(); got != 10 {
		t.Errorf("Dropped() = %d, want 10", got)
	}

	buf := make([]byte, ringCapacity)
	r.Read(buf)
	if !bytes.Equal(buf, big[10:]) {
		t.Error("容量超過の書き込みは末尾が残るべき")
	}
}

func TestRingWrapAround(t *testing.T) {
	var r ring

	// 先頭位置をずらしてから巻き戻しをまたぐ書き込みと読み出し
	r.Write(bytes.Repeat([]byte{0x11}, ringCapacity-2))
	buf := make([]byte, ringCapacity-2)
	r.Read(buf)

	data := []byte{1, 2, 3, 4, 5}
	r.Write(data)

	out := make([]byte, 5)
	if n := r.Read(out); n != 5 || !bytes.Equal(out, data) {
		t.Errorf("巻き戻しをまたぐ読み出し: n=%d out=%v", n, out)
	}
}
