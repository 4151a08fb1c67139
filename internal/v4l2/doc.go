// Package v4l2 はV4L2キャプチャデバイスのバッファリングを担う
//
// # 責務
// - キャプチャデバイスのオープンと能力確認 (QUERYCAP)
// - ピクセルフォーマット・解像度のネゴシエーション (S_FMT)
// - カーネル共有メモリバッファリングの管理 (REQBUFS/QUERYBUF/mmap)
// - ストリーミングの開始・停止 (STREAMON/STREAMOFF)
// - フレームバッファのデキュー・再エンキュー (DQBUF/QBUF)
// - /dev/video* デバイスの列挙とカード名取得
//
// # 仕様
// - cgo を使わない純Go実装（ioctl と mmap を直接発行する）
// - 各バッファスロットは常にカーネルまたはアプリケーションの
//   どちらか一方が所有する。デキューでアプリケーション所有に、
//   再エンキューでカーネル所有に遷移する
// - スロット数はネゴシエーション時に固定される（4を要求、最低2を要求）
// - カーネルABI構造体はコンパイル時にサイズを検証する
//
// # 前提要件
//   - Linux (amd64 / arm64)
//   - videoグループへの参加: デバイスアクセス権限
//     sudo usermod -a -G video $USER
package v4l2
