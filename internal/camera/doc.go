// Package camera はキャプチャループと最新フレームの保持を担う
//
// # 責務
// - デバイスからのフレーム取得・変換・表示・返却のループ
// - 最新フレームのスナップショット保持（HTTP配信用）
//
// # 仕様
// - バッファスロットは表示用コピーが完了してからカーネルへ返却する
// - デバイスの致命的エラーは停止要求として全体へ伝播する
// - タイムアウトはエラーではなく、停止要求の確認機会として扱う
package camera
