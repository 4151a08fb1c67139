// Package audio はマイク入力をスピーカーへ低遅延で折り返すパススルーを担う
//
// # 責務
// - 出力デバイスの列挙と選択（番号指定・部分一致・デフォルト）
// - キャプチャデバイスと再生デバイスの初期化
// - キャプチャ→リング→再生のブリッジループ
//
// # 仕様
// - フォーマットは S16 / 44100Hz / 2ch 固定
// - リングが満杯のときは最も古いデータを捨てて新しいデータを優先する
//   （遅延の蓄積より音の欠落を選ぶ）
// - デバイスの停止通知は全体への停止要求として伝播する
//
// # 前提要件
// - 音声バックエンド（ALSA等）が利用可能であること
package audio
