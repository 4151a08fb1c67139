// Package run はワーカー横断の実行状態と停止の伝播を担う
//
// # 責務
// - 実行中フラグの共有（全ワーカーのループ継続条件）
// - シグナル・UI操作・致命的エラーからの停止要求の一本化
//
// # 仕様
// - 状態遷移は「実行中→停止」の一方向のみ。停止後に再開することはない
// - Stop は何度呼んでもよく、どのゴルーチンから呼んでもよい
package run

import "sync/atomic"

// State は全ワーカーが共有する実行状態
type State struct {
	running atomic.Bool
}

// NewState は実行中状態の State を返す
func NewState() *State {
	s := &State{}
	s.running.Store(true)
	return s
}

// Running は実行継続すべきかを返す。各ワーカーのループ条件に使う
func (s *State) Running() bool {
	return s.running.Load()
}

// Stop は停止を要求する。冪等で、複数ゴルーチンから呼んでよい
func (s *State) Stop() {
	s.running.Store(false)
}
