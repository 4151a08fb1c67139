// Package server はプレビューの状態確認用の補助HTTPサーバーを提供する
//
// # 責務
// - ヘルスチェックとステータスの提供
// - 最新フレームのJPEGスナップショット配信
//
// # 仕様
// - サーバーはプレビューの補助であり、バインド失敗は致命的エラーとしない
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kagami/internal/camera"
	"kagami/internal/config"
)

// AudioStats は音声ワーカーの統計を取得する関数
// 音声なしで起動した場合は nil でよい。
type AudioStats func() (droppedBytes uint64)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	httpServer *http.Server
	engine     *gin.Engine

	sessionID  string
	store      *camera.Store
	audioStats AudioStats
	startedAt  time.Time
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config, sessionID string, store *camera.Store, audioStats AudioStats) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		config:     cfg,
		engine:     engine,
		sessionID:  sessionID,
		store:      store,
		audioStats: audioStats,
		startedAt:  time.Now(),
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	s.setupRoutes()
	return s
}

// setupRoutes はHTTPルートを設定する
func (s *Server) setupRoutes() {
	// ヘルスチェックエンドポイント
	s.engine.GET("/health", s.handleHealth)

	// APIエンドポイント
	s.engine.GET("/api/status", s.handleStatus)

	// スナップショット配信
	s.engine.GET("/snapshot.jpg", s.handleSnapshot)

	// ルートハンドラ（簡単な確認用）
	s.engine.GET("/", s.handleRoot)
}

// Start はサーバーをバックグラウンドで起動する
// バインド失敗はログに残すだけで、プレビュー本体は継続する。
func (s *Server) Start() {
	go func() {
		log.Printf("HTTPサーバーを起動しています: %s", s.config.ServerAddress())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTPサーバーの起動に失敗（プレビューは継続）: %v", err)
		}
	}()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}
	return nil
}
