package server

import (
	"image/jpeg"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusResponse はシステム状態のレスポンス
type StatusResponse struct {
	Status     string    `json:"status"`
	Session    string    `json:"session"`
	Video      VideoInfo `json:"video"`
	Audio      AudioInfo `json:"audio"`
	UptimeSecs float64   `json:"uptime_seconds"`
	Timestamp  time.Time `json:"timestamp"`
}

// VideoInfo は映像キャプチャの状態
type VideoInfo struct {
	Device     string `json:"device"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	FrameCount uint64 `json:"frame_count"`
}

// AudioInfo は音声パススルーの状態
type AudioInfo struct {
	Enabled      bool   `json:"enabled"`
	DroppedBytes uint64 `json:"dropped_bytes"`
}

// ErrorResponse はエラーのレスポンス
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// handleHealth はヘルスチェックエンドポイントの実装
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

// handleStatus はシステム状態取得エンドポイントの実装
func (s *Server) handleStatus(c *gin.Context) {
	audio := AudioInfo{}
	if s.audioStats != nil {
		audio.Enabled = true
		audio.DroppedBytes = s.audioStats()
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status:  "running",
		Session: s.sessionID,
		Video: VideoInfo{
			Device:     s.config.Video.Device,
			Width:      s.config.Video.Width,
			Height:     s.config.Video.Height,
			FrameCount: s.store.Sequence(),
		},
		Audio:      audio,
		UptimeSecs: time.Since(s.startedAt).Seconds(),
		Timestamp:  time.Now(),
	})
}

// handleSnapshot は最新フレームをJPEGとして配信する
func (s *Server) handleSnapshot(c *gin.Context) {
	frame := s.store.Snapshot()
	if frame == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:     "no_frame",
			Message:   "まだフレームを受信していません",
			Timestamp: time.Now(),
		})
		return
	}

	c.Header("Content-Type", "image/jpeg")
	c.Header("Cache-Control", "no-cache")
	if err := jpeg.Encode(c.Writer, frame, &jpeg.Options{Quality: 85}); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// handleRoot はルートパスのハンドラ
func (s *Server) handleRoot(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, `<!DOCTYPE html>
<html lang="ja">
<head>
    <meta charset="UTF-8">
    <title>Kagami - ウェブカメラビューア</title>
</head>
<body>
    <h1>Kagami ウェブカメラビューア</h1>
    <p>プレビューが動作しています。</p>
    <p>ステータス: <a href="/api/status">/api/status</a></p>
    <p>スナップショット: <a href="/snapshot.jpg">/snapshot.jpg</a></p>
    <p>ヘルスチェック: <a href="/health">/health</a></p>
</body>
</html>`)
}
