package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// デフォルト値
const (
	DefaultWidth       = 640
	DefaultHeight      = 480
	DefaultVideoDevice = "/dev/video0"

	DefaultSampleRate = 44100
	DefaultChannels   = 2
	DefaultChunkSize  = 4096
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Video  VideoConfig
	Audio  AudioConfig
	Server ServerConfig
}

// VideoConfig は映像キャプチャの設定
type VideoConfig struct {
	Width  int    // キャプチャ幅
	Height int    // キャプチャ高さ
	Device string // デバイスパス (例: /dev/video0)

	// デバイス準備待ちのタイムアウト
	DequeueTimeout time.Duration
}

// AudioConfig は音声パススルーの設定
type AudioConfig struct {
	Selector    string // 録音デバイスのセレクタ（数値インデックスまたは名前の部分一致）
	OutputIndex int    // 再生デバイスのインデックス（-1 はシステムデフォルト）
	SampleRate  int    // サンプルレート (Hz)
	Channels    int    // チャンネル数
	ChunkSize   int    // 1回の転送で移動する最大バイト数
}

// ServerConfig は補助HTTPサーバーの設定
type ServerConfig struct {
	Enabled bool   // サーバーを起動するか
	Host    string // リッスンするホスト
	Port    int    // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration // 読み込みタイムアウト
	WriteTimeout time.Duration // 書き込みタイムアウト
}

// Load は設定を読み込む
// 位置引数は [幅 高さ 映像デバイス 音声セレクタ] の順で、すべて省略可能。
// 数値として解釈できない値は中断せずデフォルト値にフォールバックする。
func Load(args []string) (*Config, error) {
	cfg := &Config{
		Video: VideoConfig{
			Width:          DefaultWidth,
			Height:         DefaultHeight,
			Device:         DefaultVideoDevice,
			DequeueTimeout: 2 * time.Second,
		},
		Audio: AudioConfig{
			Selector:    "",
			OutputIndex: getEnvAsIntOrDefault("AUDIO_OUTPUT_INDEX", -1),
			SampleRate:  DefaultSampleRate,
			Channels:    DefaultChannels,
			ChunkSize:   DefaultChunkSize,
		},
		Server: ServerConfig{
			Enabled:      os.Getenv("KAGAMI_NO_SERVER") == "",
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsIntOrDefault("SERVER_PORT", 8080),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}

	// 位置引数で上書き
	if len(args) > 0 {
		cfg.Video.Width = parseDimensionOrDefault(args[0], DefaultWidth)
	}
	if len(args) > 1 {
		cfg.Video.Height = parseDimensionOrDefault(args[1], DefaultHeight)
	}
	if len(args) > 2 && args[2] != "" {
		cfg.Video.Device = args[2]
	}
	if len(args) > 3 {
		cfg.Audio.Selector = args[3]
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return fmt.Errorf("無効な解像度: %dx%d", c.Video.Width, c.Video.Height)
	}

	// YUYVは2ピクセルで1マクロピクセルを構成するため幅は偶数でなければならない
	if c.Video.Width%2 != 0 {
		return fmt.Errorf("幅は偶数でなければなりません: %d", c.Video.Width)
	}

	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("無効なサンプルレート: %d", c.Audio.SampleRate)
	}
	if c.Audio.Channels <= 0 {
		return fmt.Errorf("無効なチャンネル数: %d", c.Audio.Channels)
	}
	if c.Audio.ChunkSize <= 0 {
		return fmt.Errorf("無効なチャンクサイズ: %d", c.Audio.ChunkSize)
	}

	if c.Server.Enabled {
		if c.Server.Port < 1 || c.Server.Port > 65535 {
			return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
		}
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// parseDimensionOrDefault は文字列を解像度の寸法として解釈する
// 数値でない値や正でない値はデフォルト値にフォールバックする
func parseDimensionOrDefault(s string, defaultValue int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}
