package config

import (
	"time"
)

type Capture struct {
	ListenAddr     string        `default:"0.0.0.0:5004"` // RTP 接收地址
	ReadTimeout    time.Duration `default:"1s"`           // 单次接收超时，决定停止的响应时间
	ReadBufferSize int           `default:"2048"`         // 单个数据报最大长度
	NetworkBuffer  int           // socket 接收缓冲，0 使用系统默认
	BindRetry      int           // 绑定失败后的重试次数
	AutoStart      bool          // 启动时自动开始接收
	SessionTTL     time.Duration // 会话空闲超时，0 表示永不清理
}

type Relay struct {
	IdleTimeout      time.Duration `default:"1s"`   // 播放端等待数据的超时
	KeepaliveSilence bool          `default:"true"` // 空闲时输出静音保持播放
	MaxChunks        int           // 转发队列最大长度，0 表示不限
}

type Engine struct {
	HTTP
	Capture         Capture
	Relay           Relay
	LogLang         string        `default:"zh"`   //日志语言
	LogLevel        string        `default:"info"` //日志级别
	SummaryInterval time.Duration `default:"1s"`   //SSE 推送间隔
}

var Global *Engine
