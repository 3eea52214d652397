package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mcuadros/go-defaults"
	"gopkg.in/yaml.v3"
	"m7s.live/tap/v4/log"
)

// 环境变量覆盖，优先级：环境变量>配置文件>默认值
var envOverrides = map[string]func(*Engine, string){
	"TAP_LISTENADDR": func(e *Engine, v string) { e.HTTP.ListenAddr = v },
	"TAP_CAPTURE_LISTENADDR": func(e *Engine, v string) { e.Capture.ListenAddr = v },
	"TAP_LOGLEVEL": func(e *Engine, v string) { e.LogLevel = v },
}

// New 返回只有默认值的配置
func New() *Engine {
	cfg := &Engine{}
	defaults.SetDefaults(cfg)
	return cfg
}

// Load 读取配置文件，文件不存在时只使用默认值
func Load(configFile string) (cfg *Engine, err error) {
	cfg = New()
	if configFile != "" {
		var raw []byte
		if raw, err = os.ReadFile(configFile); err == nil {
			if err = cfg.Parse(raw); err != nil {
				return nil, err
			}
		} else if errors.Is(err, fs.ErrNotExist) {
			log.Warnf("read config file error: %v, using defaults", err)
			err = nil
		} else {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}
	cfg.ParseEnv()
	Global = cfg
	return
}

// Parse yaml 覆盖到当前配置上
func (cfg *Engine) Parse(raw []byte) error {
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parsing yml error: %w", err)
	}
	return nil
}

func (cfg *Engine) ParseEnv() {
	for key, set := range envOverrides {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			set(cfg, v)
		}
	}
}
