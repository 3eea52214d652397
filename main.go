package tap // import "m7s.live/tap/v4"

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/logrusorgru/aurora"
	"go.uber.org/zap"
	"m7s.live/tap/v4/config"
	"m7s.live/tap/v4/log"
	"m7s.live/tap/v4/util"
)

// Version 编译时通过 -ldflags "-X m7s.live/tap/v4.Version=..." 设置
var Version = "dev"

var SysInfo struct {
	StartTime time.Time //启动时间
	Version   string
}

// Run 加载配置并启动 http 服务，ctx 结束时停止接收并关闭服务
func Run(ctx context.Context, configFile string) (err error) {
	SysInfo.StartTime = time.Now()
	SysInfo.Version = Version
	// 相对路径找不到时到可执行文件所在目录下找
	if configFile != "" && !util.Exist(configFile) {
		configFile = filepath.Join(filepath.Dir(os.Args[0]), configFile)
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Error("load config error:", err)
		return
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		log.Error("parse log level error:", err)
	}
	log.Info(Blink("▶ starting rtptap "+Version))
	log.With(zap.String("config", "global")).Debug("", zap.Any("config", cfg))
	t := New(ctx, cfg)
	t.subscribeLog()
	if cfg.Capture.AutoStart {
		if err := t.Start(); err != nil {
			log.Error("auto start capture error:", err)
		}
	}
	defer t.Stop()
	log.Info(Blink("rtptap@"+Version), " start success, rtp on ", cfg.Capture.ListenAddr)
	return cfg.Listen(ctx)
}

func (t *Tap) subscribeLog() {
	logger := t.Named("event")
	t.Bus.SubscribeAsync(Event_SESSION_NEW, func(s Session) {
		logger.Info(Event_SESSION_NEW, zap.Uint32("ssrc", s.SSRC), zap.String("from", s.IP), zap.Int("port", s.Port))
	}, false)
	t.Bus.SubscribeAsync(Event_SELECTION_CHANGE, func(ssrc uint32, selected bool) {
		logger.Info(Event_SELECTION_CHANGE, zap.Uint32("ssrc", ssrc), zap.Bool("selected", selected))
	}, false)
	t.Bus.SubscribeAsync(Event_CAPTURE_START, func(addr string) {
		logger.Info(Event_CAPTURE_START, zap.String("addr", addr))
	}, false)
	t.Bus.SubscribeAsync(Event_CAPTURE_STOP, func() {
		logger.Info(Event_CAPTURE_STOP)
	}, false)
}
