package config

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	. "github.com/logrusorgru/aurora"
	"golang.org/x/sync/errgroup"
	"m7s.live/tap/v4/log"
	"m7s.live/tap/v4/util"
)

type Middleware func(string, http.Handler) http.Handler
type HTTP struct {
	ListenAddr    string `default:":8080"`
	ListenAddrTLS string
	CertFile      string
	KeyFile       string
	CORS          bool `default:"true"` //是否自动添加CORS头
	UserName      string
	Password      string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration // 音频流是无限长的，不要设置
	IdleTimeout   time.Duration
	mux           *http.ServeMux
	middlewares   []Middleware
}

func (config *HTTP) AddMiddleware(middleware Middleware) {
	config.middlewares = append(config.middlewares, middleware)
}

func (config *HTTP) Handle(path string, f http.Handler) {
	if config.mux == nil {
		config.mux = http.NewServeMux()
	}
	if config.CORS {
		f = util.CORS(f)
	}
	if config.UserName != "" && config.Password != "" {
		f = util.BasicAuth(config.UserName, config.Password, f)
	}
	for _, middleware := range config.middlewares {
		f = middleware(path, f)
	}
	config.mux.Handle(path, f)
}

// Handler 已注册的路由，测试时可直接使用
func (config *HTTP) Handler() http.Handler {
	if config.mux == nil {
		config.mux = http.NewServeMux()
	}
	return config.mux
}

func (config *HTTP) server(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
		Handler:      config.Handler(),
	}
}

func (config *HTTP) logListen(scheme, addr string) {
	if Global != nil && Global.LogLang == "zh" {
		log.Infof("🌐 %s 监听在 %s", scheme, Blink(addr))
	} else {
		log.Infof("🌐 %s listen at %s", scheme, Blink(addr))
	}
}

// Listen 同时监听 http 和 https，ctx 结束时关闭服务
func (config *HTTP) Listen(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	var servers []*http.Server
	if config.ListenAddrTLS != "" {
		server := config.server(config.ListenAddrTLS)
		servers = append(servers, server)
		g.Go(func() error {
			config.logListen("https", config.ListenAddrTLS)
			return ignoreClosed(server.ListenAndServeTLS(config.CertFile, config.KeyFile))
		})
	}
	if config.ListenAddr != "" {
		server := config.server(config.ListenAddr)
		servers = append(servers, server)
		g.Go(func() error {
			config.logListen("http", config.ListenAddr)
			return ignoreClosed(server.ListenAndServe())
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		for _, server := range servers {
			server.Shutdown(shutdownCtx)
		}
		return nil
	})
	return g.Wait()
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err != nil && strings.Contains(err.Error(), "use of closed") {
		return nil
	}
	return err
}
