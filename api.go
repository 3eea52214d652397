package tap

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"
)

// registerHandler 把 API_xxx 方法注册成 /api/xxx，下划线对应路径分隔符，ServeHTTP 对应根路径
func (t *Tap) registerHandler() {
	tp := reflect.TypeOf(t)
	v := reflect.ValueOf(t)
	for i, j := 0, tp.NumMethod(); i < j; i++ {
		name := tp.Method(i).Name
		handler, ok := v.Method(i).Interface().(func(http.ResponseWriter, *http.Request))
		if !ok {
			continue
		}
		patten := "/"
		if name != "ServeHTTP" {
			if !strings.HasPrefix(name, "API_") {
				continue
			}
			patten = "/" + strings.ToLower(strings.ReplaceAll(name, "_", "/"))
		}
		t.addRoute(patten, http.HandlerFunc(handler))
	}
	t.addRoute("/stream.wav", http.HandlerFunc(t.ServeStream))
}

func (t *Tap) addRoute(patten string, handler http.Handler) {
	t.Debug("http handle added", zap.String("patten", patten))
	t.Config.Handle(patten, t.logHandler(handler))
}

func (t *Tap) logHandler(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()
		handler.ServeHTTP(rw, r)
		t.Debug("visit", zap.String("path", r.URL.String()), zap.String("remote", r.RemoteAddr), zap.Duration("cost", time.Since(start)))
	})
}
