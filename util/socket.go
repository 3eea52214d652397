package util

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"
)

func GetJsonHandler[T any](fetch func() T, tickDur time.Duration) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("json") != "" {
			ReturnJson(rw, fetch())
			return
		}
		sse := NewSSE(rw, r.Context())
		if sse.WriteJSON(fetch()) != nil {
			return
		}
		tick := time.NewTicker(tickDur)
		defer tick.Stop()
		for {
			select {
			case <-tick.C:
				if sse.WriteJSON(fetch()) != nil {
					return
				}
			case <-r.Context().Done():
				return
			}
		}
	}
}

func ReturnJson(rw http.ResponseWriter, v any) {
	rw.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(rw).Encode(v); err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
	}
}

func ReturnError(rw http.ResponseWriter, code int, err error) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	json.NewEncoder(rw).Encode(map[string]string{"status": "error", "error": err.Error()})
}

// ListenUDP 绑定 UDP 端口并设置收发缓冲
func ListenUDP(address string, networkBuffer int) (*net.UDPConn, error) {
	addr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return nil, fmt.Errorf("udp server ResolveUDPAddr %s: %w", address, err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("udp server ListenUDP %s: %w", address, err)
	}
	if networkBuffer > 0 {
		if err = conn.SetReadBuffer(networkBuffer); err != nil {
			conn.Close()
			return nil, fmt.Errorf("udp server set read buffer: %w", err)
		}
	}
	return conn, nil
}

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Cross-Origin-Resource-Policy", "cross-origin")
		header.Set("Access-Control-Allow-Headers", "Content-Type,Access-Token")
		origin := r.Header["Origin"]
		if len(origin) == 0 {
			header.Set("Access-Control-Allow-Origin", "*")
		} else {
			header.Set("Access-Control-Allow-Origin", origin[0])
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func BasicAuth(u, p string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, pass, ok := r.BasicAuth(); ok &&
			subtle.ConstantTimeCompare([]byte(user), []byte(u)) == 1 &&
			subtle.ConstantTimeCompare([]byte(pass), []byte(p)) == 1 {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="rtptap"`)
		w.WriteHeader(http.StatusUnauthorized)
	})
}
