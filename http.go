package tap

import (
	"fmt"
	"net/http"
	"strconv"

	"m7s.live/tap/v4/util"
)

type statusResponse struct {
	Status string `json:"status"`
}

func (t *Tap) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(rw, r)
		return
	}
	rw.Write([]byte("RTP Tap API Server"))
}

func (t *Tap) API_start(rw http.ResponseWriter, r *http.Request) {
	if err := t.Start(); err != nil {
		util.ReturnError(rw, http.StatusInternalServerError, err)
		return
	}
	util.ReturnJson(rw, statusResponse{Status: "started"})
}

func (t *Tap) API_stop(rw http.ResponseWriter, r *http.Request) {
	t.Stop()
	util.ReturnJson(rw, statusResponse{Status: "stopped"})
}

// API_select ?ssrc= 切换监听对象，同一个 ssrc 再选一次表示取消
func (t *Tap) API_select(rw http.ResponseWriter, r *http.Request) {
	ssrc, err := strconv.ParseUint(r.URL.Query().Get("ssrc"), 10, 32)
	if err != nil {
		util.ReturnError(rw, http.StatusBadRequest, fmt.Errorf("%w: %q", ErrInvalidSSRC, r.URL.Query().Get("ssrc")))
		return
	}
	var resp struct {
		Status        string  `json:"status"`
		ListeningSSRC *uint32 `json:"listening_ssrc"`
	}
	resp.Status = "updated"
	if selected, ok := t.Select(uint32(ssrc)); ok {
		resp.ListeningSSRC = &selected
	}
	util.ReturnJson(rw, resp)
}

func (t *Tap) API_sessions(rw http.ResponseWriter, r *http.Request) {
	util.GetJsonHandler(t.Sessions, t.Config.SummaryInterval)(rw, r)
}

func (t *Tap) API_sessions_reset(rw http.ResponseWriter, r *http.Request) {
	t.Registry.Reset()
	util.ReturnJson(rw, statusResponse{Status: "reset"})
}

func (t *Tap) API_status(rw http.ResponseWriter, r *http.Request) {
	util.ReturnJson(rw, t.Status())
}

func (t *Tap) API_summary(rw http.ResponseWriter, r *http.Request) {
	util.GetJsonHandler(t.collect, t.Config.SummaryInterval)(rw, r)
}

func (t *Tap) API_sysinfo(rw http.ResponseWriter, r *http.Request) {
	util.ReturnJson(rw, &struct {
		Version   string
		StartTime string
	}{SysInfo.Version, SysInfo.StartTime.Format("2006-01-02 15:04:05")})
}

func (t *Tap) API_stream(rw http.ResponseWriter, r *http.Request) {
	t.ServeStream(rw, r)
}
