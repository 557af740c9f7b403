package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// request is always scoped to a single http request handled by the server
type request struct {
	ctx context.Context
	w   http.ResponseWriter
	r   *http.Request
	log logrus.FieldLogger

	start       time.Time
	rid         uint64 // random request id
	code        int
	wrote       int
	ip, port    string
	err, logerr error
}

// newRequest initializes request scoped structures, context and counters.
// The caller defers finalize to log the outcome.
func newRequest(log logrus.FieldLogger, w http.ResponseWriter, rq *http.Request) *request {
	r := &request{
		ctx:   rq.Context(),
		r:     rq,
		w:     w,
		start: time.Now(),
		rid:   rand.Uint64(),
		code:  http.StatusOK,
	}
	r.rid |= 1 << 63 // sacrifice one bit of entropy so they always have the same # digits
	r.ip = rq.Header.Get("X-Forwarded-For")
	r.port = rq.Header.Get("X-Forwarded-Port")
	if r.ip == "" {
		r.ip, r.port, _ = net.SplitHostPort(rq.RemoteAddr)
	}
	r.log = log.WithField("rid", r.rid)
	r.log.WithFields(logrus.Fields{
		"ip":     r.ip,
		"port":   r.port,
		"method": rq.Method,
		"path":   rq.URL.Path,
		"query":  rq.URL.RawQuery,
		"ref":    rq.Referer(),
		"ua":     rq.UserAgent(),
		"xrid":   rq.Header.Get("X-Request-Id"),
	}).Info("request")
	return r
}

func (r *request) finalize() {
	if r.logerr == nil {
		r.logerr = r.err
	}
	entry := r.log.WithFields(logrus.Fields{
		"code": r.code,
		"tx":   r.wrote,
		"dur":  time.Since(r.start).String(),
	})
	if r.logerr != nil {
		entry = entry.WithError(r.logerr)
	}
	entry.Info("done")
}

func (r *request) ok() bool {
	return r.err == nil
}

// PlatformError implements a well-known error response for http clients
// encountering an error when using the service.
type PlatformError struct {
	Ok     bool   `json:"ok"`
	Status int    `json:"status"`
	Rid    uint64 `json:"rid"`
	Msg    string `json:"msg,omitempty"`
}

// String returns the json-formatted platform response
func (p PlatformError) String() string {
	data, _ := json.Marshal(p)
	return string(data)
}

func (r *request) writeerror(msg string, code int, err error) bool {
	r.logerr = err
	r.code = code
	r.w.Header().Set("Content-Type", "application/json")
	r.w.WriteHeader(code)
	n, _ := fmt.Fprintln(r.w, PlatformError{
		Ok:     false,
		Status: code,
		Rid:    r.rid,
		Msg:    msg,
	}.String())
	r.wrote = n
	return false
}

func (r *request) writebody(data interface{}, mimeType ...string) bool {
	if len(mimeType) != 0 {
		r.w.Header().Set("Content-Type", mimeType[0])
	} else {
		r.w.Header().Set("Content-Type", "application/json")
	}
	switch t := data.(type) {
	case io.WriterTo:
		n, err := t.WriteTo(r.w)
		r.wrote, r.err = int(n), err
	case []byte:
		r.wrote, r.err = r.w.Write(t)
	case string:
		r.wrote, r.err = r.w.Write([]byte(t))
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return r.writeerror("encoding response failed", http.StatusInternalServerError, err)
		}
		r.wrote, r.err = r.w.Write(data)
	}
	return r.ok()
}
