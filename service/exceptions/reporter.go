// Package exceptions reports unexpected server errors.
package exceptions

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

const defaultFlushTimeout = time.Second * 5

// Reporter sends exceptions to an external source
type Reporter interface {
	ReportException(err error)
}

// NoopReporter is a no-op exception reporter
type NoopReporter struct{}

// ReportException does nothing
func (r *NoopReporter) ReportException(_ error) {}

// LogReporter logs exceptions at error level
type LogReporter struct {
	Log logrus.FieldLogger
}

func (r *LogReporter) ReportException(err error) {
	r.Log.WithError(err).Error("exception")
}

// SentryReporter is a Reporter that sends error information to Sentry
type SentryReporter struct {
	flush time.Duration
}

// NewSentryReporter initializes the sentry client for dsn and env
func NewSentryReporter(dsn, env string) (*SentryReporter, error) {
	err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Environment: env})
	if err != nil {
		return nil, err
	}

	return &SentryReporter{flush: defaultFlushTimeout}, nil
}

// ReportException will send errors to Sentry
func (r *SentryReporter) ReportException(err error) {
	sentry.CaptureException(err)
	sentry.Flush(r.flush)
}

// New picks a reporter: sentry when dsn is set, otherwise the log.
func New(dsn, env string, log logrus.FieldLogger) (Reporter, error) {
	if dsn == "" {
		return &LogReporter{Log: log}, nil
	}
	r, err := NewSentryReporter(dsn, env)
	if err != nil {
		return nil, err
	}
	return r, nil
}
