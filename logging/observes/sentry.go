package observes

import (
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

type SentryOptions struct {
	Dsn         string
	Name        string
	Release     string
	Environment string
	SampleRate  float64
}

// NewSentry is the register sentry. It returns a flush function that is a
// no-op when sentry is not configured.
func NewSentry(opt *SentryOptions) (func(), error) {
	// if not exist sentry config, skip initialization
	if opt == nil || opt.Dsn == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opt.Dsn,
		AttachStacktrace: true,
		SampleRate:       opt.SampleRate,
		ServerName:       opt.Name,
		Release:          opt.Release,
		Environment:      opt.Environment,
	})
	if err != nil {
		return nil, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// SentryHook forwards error level log entries to sentry.
type SentryHook struct {
	hub *sentry.Hub
}

// NewSentryHook returns a hook bound to the current sentry hub.
func NewSentryHook() *SentryHook {
	return &SentryHook{hub: sentry.CurrentHub()}
}

// Levels implements logrus.Hook.
func (h *SentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

// Fire implements logrus.Hook.
func (h *SentryHook) Fire(entry *logrus.Entry) error {
	if h.hub == nil || h.hub.Client() == nil {
		return nil
	}

	err, _ := entry.Data[logrus.ErrorKey].(error)
	if err == nil {
		err = errors.New(entry.Message)
	}

	h.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		scope.SetExtra("message", entry.Message)
		for k, v := range entry.Data {
			if k == logrus.ErrorKey {
				continue
			}
			if s, ok := v.(string); ok {
				scope.SetTag(k, s)
			} else {
				scope.SetExtra(k, v)
			}
		}
		h.hub.CaptureException(err)
	})
	return nil
}
