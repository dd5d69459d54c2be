package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/CMSgov/edi834-app/conf"
	"github.com/CMSgov/edi834-app/edi834/utils"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"
)

// Timer records the duration of an import and of each stage within it
// (load, assemble, one write per sink).
//
//	timer := metrics.NewTimer(logger)
//	defer timer.Close()
//	ctx = metrics.WithTimer(ctx, timer)
//	ctx, finish := metrics.StartImport(ctx, "Import EDI 834")
//	defer finish()
//	done := metrics.StartStage(ctx, "Load")
//	text, err := handler.Load(ctx, path)
//	done()
type Timer interface {
	startImport(ctx context.Context, name string) (context.Context, func())
	startStage(ctx context.Context, name string) func()
	Close()
}

type timerKey struct{}

type importKey struct{}

func WithTimer(ctx context.Context, t Timer) context.Context {
	return context.WithValue(ctx, timerKey{}, t)
}

// StartImport begins timing an import. Stages started from the returned context are
// recorded under it; the returned func ends the import.
func StartImport(ctx context.Context, name string) (context.Context, func()) {
	return fromContext(ctx).startImport(ctx, name)
}

// StartStage begins timing one stage of the import carried by ctx.
func StartStage(ctx context.Context, name string) func() {
	return fromContext(ctx).startStage(ctx, name)
}

func fromContext(ctx context.Context) Timer {
	if t, ok := ctx.Value(timerKey{}).(Timer); ok {
		return t
	}
	return discard
}

// NewTimer reports to New Relic when NEW_RELIC_LICENSE_KEY is set and the agent
// connects. Otherwise stage durations go to logger at debug level.
func NewTimer(logger logrus.FieldLogger) Timer {
	fallback := &logTimer{logger: logger}

	license := conf.GetEnv("NEW_RELIC_LICENSE_KEY")
	if license == "" {
		logger.Debug("NEW_RELIC_LICENSE_KEY is not set, logging import stage durations")
		return fallback
	}

	target := conf.GetEnv("DEPLOYMENT_TARGET")
	if target == "" {
		target = "local"
	}
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(fmt.Sprintf("EDI834-%s", target)),
		newrelic.ConfigLicense(license),
		newrelic.ConfigEnabled(true),
		func(cfg *newrelic.Config) {
			cfg.HighSecurity = true
		},
	)
	if err != nil {
		logger.Warnf("Could not configure New Relic, logging import stage durations instead: %s", err)
		return fallback
	}

	wait := time.Duration(utils.GetEnvInt("NEW_RELIC_CONNECTION_TIMEOUT_SECONDS", 30)) * time.Second
	if err = app.WaitForConnection(wait); err != nil {
		logger.Warnf("New Relic did not connect within %s, logging import stage durations instead", wait)
		app.Shutdown(0)
		return fallback
	}

	logger.Info("Reporting import stage durations to New Relic")
	return &relicTimer{app: app, logger: logger}
}

// relicTimer reports each import as a New Relic transaction and each stage as a
// segment of it.
type relicTimer struct {
	app    *newrelic.Application
	logger logrus.FieldLogger
}

func (t *relicTimer) startImport(ctx context.Context, name string) (context.Context, func()) {
	txn := t.app.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), txn.End
}

func (t *relicTimer) startStage(ctx context.Context, name string) func() {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		t.logger.Warnf("Stage %s started outside of an import, not recorded", name)
		return func() {}
	}
	return txn.StartSegment(name).End
}

func (t *relicTimer) Close() {
	t.app.Shutdown(30 * time.Second)
}

type logTimer struct {
	logger logrus.FieldLogger
}

func (t *logTimer) startImport(ctx context.Context, name string) (context.Context, func()) {
	start := time.Now()
	return context.WithValue(ctx, importKey{}, name), func() {
		t.logger.WithFields(logrus.Fields{"import": name, "duration": time.Since(start)}).
			Debugf("Finished %s", name)
	}
}

func (t *logTimer) startStage(ctx context.Context, name string) func() {
	fields := logrus.Fields{"stage": name}
	if imp, ok := ctx.Value(importKey{}).(string); ok {
		fields["import"] = imp
	}
	start := time.Now()
	return func() {
		fields["duration"] = time.Since(start)
		t.logger.WithFields(fields).Debugf("Finished stage %s", name)
	}
}

func (t *logTimer) Close() {}

// discard is used when no Timer was attached to the context.
var discard Timer = discardTimer{}

type discardTimer struct{}

func (discardTimer) startImport(ctx context.Context, _ string) (context.Context, func()) {
	return ctx, func() {}
}

func (discardTimer) startStage(context.Context, string) func() { return func() {} }

func (discardTimer) Close() {}
