package logger_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/botguard/pkg/environment"
	"github.com/dmitrymomot/botguard/pkg/logger"
)

type ctxKey struct{}

func TestSlog_Bridge(t *testing.T) {
	t.Parallel()

	log, _, sink := newTestLogger()
	s := log.Slog("Vault")

	s.Info("stored", logger.SecretKey("cookie:1"), slog.Int("bytes", 42))
	s.Debug("hidden")
	s.Warn("with spaces", slog.String("note", "two words"))

	lines := sink.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, `2024-05-01 10:15:00 | INFO  | Vault        | stored secret="cookie:******" bytes=42`, lines[0])
	assert.Contains(t, lines[1], `with spaces note="two words"`)
}

func TestSlog_AttributesAreMasked(t *testing.T) {
	t.Parallel()

	log, _, sink := newTestLogger()
	log.Slog("Api").Info("request", slog.String("token", "abc123"))

	assert.Contains(t, sink.Lines()[0], "request token=******")
}

func TestSlog_CredentialKeysAreMasked(t *testing.T) {
	t.Parallel()

	log, console, sink := newTestLogger()
	log.Slog("Api").Info("login",
		slog.String("cookie", "sid=SECRETSID; uid=1"),
		slog.String("authorization", "Bearer SECRETBEARER"),
		slog.String("token", "SECRET TOKEN"),
		slog.String("refresh_token", "SECRETREFRESH"),
		slog.Int("account", 7),
	)

	lines := sink.Lines()
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0],
		"login cookie=****** authorization=****** token=****** refresh_token=****** account=7"), lines[0])
	for _, secret := range []string{"SECRETSID", "SECRETBEARER", "SECRET TOKEN", "SECRETREFRESH"} {
		assert.NotContains(t, lines[0], secret)
		assert.NotContains(t, console.String(), secret)
	}
}

func TestSlog_CredentialKeysInGroups(t *testing.T) {
	t.Parallel()

	log, _, sink := newTestLogger()
	log.Slog("Api").With(slog.String("Set-Cookie", "sid=SECRETSID")).
		Info("response", logger.Group("req", slog.String("Token", "SECRETTOKEN")))

	line := sink.Lines()[0]
	assert.Contains(t, line, "response Set-Cookie=****** req.Token=******")
	assert.NotContains(t, line, "SECRET")
}

func TestSlog_SecretKeyKeepsLaterAttributes(t *testing.T) {
	t.Parallel()

	log, _, sink := newTestLogger()
	log.Slog("Vault").Warn("left untouched",
		logger.SecretKey("account:1:cookie"),
		logger.Count(3),
	)
	log.Slog("Vault").Warn("left untouched", logger.SecretKey("cookie:2"), logger.Count(4))

	lines := sink.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `left untouched secret="account:1:cookie" count=3`)
	assert.Contains(t, lines[1], `left untouched secret="cookie:******" count=4`)
}

func TestSlog_GroupsAndWith(t *testing.T) {
	t.Parallel()

	log, _, sink := newTestLogger()
	s := log.Slog("Api").With("run", "r1").WithGroup("req")
	s.Info("done", "id", 7, logger.Group("timing", slog.Int("ms", 3)))
	s.Info("empty", logger.Error(nil))

	lines := sink.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "done run=r1 req.id=7 req.timing.ms=3")
	assert.Contains(t, lines[1], "empty run=r1")
}

func TestSlog_ErrorAttr(t *testing.T) {
	t.Parallel()

	log, _, sink := newTestLogger()
	log.Slog("Store").Error("write failed", logger.Error(errors.New("disk full")))
	assert.Contains(t, sink.Lines()[0], `ERROR | Store        | write failed error="disk full"`)
}

func TestSlog_ContextExtractors(t *testing.T) {
	t.Parallel()

	log, _, sink := newTestLogger(
		logger.WithContextValue("request_id", ctxKey{}),
		logger.WithEnvironment(environment.Production),
	)
	assert.Equal(t, logger.LevelInfo, log.Level())

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	ctx = environment.WithContext(ctx, environment.Production)
	log.Slog("Api").InfoContext(ctx, "handled")
	log.Slog("Api").InfoContext(context.Background(), "bare")

	lines := sink.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "handled request_id=req-1 env=production")
	assert.True(t, strings.HasSuffix(lines[1], "| bare"), lines[1])
}

func TestSlog_StaticAttrs(t *testing.T) {
	t.Parallel()

	log, _, sink := newTestLogger(logger.WithAttr(slog.String("service", "botguard")))
	log.Slog("").Info("boot")
	assert.Contains(t, sink.Lines()[0], "| App          | boot service=botguard")
}

func TestWithEnvironment_DevelopmentIsDebug(t *testing.T) {
	t.Parallel()

	log, _, _ := newTestLogger(logger.WithEnvironment(environment.Development))
	assert.Equal(t, logger.LevelDebug, log.Level())
}

func TestContextHandler_NilExtractors(t *testing.T) {
	t.Parallel()

	log, _, sink := newTestLogger()
	h := logger.NewContextHandler(log.Slog("X").Handler(), nil)
	slog.New(h).Info("ok")
	assert.Len(t, sink.Lines(), 1)
}
