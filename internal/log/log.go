// Package log writes one JSON object per line for application, audit and
// security events. Request fields are pulled from the fiber context when one is given.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	kindApp      = "app"
	kindAudit    = "audit"
	kindSecurity = "security"
)

var (
	mu     sync.RWMutex
	logger = build(os.Stderr, level)
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "action",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
}

func build(w io.Writer, lvl zapcore.LevelEnabler) *zap.Logger {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(w), lvl)
	return zap.New(core)
}

// Init points the logger at w with the given minimum level ("debug", "info", "warn", "error").
func Init(w io.Writer, lvl string) error {
	l, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return err
	}
	level.SetLevel(l)
	mu.Lock()
	logger = build(w, level)
	mu.Unlock()
	return nil
}

// SetOutput redirects all entries to w and returns a func restoring the previous sink.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	prev := logger
	logger = build(w, level)
	mu.Unlock()
	return func() {
		mu.Lock()
		logger = prev
		mu.Unlock()
	}
}

// Sync flushes buffered entries.
func Sync() { _ = current().Sync() }

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func write(lvl zapcore.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	zf := make([]zap.Field, 0, 10)
	zf = append(zf, zap.String("kind", kind))
	if c != nil {
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			zf = append(zf, zap.String("req_id", rid))
		}
		zf = append(zf,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		if st := c.Response().StatusCode(); st != 0 {
			zf = append(zf, zap.Int("status", st))
		}
		if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
			zf = append(zf, zap.String("user_id", uid))
		}
	}
	if err != nil {
		zf = append(zf, zap.String("err", err.Error()))
	}
	if len(fields) > 0 {
		zf = append(zf, zap.Any("fields", fields))
	}
	if ce := current().Check(lvl, action); ce != nil {
		ce.Write(zf...)
	}
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, kindApp, c, action, nil, fields)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, kindAudit, c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, kindSecurity, c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zapcore.ErrorLevel, kindApp, c, action, err, fields)
}
