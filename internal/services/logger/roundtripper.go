package logger

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFileMode = 0o644

// RoundTripper logs every outbound provider request and response body.
type RoundTripper struct {
	Logger *zap.Logger
	Proxy  http.RoundTripper
}

func NewRoundTripper(logger *zap.Logger) *RoundTripper {
	return &RoundTripper{
		Logger: logger,
		Proxy:  http.DefaultTransport,
	}
}

func (l *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.Proxy.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		l.Logger.Error("HTTP request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		l.Logger.Error("Failed to read response body",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return resp, err
	}

	resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	l.Logger.Info("HTTP request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.ByteString("body_snipped", bodyBytes),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewFileLogger creates a zap logger appending JSON entries to filePath.
func NewFileLogger(filePath string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(filepath.Clean(filePath)), 0o755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filepath.Clean(filePath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode)
	if err != nil {
		return nil, err
	}

	writer := zapcore.AddSync(file)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		writer,
		zap.InfoLevel,
	)
	return zap.New(core), nil
}
