package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// statusRecorder はhttp.ResponseWriterをラップし、ステータスコードを記録する。
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader はステータスコードを記録してから委譲する。
func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

// Write はデータを書き込む。WriteHeaderが未呼び出しの場合は200を記録する。
func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// RequestMetrics はリクエスト単位のメトリクス記録に必要なインターフェース。
// metrics.Collectorの部分集合として定義する。
type RequestMetrics interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(duration time.Duration)
}

// authLogInfoKey はauthLogInfoホルダーをコンテキストに格納するためのキー。
var authLogInfoKey = contextKey("auth_log_info")

// authLogInfo はロギング層とその内側で動くセッション層の間で
// 認証済みユーザーIDを受け渡すリクエスト単位のホルダー。
// ロギングミドルウェアはルーターの外側で動くため、セッションミドルウェアが
// 内側のコンテキストに注入したユーザーIDを直接読むことはできない。
type authLogInfo struct {
	mu     sync.Mutex
	userID string
}

func (a *authLogInfo) setUserID(userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userID = userID
}

func (a *authLogInfo) getUserID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID
}

// NewLoggingMiddleware はリクエストのJSON構造化ログを出力するミドルウェアを返す。
// ログにはmethod、path、status、duration_ms、user_id（認証済みの場合）を含む。
// collectorが非nilの場合はステータスコードと処理時間のメトリクスも記録する。
func NewLoggingMiddleware(logger *slog.Logger, collector RequestMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			info := &authLogInfo{}
			r = r.WithContext(context.WithValue(r.Context(), authLogInfoKey, info))

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			durationMs := float64(duration.Nanoseconds()) / float64(time.Millisecond)

			if collector != nil {
				collector.RecordHTTPStatus(rec.statusCode)
				collector.RecordRequestDuration(duration)
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.statusCode),
				slog.Float64("duration_ms", durationMs),
			}

			// ユーザーIDがコンテキストにある場合（直接ラップ時）、
			// なければ内側のセッション層がホルダーに書き込んだ値を使う
			userID, err := UserIDFromContext(r.Context())
			if err != nil || userID == "" {
				userID = info.getUserID()
			}
			if userID != "" {
				attrs = append(attrs, slog.String("user_id", userID))
			}

			// slogのログレベルをステータスコードに応じて変更
			level := slog.LevelInfo
			if rec.statusCode >= 500 {
				level = slog.LevelError
			} else if rec.statusCode >= 400 {
				level = slog.LevelWarn
			}

			// slog.Attr をany スライスに変換
			args := make([]any, len(attrs))
			for i, attr := range attrs {
				args[i] = attr
			}

			logger.Log(r.Context(), level, "http_request", args...)
		})
	}
}
