// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する。
// 利用側（ミドルウェアやサービス層）はそれぞれ必要なメソッドだけを
// 小さなインターフェースとして宣言する。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestDuration prometheus.Histogram
	completions     prometheus.Counter
	autoJournal     *prometheus.CounterVec
	journalEntries  *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recovery_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recovery_request_duration_seconds",
			Help:    "HTTPリクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		completions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recovery_completions_total",
			Help: "コーピングツール完了記録の合計数",
		}),
		autoJournal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recovery_auto_journal_total",
			Help: "自動ジャーナル作成の結果別合計数",
		}, []string{"result"}),
		journalEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recovery_journal_entries_total",
			Help: "作成経路別のジャーナルエントリ数",
		}, []string{"source"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestDuration,
		c.completions,
		c.autoJournal,
		c.journalEntries,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// RecordCompletion はツール完了の記録を数える。
func (c *Collector) RecordCompletion() {
	c.completions.Inc()
}

// RecordAutoJournal は自動ジャーナル作成の結果（created / failed）を数える。
func (c *Collector) RecordAutoJournal(result string) {
	c.autoJournal.WithLabelValues(result).Inc()
}

// RecordJournalEntry は作成経路（manual / auto）別にエントリ数を数える。
func (c *Collector) RecordJournalEntry(source string) {
	c.journalEntries.WithLabelValues(source).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
// ルーターが/metricsにマウントする。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
