package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/metrics"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/middleware"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// routerSessionFinder は固定トークンのみを受け付けるSessionFinder実装。
type routerSessionFinder struct {
	token  string
	userID string
}

func (f *routerSessionFinder) FindByID(ctx context.Context, id string) (*model.Session, error) {
	if id != f.token {
		return nil, nil
	}
	return &model.Session{
		ID:        id,
		UserID:    f.userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func newTestRouter(t *testing.T, healthErr error) http.Handler {
	t.Helper()

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	user, _ := testUserAndSession()

	deps := &RouterDeps{
		SessionFinder:     &routerSessionFinder{token: "valid-token", userID: user.ID},
		CORSAllowedOrigin: "*",
		RateLimiter:       middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig()),
		MetricsCollector:  collector,
		MetricsGatherer:   reg,
		AuthService: &mockAuthService{
			currentUserFn: func(ctx context.Context, sessionID string) (*model.User, error) {
				return user, nil
			},
		},
		CopingToolService: &mockCopingToolService{},
		JournalService:    &mockJournalService{},
		CravingService:    &mockCravingService{},
		CalendarService:   &mockCalendarService{},
		UserService: &mockUserService{
			getProfileFn: func(ctx context.Context, userID string) (*model.User, error) {
				return user, nil
			},
		},
		HealthChecker: func() error { return healthErr },
	}
	return NewRouter(deps)
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	resp := decodeJSONBody(t, w)
	if resp["status"] != "ok" {
		t.Errorf("status field = %v, want ok", resp["status"])
	}
}

func TestRouter_HealthEndpoint_Unhealthy(t *testing.T) {
	router := newTestRouter(t, errors.New("db down"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestRouter_CatalogIsPublic(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/coping-tools", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 without a token", w.Code)
	}
}

func TestRouter_AuthedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(t, nil)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/me"},
		{http.MethodPost, "/auth/logout"},
		{http.MethodPost, "/api/coping-tools/complete"},
		{http.MethodGet, "/api/coping-tools/completions"},
		{http.MethodGet, "/api/journal"},
		{http.MethodGet, "/api/journal/stats"},
		{http.MethodGet, "/api/craving-sessions"},
		{http.MethodGet, "/api/calendar-events"},
		{http.MethodGet, "/api/user/profile"},
		{http.MethodPost, "/api/user/change-password"},
		{http.MethodDelete, "/api/users/me"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", p.method, p.path, w.Code)
		}
	}
}

// カタログのGETは公開のまま、同じプレフィックス配下の認証ルートが
// 正しく解決されることを検証する。サブルーターを同一パターンに
// マウントすると公開GETが401になる退行を防ぐ。
func TestRouter_CopingToolPrefixSplitAcrossAuthBoundary(t *testing.T) {
	router := newTestRouter(t, nil)

	// 公開: トークンなしでカタログが返る
	req := httptest.NewRequest(http.MethodGet, "/api/coping-tools", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/coping-tools without token: status = %d, want 200", w.Code)
	}

	// 認証済み: 同じプレフィックス配下のサブパスに到達できる
	req = httptest.NewRequest(http.MethodGet, "/api/coping-tools/completions", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/coping-tools/completions with token: status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestRouter_BearerTokenGrantsAccess(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestRouter_UnknownTokenRejected(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	parseErrorResponse(t, w)
}

func TestRouter_MetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t, nil)

	// メトリクスに値を載せるために先にリクエストを通す
	warm := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(httptest.NewRecorder(), warm)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "recovery_http_status_total") {
		t.Error("metrics output missing recovery_http_status_total")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/journal", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRouter_SecurityHeadersApplied(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}
