package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// mockAuthService はAuthServiceInterfaceのモック実装。
type mockAuthService struct {
	registerFn    func(ctx context.Context, email, name, password string) (*model.User, *model.Session, error)
	loginFn       func(ctx context.Context, email, password string) (*model.User, *model.Session, error)
	logoutFn      func(ctx context.Context, sessionID string) error
	currentUserFn func(ctx context.Context, sessionID string) (*model.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, name, password string) (*model.User, *model.Session, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, email, name, password)
	}
	return nil, nil, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.User, *model.Session, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return nil, nil, nil
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) CurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if m.currentUserFn != nil {
		return m.currentUserFn(ctx, sessionID)
	}
	return nil, nil
}

func testUserAndSession() (*model.User, *model.Session) {
	user := &model.User{
		ID:        "user-1",
		Email:     "taro@example.com",
		Name:      "Taro",
		CreatedAt: time.Now(),
	}
	session := &model.Session{
		ID:        "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return user, session
}

func TestAuthHandler_Register_Success(t *testing.T) {
	user, session := testUserAndSession()
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, email, name, password string) (*model.User, *model.Session, error) {
			if email != "taro@example.com" {
				t.Errorf("email = %q, want taro@example.com", email)
			}
			return user, session, nil
		},
	}
	h := NewAuthHandler(svc)

	body := `{"email": "taro@example.com", "name": "Taro", "password": "correct horse battery"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	resp := decodeJSONBody(t, w)
	if resp["token"] != session.ID {
		t.Errorf("token = %v, want session ID", resp["token"])
	}
	userBody, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatal("user field missing from response")
	}
	if userBody["email"] != user.Email {
		t.Errorf("user.email = %v, want %q", userBody["email"], user.Email)
	}
	if userBody["sobriety_date"] != nil {
		t.Errorf("sobriety_date = %v, want null", userBody["sobriety_date"])
	}
}

func TestAuthHandler_Register_DuplicateEmailMapped(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, email, name, password string) (*model.User, *model.Session, error) {
			return nil, nil, model.NewEmailAlreadyRegisteredError()
		},
	}
	h := NewAuthHandler(svc)

	body := `{"email": "taro@example.com", "name": "Taro", "password": "correct horse battery"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	parseErrorResponse(t, w)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	user, session := testUserAndSession()
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*model.User, *model.Session, error) {
			return user, session, nil
		},
	}
	h := NewAuthHandler(svc)

	body := `{"email": "taro@example.com", "password": "correct horse battery"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	resp := decodeJSONBody(t, w)
	if resp["token"] != session.ID {
		t.Errorf("token = %v, want session ID", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentialsMapped(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*model.User, *model.Session, error) {
			return nil, nil, model.NewInvalidCredentialsError()
		},
	}
	h := NewAuthHandler(svc)

	body := `{"email": "taro@example.com", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	parseErrorResponse(t, w)
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	var loggedOut string
	svc := &mockAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req = withSessionID(req, "session-token")
	w := httptest.NewRecorder()
	h.Logout(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if loggedOut != "session-token" {
		t.Errorf("logged out session = %q, want session-token", loggedOut)
	}
}

func TestAuthHandler_Logout_MissingSessionContext(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	h.Logout(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	user, _ := testUserAndSession()
	svc := &mockAuthService{
		currentUserFn: func(ctx context.Context, sessionID string) (*model.User, error) {
			return user, nil
		},
	}
	h := NewAuthHandler(svc)

	req := withSessionID(httptest.NewRequest(http.MethodGet, "/auth/me", nil), "session-token")
	w := httptest.NewRecorder()
	h.Me(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	resp := decodeJSONBody(t, w)
	if resp["id"] != user.ID {
		t.Errorf("id = %v, want %q", resp["id"], user.ID)
	}
}

func TestAuthHandler_Me_ExpiredSessionMapped(t *testing.T) {
	svc := &mockAuthService{
		currentUserFn: func(ctx context.Context, sessionID string) (*model.User, error) {
			return nil, model.NewUnauthorizedError()
		},
	}
	h := NewAuthHandler(svc)

	req := withSessionID(httptest.NewRequest(http.MethodGet, "/auth/me", nil), "stale-token")
	w := httptest.NewRecorder()
	h.Me(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
