package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/user"
)

// mockUserService はUserServiceInterfaceのモック実装。
type mockUserService struct {
	getProfileFn     func(ctx context.Context, userID string) (*model.User, error)
	updateProfileFn  func(ctx context.Context, userID string, patch user.ProfilePatch) (*model.User, error)
	changePasswordFn func(ctx context.Context, userID, currentPassword, newPassword string) error
	withdrawFn       func(ctx context.Context, userID string) error
}

func (m *mockUserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID string, patch user.ProfilePatch) (*model.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, patch)
	}
	return nil, nil
}

func (m *mockUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, userID, currentPassword, newPassword)
	}
	return nil
}

func (m *mockUserService) Withdraw(ctx context.Context, userID string) error {
	if m.withdrawFn != nil {
		return m.withdrawFn(ctx, userID)
	}
	return nil
}

func TestUserHandler_GetProfile_FormatsSobrietyDate(t *testing.T) {
	sobriety := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	svc := &mockUserService{
		getProfileFn: func(ctx context.Context, userID string) (*model.User, error) {
			return &model.User{
				ID:           userID,
				Email:        "taro@example.com",
				Name:         "Taro",
				SobrietyDate: &sobriety,
				CreatedAt:    time.Now(),
			}, nil
		},
	}
	h := NewUserHandler(svc)

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/user/profile", nil), "user-1")
	w := httptest.NewRecorder()
	h.GetProfile(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	resp := decodeJSONBody(t, w)
	if resp["sobriety_date"] != "2025-12-01" {
		t.Errorf("sobriety_date = %v, want 2025-12-01", resp["sobriety_date"])
	}
}

func TestUserHandler_UpdateProfile_ParsesDate(t *testing.T) {
	svc := &mockUserService{
		updateProfileFn: func(ctx context.Context, userID string, patch user.ProfilePatch) (*model.User, error) {
			if patch.SobrietyDate == nil {
				t.Fatal("sobriety_date patch must be set")
			}
			if got := patch.SobrietyDate.Format("2006-01-02"); got != "2026-01-15" {
				t.Errorf("sobriety_date = %q, want 2026-01-15", got)
			}
			return &model.User{ID: userID, SobrietyDate: patch.SobrietyDate}, nil
		},
	}
	h := NewUserHandler(svc)

	body := `{"sobriety_date": "2026-01-15"}`
	req := withUserID(httptest.NewRequest(http.MethodPut, "/api/user/profile", bytes.NewBufferString(body)), "user-1")
	w := httptest.NewRecorder()
	h.UpdateProfile(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestUserHandler_UpdateProfile_InvalidDateShape(t *testing.T) {
	h := NewUserHandler(&mockUserService{
		updateProfileFn: func(ctx context.Context, userID string, patch user.ProfilePatch) (*model.User, error) {
			t.Error("service must not be called for an unparsable date")
			return nil, nil
		},
	})

	body := `{"sobriety_date": "15/01/2026"}`
	req := withUserID(httptest.NewRequest(http.MethodPut, "/api/user/profile", bytes.NewBufferString(body)), "user-1")
	w := httptest.NewRecorder()
	h.UpdateProfile(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	parseErrorResponse(t, w)
}

func TestUserHandler_UpdateProfile_FutureDateMapped(t *testing.T) {
	svc := &mockUserService{
		updateProfileFn: func(ctx context.Context, userID string, patch user.ProfilePatch) (*model.User, error) {
			return nil, model.NewSobrietyDateInFutureError()
		},
	}
	h := NewUserHandler(svc)

	body := `{"sobriety_date": "2030-01-01"}`
	req := withUserID(httptest.NewRequest(http.MethodPut, "/api/user/profile", bytes.NewBufferString(body)), "user-1")
	w := httptest.NewRecorder()
	h.UpdateProfile(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUserHandler_ChangePassword_Success(t *testing.T) {
	var gotCurrent, gotNew string
	svc := &mockUserService{
		changePasswordFn: func(ctx context.Context, userID, currentPassword, newPassword string) error {
			gotCurrent, gotNew = currentPassword, newPassword
			return nil
		},
	}
	h := NewUserHandler(svc)

	body := `{"current_password": "old password", "new_password": "new long password"}`
	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/user/change-password", bytes.NewBufferString(body)), "user-1")
	w := httptest.NewRecorder()
	h.ChangePassword(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if gotCurrent != "old password" || gotNew != "new long password" {
		t.Errorf("passwords passed = (%q, %q)", gotCurrent, gotNew)
	}
}

func TestUserHandler_ChangePassword_WrongPasswordMapped(t *testing.T) {
	svc := &mockUserService{
		changePasswordFn: func(ctx context.Context, userID, currentPassword, newPassword string) error {
			return model.NewWrongPasswordError()
		},
	}
	h := NewUserHandler(svc)

	body := `{"current_password": "wrong", "new_password": "new long password"}`
	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/user/change-password", bytes.NewBufferString(body)), "user-1")
	w := httptest.NewRecorder()
	h.ChangePassword(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	parseErrorResponse(t, w)
}

func TestUserHandler_Withdraw_Success(t *testing.T) {
	var withdrawn string
	svc := &mockUserService{
		withdrawFn: func(ctx context.Context, userID string) error {
			withdrawn = userID
			return nil
		},
	}
	h := NewUserHandler(svc)

	req := withUserID(httptest.NewRequest(http.MethodDelete, "/api/users/me", nil), "user-1")
	w := httptest.NewRecorder()
	h.Withdraw(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if withdrawn != "user-1" {
		t.Errorf("withdrawn user = %q, want user-1", withdrawn)
	}
}

func TestUserHandler_Withdraw_MissingUserContext(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/users/me", nil)
	w := httptest.NewRecorder()
	h.Withdraw(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
