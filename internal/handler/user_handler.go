package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/user"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, patch user.ProfilePatch) (*model.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	Withdraw(ctx context.Context, userID string) error
}

// UserHandler はユーザープロフィール管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// userResponse はユーザー情報のAPIレスポンス。
type userResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	SobrietyDate *string   `json:"sobriety_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// toUserResponse はmodel.UserからAPIレスポンスに変換する。
// sobriety_dateは日付のみをYYYY-MM-DD形式で返す。
func toUserResponse(u *model.User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
	if u.SobrietyDate != nil {
		date := u.SobrietyDate.Format("2006-01-02")
		resp.SobrietyDate = &date
	}
	return resp
}

type updateProfileRequest struct {
	Name         *string `json:"name"`
	SobrietyDate *string `json:"sobriety_date"` // YYYY-MM-DD
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// GetProfile はプロフィールを取得する。
// GET /api/user/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}

	u, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// UpdateProfile はプロフィールを部分更新する。
// PUT /api/user/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}

	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := user.ProfilePatch{Name: req.Name}
	if req.SobrietyDate != nil {
		date, err := time.Parse("2006-01-02", *req.SobrietyDate)
		if err != nil {
			handleServiceError(w, model.NewInvalidDateError(*req.SobrietyDate))
			return
		}
		patch.SobrietyDate = &date
	}

	u, err := h.service.UpdateProfile(r.Context(), userID, patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// ChangePassword はパスワードを変更する。
// POST /api/user/change-password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}

	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Withdraw は退会処理を実行する。
// DELETE /api/users/me
func (h *UserHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}

	if err := h.service.Withdraw(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
