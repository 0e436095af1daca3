package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/security"
)

type mockUserRepo struct {
	users       map[string]*model.User
	deleteCalls int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Create(_ context.Context, u *model.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, u *model.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	if u, ok := m.users[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (m *mockUserRepo) DeleteByID(_ context.Context, id string) error {
	m.deleteCalls++
	delete(m.users, id)
	return nil
}

type mockSessionRepo struct {
	deletedUserIDs []string
}

func (m *mockSessionRepo) Create(_ context.Context, _ *model.Session) error { return nil }

func (m *mockSessionRepo) FindByID(_ context.Context, _ string) (*model.Session, error) {
	return nil, nil
}

func (m *mockSessionRepo) DeleteByID(_ context.Context, _ string) error { return nil }

func (m *mockSessionRepo) DeleteByUserID(_ context.Context, userID string) error {
	m.deletedUserIDs = append(m.deletedUserIDs, userID)
	return nil
}

func newTestService() (*Service, *mockUserRepo, *mockSessionRepo) {
	userRepo := newMockUserRepo()
	sessionRepo := &mockSessionRepo{}
	svc := NewService(userRepo, sessionRepo, security.NewTextSanitizer(), bcrypt.MinCost)
	return svc, userRepo, sessionRepo
}

func seedUser(repo *mockUserRepo, id, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{
		ID:           id,
		Email:        id + "@example.com",
		Name:         "User " + id,
		PasswordHash: string(hash),
	}
	repo.users[id] = u
	return u
}

// --- GetProfile / UpdateProfile ---

func TestGetProfile_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetProfile(context.Background(), "missing")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUserNotFound {
		t.Fatalf("expected USER_NOT_FOUND error, got %v", err)
	}
}

func TestUpdateProfile_PatchesName(t *testing.T) {
	svc, repo, _ := newTestService()
	seedUser(repo, "u1", "Passw0rd")

	name := "New Name"
	updated, err := svc.UpdateProfile(context.Background(), "u1", ProfilePatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "New Name" {
		t.Errorf("name = %q, want %q", updated.Name, "New Name")
	}
}

func TestUpdateProfile_SobrietyDateInFuture(t *testing.T) {
	svc, repo, _ := newTestService()
	seedUser(repo, "u1", "Passw0rd")

	future := time.Now().Add(48 * time.Hour)
	_, err := svc.UpdateProfile(context.Background(), "u1", ProfilePatch{SobrietyDate: &future})
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeSobrietyDateInFuture {
		t.Fatalf("expected SOBRIETY_DATE_IN_FUTURE error, got %v", err)
	}
}

func TestUpdateProfile_PastSobrietyDateAccepted(t *testing.T) {
	svc, repo, _ := newTestService()
	seedUser(repo, "u1", "Passw0rd")

	past := time.Now().Add(-30 * 24 * time.Hour)
	updated, err := svc.UpdateProfile(context.Background(), "u1", ProfilePatch{SobrietyDate: &past})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.SobrietyDate == nil || !updated.SobrietyDate.Equal(past) {
		t.Errorf("sobriety_date = %v, want %v", updated.SobrietyDate, past)
	}
}

func TestUpdateProfile_NothingToUpdate(t *testing.T) {
	svc, repo, _ := newTestService()
	seedUser(repo, "u1", "Passw0rd")

	_, err := svc.UpdateProfile(context.Background(), "u1", ProfilePatch{})
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeNothingToUpdate {
		t.Fatalf("expected NOTHING_TO_UPDATE error, got %v", err)
	}
}

// --- ChangePassword ---

func TestChangePassword_Success(t *testing.T) {
	svc, repo, _ := newTestService()
	seedUser(repo, "u1", "OldPass1")

	if err := svc.ChangePassword(context.Background(), "u1", "OldPass1", "NewPass2"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	hash := repo.users["u1"].PasswordHash
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("NewPass2")); err != nil {
		t.Error("stored hash must match the new password")
	}
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	svc, repo, _ := newTestService()
	seedUser(repo, "u1", "OldPass1")

	err := svc.ChangePassword(context.Background(), "u1", "NotMyPass1", "NewPass2")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeWrongPassword {
		t.Fatalf("expected WRONG_PASSWORD error, got %v", err)
	}
}

func TestChangePassword_NewPasswordPolicy(t *testing.T) {
	svc, repo, _ := newTestService()
	seedUser(repo, "u1", "OldPass1")

	err := svc.ChangePassword(context.Background(), "u1", "OldPass1", "weak")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidPassword {
		t.Fatalf("expected INVALID_PASSWORD error, got %v", err)
	}
}

// --- Withdraw ---

func TestWithdraw_DeletesSessionsThenUser(t *testing.T) {
	svc, userRepo, sessionRepo := newTestService()
	seedUser(userRepo, "u1", "Passw0rd")

	if err := svc.Withdraw(context.Background(), "u1"); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}

	if len(sessionRepo.deletedUserIDs) != 1 || sessionRepo.deletedUserIDs[0] != "u1" {
		t.Errorf("session deletions = %v, want [u1]", sessionRepo.deletedUserIDs)
	}
	if userRepo.deleteCalls != 1 {
		t.Errorf("user deletions = %d, want 1", userRepo.deleteCalls)
	}
	if _, ok := userRepo.users["u1"]; ok {
		t.Error("user should have been deleted")
	}
}

func TestWithdraw_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Withdraw(context.Background(), "missing")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUserNotFound {
		t.Fatalf("expected USER_NOT_FOUND error, got %v", err)
	}
}
