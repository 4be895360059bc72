package session

import (
	"context"
	"errors"
	"sync"

	"github.com/finsec/cli/internal/models"
)

// fakeBackend records every call so tests can assert no request was sent
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int

	loginResp   *models.LoginResponse
	loginErr    error
	verifyResp  *models.LoginResponse
	verifyErr   error
	verifyReqs  []models.VerifyMfaRequest
	profile     *models.Profile
	profileErr  error
	cards       []models.Card
	bills       []models.Bill
	payResp     *models.PayBillResponse
	payErr      error
	payReqs     []models.PayBillRequest
	patches     []models.ProfilePatch
	notes       []models.Notification
	logoutErr   error
	secret      *models.MfaSecret
	secretUsers []models.ID
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string]int{}}
}

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeBackend) Login(_ context.Context, _, _ string) (*models.LoginResponse, error) {
	f.record("login")
	return f.loginResp, f.loginErr
}

func (f *fakeBackend) VerifyMfa(_ context.Context, req models.VerifyMfaRequest) (*models.LoginResponse, error) {
	f.record("verify")
	f.verifyReqs = append(f.verifyReqs, req)
	return f.verifyResp, f.verifyErr
}

func (f *fakeBackend) GenerateMfaSecret(_ context.Context, userID models.ID) (*models.MfaSecret, error) {
	f.record("secret")
	f.secretUsers = append(f.secretUsers, userID)
	return f.secret, nil
}

func (f *fakeBackend) Logout(context.Context, string) error {
	f.record("logout")
	return f.logoutErr
}

func (f *fakeBackend) GetProfile(context.Context, string) (*models.Profile, error) {
	f.record("profile")
	return f.profile, f.profileErr
}

func (f *fakeBackend) UpdateProfile(_ context.Context, _ string, patch models.ProfilePatch) (*models.MessageResponse, error) {
	f.record("update_profile")
	f.patches = append(f.patches, patch)
	return &models.MessageResponse{Message: "Profile updated successfully"}, nil
}

func (f *fakeBackend) GetCards(context.Context, string) ([]models.Card, error) {
	f.record("cards")
	return f.cards, nil
}

func (f *fakeBackend) GetCard(_ context.Context, _ string, id models.ID) (*models.CardDetails, error) {
	f.record("card")
	for _, c := range f.cards {
		if c.ID == id {
			return &models.CardDetails{Card: c}, nil
		}
	}
	return nil, errors.New("card not found")
}

func (f *fakeBackend) GetTransactions(_ context.Context, _ string, q models.TransactionQuery) (*models.TransactionPage, error) {
	f.record("transactions")
	return &models.TransactionPage{Pagination: models.Pagination{Page: q.Page, Limit: q.Limit}}, nil
}

func (f *fakeBackend) GetBills(context.Context, string) ([]models.Bill, error) {
	f.record("bills")
	return f.bills, nil
}

func (f *fakeBackend) PayBill(_ context.Context, _ string, req models.PayBillRequest) (*models.PayBillResponse, error) {
	f.record("pay")
	f.payReqs = append(f.payReqs, req)
	return f.payResp, f.payErr
}

func (f *fakeBackend) GetSpending(context.Context, string, string) ([]models.SpendingCategory, error) {
	f.record("spending")
	return nil, nil
}

func (f *fakeBackend) GetNotifications(context.Context, string) ([]models.Notification, error) {
	f.record("notifications")
	return f.notes, nil
}

func (f *fakeBackend) MarkNotificationRead(context.Context, string, models.ID) error {
	f.record("mark_read")
	return nil
}

// memoryStore is a Store kept in memory
type memoryStore struct {
	saved   *Persisted
	cleared int
	saveErr error
}

func (s *memoryStore) SaveSession(p Persisted) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = &p
	return nil
}

func (s *memoryStore) ClearSession() error {
	s.saved = nil
	s.cleared++
	return nil
}
