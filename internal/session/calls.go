package session

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finsec/cli/internal/models"
	"github.com/finsec/cli/internal/movement"
	"github.com/finsec/cli/internal/utils"
)

// MaxPageSize is the largest page the transactions endpoint serves
const MaxPageSize = 50

// Cards lists the payment cards and replaces the cached balances with the server's.
func (m *Manager) Cards(ctx context.Context) ([]models.Card, error) {
	token, err := m.authToken()
	if err != nil {
		return nil, err
	}
	cards, err := m.backend.GetCards(ctx, token)
	if err != nil {
		return nil, err
	}

	balances := make([]models.CardBalance, 0, len(cards))
	for _, c := range cards {
		balances = append(balances, models.CardBalance{ID: c.ID, Balance: c.Balance})
	}

	m.mu.Lock()
	if m.token == token {
		m.user.Cards = balances
	}
	m.mu.Unlock()
	return cards, nil
}

// Card fetches one card with its limits
func (m *Manager) Card(ctx context.Context, id models.ID) (*models.CardDetails, error) {
	token, err := m.authToken()
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(id.String(), "card"); err != nil {
		return nil, err
	}
	return m.backend.GetCard(ctx, token, id)
}

// Transactions fetches one page of history
func (m *Manager) Transactions(ctx context.Context, q models.TransactionQuery) (*models.TransactionPage, error) {
	token, err := m.authToken()
	if err != nil {
		return nil, err
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	if q.MinAmount != nil && q.MaxAmount != nil && q.MinAmount.GreaterThan(*q.MaxAmount) {
		return nil, utils.NewValidationError("amount", "minimum amount must not exceed maximum amount")
	}
	return m.backend.GetTransactions(ctx, token, q)
}

// Bills lists the user's bills
func (m *Manager) Bills(ctx context.Context) ([]models.Bill, error) {
	token, err := m.authToken()
	if err != nil {
		return nil, err
	}
	return m.backend.GetBills(ctx, token)
}

// PayBill pays bill from the card paymentMethodID. The bill-pay rules run first; a
// blocking decision is returned without contacting the server. On success the card's
// cached balance is set to the balance the server reports.
func (m *Manager) PayBill(ctx context.Context, bill models.Bill, paymentMethodID string) (*models.PayBillResponse, movement.Decision, error) {
	token, err := m.authToken()
	if err != nil {
		return nil, movement.Decision{}, err
	}

	decision, err := m.policy.Evaluate(movement.Request{
		Kind:         movement.KindBillPay,
		Amount:       bill.Amount.String(),
		Counterparty: movement.FromBill(bill),
	})
	if err != nil {
		return nil, decision, err
	}
	if decision.Blocked() {
		m.logger.Debug().Str("bill_id", bill.ID.String()).Str("reason", decision.Message).Msg("bill payment blocked")
		return nil, decision, nil
	}
	if err := utils.ValidatePaymentMethodID(paymentMethodID); err != nil {
		return nil, decision, err
	}

	resp, err := m.backend.PayBill(ctx, token, models.PayBillRequest{
		BillID:          bill.ID,
		Amount:          bill.Amount,
		PaymentMethodID: models.ID(paymentMethodID),
	})
	if err != nil {
		return nil, decision, err
	}

	if !m.UpdateCardBalance(models.ID(paymentMethodID), resp.CardBalance) {
		m.logger.Debug().Str("card_id", paymentMethodID).Msg("paid from a card missing from the cached profile")
	}
	return resp, decision, nil
}

// Spending returns the category breakdown for week, month or year
func (m *Manager) Spending(ctx context.Context, period string) ([]models.SpendingCategory, error) {
	token, err := m.authToken()
	if err != nil {
		return nil, err
	}
	if err := utils.ValidatePeriod(period); err != nil {
		return nil, err
	}
	return m.backend.GetSpending(ctx, token, period)
}

// Notifications lists notifications and refreshes the cached unread count
func (m *Manager) Notifications(ctx context.Context) ([]models.Notification, error) {
	token, err := m.authToken()
	if err != nil {
		return nil, err
	}
	items, err := m.backend.GetNotifications(ctx, token)
	if err != nil {
		return nil, err
	}

	unread := models.UnreadCount(items)
	m.mu.Lock()
	if m.token == token {
		m.user.NotificationCount = unread
	}
	m.mu.Unlock()
	return items, nil
}

// MarkNotificationRead flags a notification as read
func (m *Manager) MarkNotificationRead(ctx context.Context, id models.ID) error {
	token, err := m.authToken()
	if err != nil {
		return err
	}
	if err := utils.ValidateRequired(id.String(), "notification"); err != nil {
		return err
	}
	return m.backend.MarkNotificationRead(ctx, token, id)
}

// UpdateProfile validates patch, sends it, and merges it into the cache once the
// server accepts it.
func (m *Manager) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (string, error) {
	token, err := m.authToken()
	if err != nil {
		return "", err
	}
	if err := validatePatch(patch); err != nil {
		return "", err
	}

	resp, err := m.backend.UpdateProfile(ctx, token, patch)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	if m.token == token {
		m.user.Apply(patch)
	}
	m.mu.Unlock()
	return resp.Message, nil
}

func validatePatch(patch models.ProfilePatch) error {
	if patch.IsEmpty() {
		return utils.NewValidationError("profile", "nothing to update")
	}

	errs := utils.NewMultiError()
	if patch.FirstName != nil {
		errs.Add(utils.ValidateName(*patch.FirstName, "first_name"))
	}
	if patch.LastName != nil {
		errs.Add(utils.ValidateName(*patch.LastName, "last_name"))
	}
	if patch.PreferredName != nil && len(*patch.PreferredName) > 100 {
		errs.Add(utils.NewValidationError("preferred_name", "must be at most 100 characters"))
	}
	if patch.Phone != nil && strings.TrimSpace(*patch.Phone) != "" {
		errs.Add(utils.ValidatePhone(*patch.Phone))
	}
	return errs.ErrorOrNil()
}

// GenerateMfaSecret enrolls the pending or signed-in user in MFA
func (m *Manager) GenerateMfaSecret(ctx context.Context) (*models.MfaSecret, error) {
	m.mu.RLock()
	var userID models.ID
	switch m.state {
	case MfaPending:
		userID = m.pending.UserID
	case Authenticated:
		userID = m.user.ID
	}
	m.mu.RUnlock()

	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return m.backend.GenerateMfaSecret(ctx, userID)
}

// CardBalance returns the cached balance of a card
func (m *Manager) CardBalance(cardID models.ID) (decimal.Decimal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.user.Cards {
		if c.ID == cardID {
			return c.Balance, true
		}
	}
	return decimal.Zero, false
}
