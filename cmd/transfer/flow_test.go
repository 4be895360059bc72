package transfer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsec/cli/internal/app"
	"github.com/finsec/cli/internal/config"
	"github.com/finsec/cli/internal/models"
	"github.com/finsec/cli/internal/movement"
	"github.com/finsec/cli/internal/session"
)

// newTestApp builds an App on a temp config. An empty token leaves the session signed
// out; answers feed the confirmation prompts.
func newTestApp(t *testing.T, token, serverURL, answers string) *app.App {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "finsec.yaml"))
	require.NoError(t, err)
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}
	if token != "" {
		cfg.Session = config.SessionConfig{Token: token, UserID: "7", Email: "jane@example.com"}
	}

	a := app.New(cfg)
	a.Prompt = app.NewPrompterFrom(strings.NewReader(answers), io.Discard)
	return a
}

func newTestCommand(t *testing.T, a *app.App, flags map[string]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{}
	c.Flags().String("to", "", "")
	c.Flags().String("from", "", "")
	c.Flags().String("method", "", "")
	addMovementFlags(c)
	for name, value := range flags {
		require.NoError(t, c.Flags().Set(name, value))
	}
	c.SetContext(app.NewContext(context.Background(), a))
	return c
}

func savedContact(t *testing.T, a *app.App, id string) models.Contact {
	t.Helper()
	cfg, err := config.Load(a.Config.Path())
	require.NoError(t, err)
	contact, ok := cfg.Contact(id)
	require.True(t, ok)
	return contact
}

func TestSend_RequiresLogin(t *testing.T) {
	a := newTestApp(t, "", "", "")
	cmd := newTestCommand(t, a, map[string]string{"to": "2", "amount": "5", "yes": "true"})

	err := runSend(cmd, nil)
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)

	contact := savedContact(t, a, "2")
	assert.True(t, contact.Current.IsZero())
	assert.Empty(t, contact.LastUsageDate)

	inMemory, _ := a.Config.Contact("2")
	assert.True(t, inMemory.Current.IsZero())
}

func TestRequest_RequiresLogin(t *testing.T) {
	a := newTestApp(t, "", "", "")
	cmd := newTestCommand(t, a, map[string]string{"from": "2", "amount": "5", "yes": "true"})

	assert.ErrorIs(t, runRequest(cmd, nil), session.ErrNotAuthenticated)
	assert.Empty(t, savedContact(t, a, "2").LastRequestDate)
}

func TestTopUp_RequiresLogin(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	t.Cleanup(srv.Close)

	a := newTestApp(t, "", srv.URL, "")
	cmd := newTestCommand(t, a, map[string]string{"method": "c1", "amount": "50", "yes": "true"})

	assert.ErrorIs(t, runTopUp(cmd, nil), session.ErrNotAuthenticated)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestSend_BlockRecordsNothing(t *testing.T) {
	a := newTestApp(t, "tok", "", "")
	// Sarah Johnson: daily 1000, 200 already used
	cmd := newTestCommand(t, a, map[string]string{"to": "1", "amount": "900", "yes": "true"})

	err := runSend(cmd, nil)
	var blocked *app.BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, "Daily limit exceeded", blocked.Decision.Message)
	assert.Equal(t, "Remaining limit for today: $800", blocked.Decision.Detail)

	contact := savedContact(t, a, "1")
	assert.True(t, contact.Current.Equal(decimal.NewFromInt(200)))
	assert.Empty(t, contact.LastUsageDate)
}

func TestSend_DeclinedWarningRecordsNothing(t *testing.T) {
	a := newTestApp(t, "tok", "", "n\n")
	// Michael Chen: daily 2000, nothing used; 1500 is over the send ceiling
	cmd := newTestCommand(t, a, map[string]string{"to": "2", "amount": "1500"})

	err := runSend(cmd, nil)
	assert.ErrorIs(t, err, app.ErrCancelled)
	assert.True(t, savedContact(t, a, "2").Current.IsZero())
}

func TestSend_YesSkipsPrompt(t *testing.T) {
	// no answers: reaching the prompt would fail with EOF
	a := newTestApp(t, "tok", "", "")
	cmd := newTestCommand(t, a, map[string]string{"to": "Michael Chen", "amount": "1500", "yes": "true"})

	require.NoError(t, runSend(cmd, nil))

	contact := savedContact(t, a, "2")
	assert.True(t, contact.Current.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, time.Now().Format(models.DateLayout), contact.LastUsageDate)
}

func TestSend_ConfirmedRecordsUsage(t *testing.T) {
	a := newTestApp(t, "tok", "", "y\n")
	cmd := newTestCommand(t, a, map[string]string{"to": "1", "amount": "50"})

	require.NoError(t, runSend(cmd, nil))
	assert.True(t, savedContact(t, a, "1").Current.Equal(decimal.NewFromInt(250)))
}

func TestSend_ContactWithoutLimitCanRepeat(t *testing.T) {
	a := newTestApp(t, "tok", "", "")
	a.Config.Contacts = append(a.Config.Contacts, models.Contact{ID: "5", Name: "Olivia Park", Status: models.ContactActive})

	for i := 0; i < 2; i++ {
		cmd := newTestCommand(t, a, map[string]string{"to": "5", "amount": "5", "yes": "true"})
		require.NoError(t, runSend(cmd, nil))
	}
	assert.True(t, savedContact(t, a, "5").Current.IsZero())
}

func TestRequest_MarksRequestDate(t *testing.T) {
	a := newTestApp(t, "tok", "", "")
	cmd := newTestCommand(t, a, map[string]string{"from": "2", "amount": "25", "yes": "true"})

	require.NoError(t, runRequest(cmd, nil))
	assert.Equal(t, time.Now().Format(models.DateLayout), savedContact(t, a, "2").LastRequestDate)

	// a second request today warns and needs confirmation
	cmd = newTestCommand(t, a, map[string]string{"from": "2", "amount": "25"})
	assert.ErrorIs(t, runRequest(cmd, nil), io.EOF)
}

func cardServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		if r.URL.Path != "/api/cards/c1" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id":"c1","cardNumber":"4111111111111111","bankName":"Chase","balance":100,
			"limits":{"daily":5000,"monthly":20000,"remaining":{"daily":300,"monthly":1000}}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTopUp_UsesCardDailyLimit(t *testing.T) {
	srv := cardServer(t)

	a := newTestApp(t, "tok", srv.URL, "")
	cmd := newTestCommand(t, a, map[string]string{"method": "c1", "amount": "500", "yes": "true"})

	err := runTopUp(cmd, nil)
	var blocked *app.BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, movement.Block, blocked.Decision.Outcome)
	assert.Equal(t, "Remaining limit for today: $300", blocked.Decision.Detail)

	cmd = newTestCommand(t, a, map[string]string{"method": "c1", "amount": "200", "yes": "true"})
	assert.NoError(t, runTopUp(cmd, nil))
}
