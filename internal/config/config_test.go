package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsec/cli/internal/models"
	"github.com/finsec/cli/internal/session"
)

func TestLoad_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finsec.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, path, cfg.Path())

	assert.Equal(t, "http://localhost:5000", cfg.Server.URL)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "table", cfg.Format.Default)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Limits.TopUpMin.Equal(decimal.NewFromInt(10)))
	require.Len(t, cfg.Contacts, 4)
	assert.True(t, cfg.Contacts[0].DailyLimit.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, models.ContactBlocked, cfg.Contacts[3].Status)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoad_ReadsNumbersIntoDecimals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finsec.yaml")
	content := `
server:
  url: https://bank.example.com
  timeout: 5s
limits:
  send_warn: 1500
  topup_min: 12.5
contacts:
  - id: "9"
    name: Ada
    daily_limit: 300
    current: 120.75
    last_request_date: "2024-03-20"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://bank.example.com", cfg.Server.URL)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)

	p := cfg.Policy()
	assert.True(t, p.SendWarn.Equal(decimal.NewFromInt(1500)))
	assert.True(t, p.TopUpMin.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, p.RequestWarn.Equal(decimal.NewFromInt(2000)))

	contact, ok := cfg.Contact("ada")
	require.True(t, ok)
	assert.Equal(t, models.ContactActive, contact.Status)
	assert.True(t, contact.Current.Equal(decimal.RequireFromString("120.75")))
	assert.Equal(t, "2024-03-20", contact.LastRequestDate)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finsec.yaml")
	t.Setenv("FINSEC_SERVER_URL", "https://staging.example.com")
	t.Setenv("FINSEC_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", cfg.Server.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finsec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finsec.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, cfg.SaveSession(session.Persisted{Token: "tok", UserID: "7", Email: "jane@example.com"}))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SessionConfig{Token: "tok", UserID: "7", Email: "jane@example.com"}, reloaded.Session)
	require.Len(t, reloaded.Contacts, 4)
	assert.True(t, reloaded.Contacts[0].Current.Equal(decimal.NewFromInt(200)))

	profile := reloaded.SavedProfile()
	assert.Equal(t, models.ID("7"), profile.ID)
	assert.Equal(t, "jane@example.com", profile.Email)

	require.NoError(t, reloaded.ClearSession())
	cleared, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cleared.Session.Token)
}

func TestRecordTransfer(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "finsec.yaml"))
	require.NoError(t, err)

	now := time.Date(2024, 3, 21, 12, 0, 0, 0, time.UTC)
	require.NoError(t, cfg.RecordTransfer("1", decimal.NewFromInt(50), true, now))
	require.NoError(t, cfg.Save())

	reloaded, err := Load(cfg.Path())
	require.NoError(t, err)
	contact, ok := reloaded.Contact("1")
	require.True(t, ok)
	assert.True(t, contact.Current.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "2024-03-21", contact.LastRequestDate)

	assert.Error(t, cfg.RecordTransfer("nope", decimal.NewFromInt(1), false, now))
}

func TestOutputFormat(t *testing.T) {
	t.Cleanup(func() { SetOutputFormat("") })

	SetOutputFormat("json")
	assert.Equal(t, "json", GetOutputFormat())
}

func TestSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("server.url", "https://bank.example.com/"))
	assert.Equal(t, "https://bank.example.com", cfg.Server.URL)

	require.NoError(t, cfg.Set("server.timeout", "45s"))
	assert.Equal(t, 45*time.Second, cfg.Server.Timeout)

	require.NoError(t, cfg.Set("limits.send_warn", "750"))
	assert.True(t, cfg.Policy().SendWarn.Equal(decimal.NewFromInt(750)))

	require.NoError(t, cfg.Set("format.colors", "false"))
	assert.False(t, cfg.Format.Colors)

	assert.Error(t, cfg.Set("server.url", "ftp://bank"))
	assert.Error(t, cfg.Set("limits.topup_min", "-1"))
	assert.Error(t, cfg.Set("format.default", "xml"))
	assert.Error(t, cfg.Set("session.token", "x"))
	assert.Contains(t, Keys(), "log.level")
}

func TestRecordTransfer_UsageResetsOnNewDay(t *testing.T) {
	cfg := Default()
	monday := time.Date(2024, 3, 18, 12, 0, 0, 0, time.Local)

	require.NoError(t, cfg.RecordTransfer("2", decimal.NewFromInt(2000), false, monday))
	contact, _ := cfg.Contact("2")
	assert.True(t, contact.Current.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "2024-03-18", contact.LastUsageDate)
	assert.True(t, contact.UsedOn(monday.AddDate(0, 0, 7)).IsZero())

	require.NoError(t, cfg.RecordTransfer("2", decimal.NewFromInt(1), false, monday.AddDate(0, 0, 7)))
	contact, _ = cfg.Contact("2")
	assert.True(t, contact.Current.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "2024-03-25", contact.LastUsageDate)
}

func TestRecordTransfer_NoLimitKeepsNoUsage(t *testing.T) {
	cfg := Default()
	cfg.Contacts = append(cfg.Contacts, models.Contact{ID: "5", Name: "Olivia Park", Status: models.ContactActive})
	now := time.Date(2024, 3, 18, 12, 0, 0, 0, time.Local)

	require.NoError(t, cfg.RecordTransfer("5", decimal.NewFromInt(5), false, now))
	require.NoError(t, cfg.RecordTransfer("5", decimal.NewFromInt(5), true, now))

	contact, _ := cfg.Contact("5")
	assert.True(t, contact.Current.IsZero())
	assert.Empty(t, contact.LastUsageDate)
	assert.Equal(t, "2024-03-18", contact.LastRequestDate)
}
