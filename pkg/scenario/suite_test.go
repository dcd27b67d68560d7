package scenario

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcheck/shopcheck/pkg/browser/browsertest"
	"github.com/shopcheck/shopcheck/pkg/fixtures"
)

func TestSuiteRunRegistrations(t *testing.T) {
	cfg := testConfig()
	page := registrationPage(cfg)
	page.CurrentURL = cfg.BaseURL + cfg.LoginPath // every case observes success

	results := NewSuite(page, cfg).RunRegistrations([]fixtures.RegistrationUser{
		regUser("reg-001", "success"),
		regUser("reg-002", "fail"), // expected a rejection, observed success
	})

	assert.Equal(t, []string{"reg-001"}, results.Passed)
	assert.Equal(t, []string{"reg-002"}, results.Failed)
	assert.Empty(t, results.Skipped)
	assert.Equal(t, 2, results.Total())
	assert.False(t, results.Ok())
}

func TestSuiteRunRegistrations_EnvErrorSkips(t *testing.T) {
	cfg := testConfig()
	page := registrationPage(cfg)
	page.CurrentURL = cfg.BaseURL + "/auth/register"

	banner := browsertest.NewElement()
	banner.TextVal = "item is out of stock"
	page.Multi[".alert-danger"] = []*browsertest.Element{banner}

	results := NewSuite(page, cfg).RunRegistrations([]fixtures.RegistrationUser{
		regUser("reg-001", "success"),
	})

	assert.Equal(t, []string{"reg-001"}, results.Skipped)
	assert.Empty(t, results.Passed, "environment error must not count as a pass")
	assert.Empty(t, results.Failed, "environment error must not count as a failure")
	assert.True(t, results.Ok())
}

func TestSuiteRunRegistrations_ScenarioErrorScreenshots(t *testing.T) {
	cfg := testConfig()
	cfg.ScreenshotDir = t.TempDir()
	page := registrationPage(cfg)
	delete(page.Elements, cfg.Selectors.SignInLink) // flow cannot even start

	results := NewSuite(page, cfg).RunRegistrations([]fixtures.RegistrationUser{
		regUser("reg-009", "success"),
	})

	assert.Equal(t, []string{"reg-009"}, results.Failed)
	require.Len(t, page.Screenshots, 1)
	assert.Equal(t, filepath.Join(cfg.ScreenshotDir, "reg-009.png"), page.Screenshots[0])
}

func TestSuiteRunLogins_ResetsAuthAfterEveryCase(t *testing.T) {
	cfg := testConfig()
	page := loginPage(cfg)
	page.CurrentURL = cfg.AccountURL()

	results := NewSuite(page, cfg).RunLogins([]fixtures.LoginUser{
		loginUser("login-001", "success"),
		loginUser("login-002", "success"),
	})

	assert.Equal(t, []string{"login-001", "login-002"}, results.Passed)
	assert.Equal(t, 2, page.CookieWipes, "auth reset runs after each case")
}

func TestSuiteRunLogins_MixedVerdicts(t *testing.T) {
	cfg := testConfig()
	page := loginPage(cfg)
	page.CurrentURL = cfg.BaseURL + cfg.LoginPath // nobody lands on the account page

	results := NewSuite(page, cfg).RunLogins([]fixtures.LoginUser{
		loginUser("login-001", "success"), // expected success, observed fail
		loginUser("login-002", "fail"),    // expected fail, observed fail
	})

	assert.Equal(t, []string{"login-002"}, results.Passed)
	assert.Equal(t, []string{"login-001"}, results.Failed)
	assert.False(t, results.Ok())
}
