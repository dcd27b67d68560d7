package scenario

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcheck/shopcheck/pkg/browser/browsertest"
)

func TestLoginRun_SuccessByURL(t *testing.T) {
	cfg := testConfig()
	page := loginPage(cfg)
	page.CurrentURL = cfg.AccountURL()

	outcome, err := NewLogin(page, cfg).Run(loginUser("login-001", "success"))
	require.NoError(t, err)
	assert.Equal(t, Success, outcome)
	assert.Equal(t, []string{"customer@example.com"}, page.Elements["#login-email"].Typed)
	assert.Equal(t, 1, page.Elements[cfg.Selectors.LoginSubmitCandidates[0]].Clicks)
}

func TestLoginRun_SuccessByURLTrailingSlash(t *testing.T) {
	cfg := testConfig()
	page := loginPage(cfg)
	page.CurrentURL = cfg.AccountURL() + "/"

	outcome, err := NewLogin(page, cfg).Run(loginUser("login-001", "success"))
	require.NoError(t, err)
	assert.Equal(t, Success, outcome)
}

func TestLoginRun_PrefixURLNotEnough(t *testing.T) {
	cfg := testConfig()
	page := loginPage(cfg)
	page.CurrentURL = cfg.AccountURL() + "/orders"

	outcome, err := NewLogin(page, cfg).Run(loginUser("login-002", "success"))
	require.NoError(t, err)
	assert.Equal(t, Fail, outcome, "account URL must match exactly, not by prefix")
}

func TestLoginRun_SuccessByMarker(t *testing.T) {
	cfg := testConfig()
	page := loginPage(cfg)
	page.CurrentURL = cfg.BaseURL + "/dashboard"
	page.Multi[`[data-test="nav-menu"]`] = []*browsertest.Element{browsertest.NewElement()}

	outcome, err := NewLogin(page, cfg).Run(loginUser("login-003", "success"))
	require.NoError(t, err)
	assert.Equal(t, Success, outcome)
}

func TestLoginRun_Fail(t *testing.T) {
	cfg := testConfig()
	page := loginPage(cfg)
	page.CurrentURL = cfg.BaseURL + cfg.LoginPath

	outcome, err := NewLogin(page, cfg).Run(loginUser("login-004", "fail"))
	require.NoError(t, err)
	assert.Equal(t, Fail, outcome)
}

func TestLoginRun_SecondSubmitCandidate(t *testing.T) {
	cfg := testConfig()
	page := loginPage(cfg)
	delete(page.Elements, cfg.Selectors.LoginSubmitCandidates[0])
	fallback := page.Add(cfg.Selectors.LoginSubmitCandidates[1])
	page.CurrentURL = cfg.AccountURL()

	outcome, err := NewLogin(page, cfg).Run(loginUser("login-005", "success"))
	require.NoError(t, err)
	assert.Equal(t, Success, outcome)
	assert.Equal(t, 1, fallback.Clicks)
	assert.Equal(t, 1, page.FindCalls[cfg.Selectors.LoginSubmitCandidates[0]], "candidates probed in order")
}

func TestLoginRun_SubmitNotFound(t *testing.T) {
	cfg := testConfig()
	page := loginPage(cfg)
	delete(page.Elements, cfg.Selectors.LoginSubmitCandidates[0])

	_, err := NewLogin(page, cfg).Run(loginUser("login-006", "success"))
	require.Error(t, err)

	var notFound *SubmitNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, cfg.Selectors.LoginSubmitCandidates, notFound.Candidates)
}

func TestLoginRun_SubmitClickFallsBackToJS(t *testing.T) {
	cfg := testConfig()
	page := loginPage(cfg)
	submit := page.Elements[cfg.Selectors.LoginSubmitCandidates[0]]
	submit.ClickErr = errors.New("covered by overlay")
	page.CurrentURL = cfg.AccountURL()

	outcome, err := NewLogin(page, cfg).Run(loginUser("login-007", "success"))
	require.NoError(t, err)
	assert.Equal(t, Success, outcome)
	assert.Equal(t, 1, submit.JSClicks)
}

func TestResetAuth_CookieClear(t *testing.T) {
	cfg := testConfig()
	page := browsertest.NewPage() // no user menu present

	NewLogin(page, cfg).ResetAuth()
	assert.Equal(t, 1, page.CookieWipes)
}

func TestResetAuth_LogoutViaMenu(t *testing.T) {
	cfg := testConfig()
	page := browsertest.NewPage()
	menu := page.Add(cfg.Selectors.UserMenu)
	signOut := page.Add(cfg.Selectors.SignOutLink)

	NewLogin(page, cfg).ResetAuth()
	assert.Equal(t, 1, menu.Clicks)
	assert.Equal(t, 1, signOut.Clicks)
	assert.Zero(t, page.CookieWipes, "logout path skips the cookie wipe")
}

func TestResetAuth_HiddenMenuFallsBackToCookies(t *testing.T) {
	cfg := testConfig()
	page := browsertest.NewPage()
	menu := page.Add(cfg.Selectors.UserMenu)
	menu.Hidden = true

	NewLogin(page, cfg).ResetAuth()
	assert.Zero(t, menu.Clicks)
	assert.Equal(t, 1, page.CookieWipes)
}

func TestResetAuth_FailedLogoutFallsBackToCookies(t *testing.T) {
	cfg := testConfig()
	page := browsertest.NewPage()
	menu := page.Add(cfg.Selectors.UserMenu)
	menu.ClickErr = errors.New("menu detached")

	NewLogin(page, cfg).ResetAuth()
	assert.Equal(t, 1, page.CookieWipes)
}
