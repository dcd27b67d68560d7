package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopcheck/shopcheck/pkg/browser/browsertest"
)

func TestErrorText(t *testing.T) {
	page := browsertest.NewPage()
	hidden := browsertest.NewElement()
	hidden.Hidden = true
	hidden.TextVal = "should not be seen"
	page.Multi[".alert-danger"] = []*browsertest.Element{hidden}

	banner := browsertest.NewElement()
	banner.TextVal = "  Email already exists  \n"
	page.Multi[".error-message"] = []*browsertest.Element{banner}

	got := ErrorText(page, []string{".alert-danger", ".error-message"}, 0)
	assert.Equal(t, "Email already exists", got, "hidden elements skipped, text trimmed")
}

func TestErrorText_FirstSelectorWins(t *testing.T) {
	page := browsertest.NewPage()
	first := browsertest.NewElement()
	first.TextVal = "first message"
	page.Multi[".alert-danger"] = []*browsertest.Element{first}

	second := browsertest.NewElement()
	second.TextVal = "second message"
	page.Multi[".error-message"] = []*browsertest.Element{second}

	got := ErrorText(page, []string{".alert-danger", ".error-message"}, 0)
	assert.Equal(t, "first message", got)
}

func TestErrorText_WhitespaceOnlySkipped(t *testing.T) {
	page := browsertest.NewPage()
	blank := browsertest.NewElement()
	blank.TextVal = "   \n\t"
	page.Multi[".alert-danger"] = []*browsertest.Element{blank}

	assert.Empty(t, ErrorText(page, []string{".alert-danger"}, 0))
}

func TestErrorText_NoIndicators(t *testing.T) {
	page := browsertest.NewPage()
	assert.Empty(t, ErrorText(page, []string{".alert-danger", ".error-message"}, 0))
}

func TestAnyVisible(t *testing.T) {
	page := browsertest.NewPage()
	hidden := browsertest.NewElement()
	hidden.Hidden = true
	page.Multi[`[data-test="nav-menu"]`] = []*browsertest.Element{hidden}

	assert.False(t, AnyVisible(page, []string{`[data-test="nav-menu"]`, ".navbar-user"}))

	page.Multi[".navbar-user"] = []*browsertest.Element{browsertest.NewElement()}
	assert.True(t, AnyVisible(page, []string{`[data-test="nav-menu"]`, ".navbar-user"}))
}
