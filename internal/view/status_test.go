package view_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkazala/work20/internal/view"
)

func TestParseStatus(t *testing.T) {
	assert.Equal(t, view.StatusSuccessEditInternship, view.ParseStatus(view.StatusSuccessEditInternship.String()))
	assert.Equal(t, view.StatusFailure, view.ParseStatus("failure"))
	assert.Equal(t, view.StatusIdle, view.ParseStatus(""))
	assert.Equal(t, view.StatusIdle, view.ParseStatus("nonsense"))
}

func TestStatusPopup(t *testing.T) {
	var p view.StatusPopup
	assert.False(t, p.Open())

	p.Show(view.Result{Status: view.StatusSuccessAddStartUp})
	assert.True(t, p.Open())
	assert.Equal(t, "work20.status.success-add-start-up", p.Status().MessageKey())

	p.Reset()
	assert.False(t, p.Open())
	assert.Equal(t, view.StatusIdle, p.Status())
}

func TestNewPage_ReadsAndStripsStatus(t *testing.T) {
	u, err := url.Parse("/work20?internship=abc&status=failure")
	require.NoError(t, err)

	p := view.NewPage("en", nil, false, u)

	assert.Equal(t, view.StatusFailure, p.Popup.Status())
	assert.Equal(t, "/work20?internship=abc", p.PopupClose)
}

func TestWithStatus(t *testing.T) {
	assert.Equal(t, "/work20?status=success-delete-internship",
		view.WithStatus("/work20", view.Result{Status: view.StatusSuccessDeleteInternship}))
	assert.Equal(t, "/work20", view.WithStatus("/work20", view.Result{}))
}

func TestAlert_ClickAwayIsIgnored(t *testing.T) {
	a := view.NewAlert(view.AlertGetStartUps)

	a.Dismiss(view.ReasonClickAway)
	assert.True(t, a.Open())

	for _, reason := range []view.DismissReason{view.ReasonClose, view.ReasonTimeout, view.ReasonEscape} {
		a := view.NewAlert(view.AlertGetStartUps)
		a.Dismiss(reason)
		assert.False(t, a.Open(), "reason %d", reason)
	}
}
