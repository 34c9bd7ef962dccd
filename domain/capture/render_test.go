package capture

import (
	"strings"
	"testing"

	"github.com/hebed-ai/accelerator-landing/domain/waitlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, v View) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, Render(v).Render(&b))
	return b.String()
}

func TestRender_IdleCard(t *testing.T) {
	html := render(t, NewForm(HeroCTA, nil).View())

	assert.Contains(t, html, `id="capture-hero-cta"`)
	assert.Contains(t, html, `hx-post="/forms/hero-cta"`)
	assert.Contains(t, html, `action="/forms/hero-cta"`)
	assert.Contains(t, html, `hx-swap="outerHTML"`)
	assert.Contains(t, html, `hx-disabled-elt="#capture-hero-cta-submit"`)
	assert.Contains(t, html, "URGENT: Limited Spots Available!")
	assert.Contains(t, html, "Reserve Spot")
	assert.NotContains(t, html, `role="alert"`)
	assert.NotContains(t, html, "data-failure")
	assert.Contains(t, html, `id="capture-hero-cta-submit" type="submit" disabled`)
	assert.Contains(t, html, "<noscript><style>#capture-hero-cta-submit{display:none}</style>")
	assert.Contains(t, html, "oninput=")
}

func TestRender_SubmitEnabledOnceEmailTyped(t *testing.T) {
	f := NewForm(HeroCTA, nil)
	f.SetEmail("user@example.com")
	html := render(t, f.View())

	assert.Contains(t, html, `value="user@example.com"`)
	assert.NotContains(t, html, `type="submit" disabled`)
	assert.NotContains(t, html, "<noscript>")
}

func TestRender_UrgencyOnlyWhereConfigured(t *testing.T) {
	html := render(t, NewForm(ProductBanner, nil).View())

	assert.Contains(t, html, "⚡ Claim Your Spot!")
	assert.NotContains(t, html, "URGENT: Limited Spots Available!")
}

func TestRender_FailedKeepsInput(t *testing.T) {
	html := render(t, View{
		Placement: FinalCTA,
		State:     StateFailed,
		Email:     "user@example.com",
		Message:   MessageDuplicate,
		Failure:   waitlist.KindDuplicate,
	})

	assert.Contains(t, html, `data-failure="duplicate"`)
	assert.Contains(t, html, `value="user@example.com"`)
	assert.Contains(t, html, "This email is already registered!")
	assert.Contains(t, html, `role="alert"`)
}

func TestRender_Submitted(t *testing.T) {
	html := render(t, View{Placement: HeroCTA, State: StateSubmitted})

	assert.Contains(t, html, `id="capture-hero-cta"`)
	assert.Contains(t, html, "You&#39;re In!")
	assert.NotContains(t, html, "<form")
}

func TestRender_Compact(t *testing.T) {
	html := render(t, NewForm(WaitlistPage, nil).View())
	assert.Contains(t, html, "Join the Waitlist")
	assert.Contains(t, html, "Join Waitlist")
	assert.NotContains(t, html, "URGENT")

	html = render(t, View{Placement: WaitlistPage, State: StateSubmitted})
	assert.Contains(t, html, "You&#39;re on the list!")
}

func TestRender_SubmittingDisablesButton(t *testing.T) {
	html := render(t, View{Placement: HeroCTA, State: StateSubmitting, Email: "user@example.com", SubmitDisabled: true})
	assert.Contains(t, html, `type="submit" disabled`)
	assert.NotContains(t, html, "<noscript>")
	assert.Contains(t, html, "Submitting...")
}
