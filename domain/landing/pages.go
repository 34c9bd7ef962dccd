package landing

import (
	"github.com/hebed-ai/accelerator-landing/domain/capture"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// GoogleFormURL is the external application form shown on /apply. Nothing submitted there reaches this service.
const GoogleFormURL = "https://forms.gle/JwoteRg3Lv5gWmTG8"

// IdleViews returns a fresh, untouched view for every placement, keyed by placement id.
func IdleViews() map[string]capture.View {
	views := make(map[string]capture.View)
	for _, p := range capture.Placements() {
		views[p.ID] = capture.NewForm(p, nil).View()
	}
	return views
}

// LandingPage renders the long-form page. Missing views fall back to idle forms.
func LandingPage(views map[string]capture.View) g.Node {
	idle := IdleViews()
	view := func(p capture.Placement) capture.View {
		if v, ok := views[p.ID]; ok {
			return v
		}
		return idle[p.ID]
	}

	return Layout(
		PageConfig{},
		Main(
			heroSection(),
			trainingVideoSection(),
			waitlistCTASection(view(capture.HeroCTA)),
			highlightsSection(),
			aboutSection(),
			instructorsSection(),
			conferenceSection(),
			productBannerSection(view(capture.ProductBanner)),
			testimonialsSection(),
			finalCTASection(view(capture.FinalCTA)),
		),
	)
}

func WaitlistPage(form capture.View) g.Node {
	return Layout(
		PageConfig{Title: "Join the Waitlist - HEBED Accelerator"},
		Main(
			Class("bg-gray-900 min-h-screen flex items-center justify-center py-20 px-4"),
			capture.Render(form),
		),
	)
}

type EmbedConfig struct {
	Title       string
	Subtitle    string
	ShowUrgency bool
}

// GoogleFormEmbed frames the external application form with the same urgency copy as the cards.
func GoogleFormEmbed(config EmbedConfig) g.Node {
	if config.Title == "" {
		config.Title = "Secure Your Spot Now"
	}
	if config.Subtitle == "" {
		config.Subtitle = "Limited availability - Act fast!"
	}

	return Div(
		Class("bg-gray-800 p-8 rounded-lg max-w-2xl mx-auto"),
		Div(
			Class("text-center mb-6"),
			H3(Class("text-2xl font-bold text-white mb-2"), g.Text(config.Title)),
			P(Class("text-gray-300 mb-4"), g.Text(config.Subtitle)),
			g.If(config.ShowUrgency, Div(
				Class("bg-red-600 text-white p-4 rounded-lg mb-6"),
				P(Class("font-bold text-lg"), g.Text("URGENT: Limited Spots Available!")),
				Div(
					Class("flex items-center justify-center gap-4 text-sm mt-2"),
					Span(g.Text("227 reservations already made")),
					Span(Class("bg-white text-red-600 px-3 py-1 rounded-full font-bold"), g.Text("Only 33 spots left!")),
				),
			)),
		),
		Div(
			Class("bg-white rounded-lg overflow-hidden"),
			g.El("iframe",
				Src(GoogleFormURL),
				Width("100%"),
				Height("500"),
				g.Attr("frameborder", "0"),
				g.Attr("marginheight", "0"),
				g.Attr("marginwidth", "0"),
				Class("w-full"),
				g.Text("Loading…"),
			),
		),
		Div(
			Class("text-center mt-4"),
			P(Class("text-xs text-gray-400"), g.Text("🔥 Don't miss out - spots are filling up fast!")),
		),
	)
}

func ApplyPage() g.Node {
	return Layout(
		PageConfig{Title: "Apply - HEBED Accelerator"},
		Main(
			Class("bg-gray-900 min-h-screen py-20 px-4"),
			GoogleFormEmbed(EmbedConfig{ShowUrgency: true}),
		),
	)
}

func NotFoundPage() g.Node {
	return Layout(
		PageConfig{Title: "Not Found - HEBED Accelerator"},
		Main(
			Class("min-h-screen flex flex-col items-center justify-center gap-4 px-4 text-center"),
			H1(Class("text-4xl font-bold text-gray-900"), g.Text("Page not found")),
			A(Href("/"), Class("text-blue-600 underline"), g.Text("Back to the HEBED Accelerator")),
		),
	)
}
