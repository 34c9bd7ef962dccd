package capture

import (
	"github.com/hebed-ai/accelerator-landing/domain/waitlist"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Render draws the form in its current state. The returned node is the whole component, so
// htmx can swap it in place using the element id.
func Render(v View) g.Node {
	if v.Placement.Variant == VariantCompact {
		return compact(v)
	}
	return card(v)
}

func card(v View) g.Node {
	p := v.Placement

	if v.State == StateSubmitted {
		return h.Div(
			h.ID(p.ElementID()),
			h.Class("rounded-2xl p-8 text-center shadow-xl bg-gradient-to-br from-green-50 to-emerald-50 border-2 border-green-300"),
			g.Attr("role", "status"),
			h.H3(h.Class("text-2xl font-bold text-green-700 mb-2"), g.Text("🎉 You're In!")),
			h.P(h.Class("text-lg text-green-800 font-semibold"), g.Text("Your spot has been reserved successfully!")),
			h.P(h.Class("text-green-700 mt-2"), g.Text("We'll notify you as soon as the HEBED Accelerator launches.")),
		)
	}

	return h.Div(
		h.ID(p.ElementID()),
		h.Class("rounded-2xl p-6 md:p-8 shadow-xl "+p.Class),
		failureAttr(v),
		h.Div(
			h.Class("text-center mb-6"),
			h.H3(h.Class("text-2xl md:text-3xl font-extrabold text-gray-900 mb-2"), g.Text(p.Title)),
			h.P(h.Class("text-gray-700 font-medium"), g.Text(p.Subtitle)),
		),
		g.If(p.ShowUrgency, urgencyBanner()),
		emailForm(v, "Reserve Spot", "bg-gradient-to-r from-orange-500 to-red-600 hover:from-orange-600 hover:to-red-700"),
		errorLine(v),
		h.Div(
			h.Class("text-center mt-4 space-y-1"),
			h.P(h.Class("text-sm font-semibold text-red-600"), g.Text("🔥 Don't miss out - spots are filling up fast!")),
			h.P(h.Class("text-xs text-gray-500"), g.Text("We respect your privacy. Unsubscribe at any time.")),
		),
	)
}

func compact(v View) g.Node {
	p := v.Placement

	if v.State == StateSubmitted {
		return h.Div(
			h.ID(p.ElementID()),
			h.Class("p-8 rounded-lg max-w-md mx-auto text-center "+p.Class),
			g.Attr("role", "status"),
			h.H3(h.Class("text-xl font-semibold text-white mb-2"), g.Text("You're on the list!")),
			h.P(h.Class("text-gray-300"), g.Text("We'll notify you as soon as we launch.")),
		)
	}

	return h.Div(
		h.ID(p.ElementID()),
		h.Class("p-8 rounded-lg max-w-md mx-auto "+p.Class),
		failureAttr(v),
		h.Div(
			h.Class("text-center mb-6"),
			h.H3(h.Class("text-xl font-semibold text-white mb-2"), g.Text(p.Title)),
			h.P(h.Class("text-gray-300"), g.Text(p.Subtitle)),
		),
		emailForm(v, "Join Waitlist", "bg-blue-600 hover:bg-blue-700"),
		errorLine(v),
		h.P(h.Class("text-xs text-gray-400 text-center mt-4"), g.Text("We respect your privacy. Unsubscribe at any time.")),
	)
}

// urgencyBanner counters are static copy.
func urgencyBanner() g.Node {
	return h.Div(
		h.Class("bg-red-600 text-white rounded-lg p-4 mb-6 text-center animate-pulse"),
		h.P(h.Class("font-bold uppercase tracking-wide"), g.Text("URGENT: Limited Spots Available!")),
		h.Div(
			h.Class("flex justify-center gap-6 mt-2 text-sm"),
			h.Span(g.Text("227 reservations already made")),
			h.Span(h.Class("font-bold text-yellow-300"), g.Text("Only 33 spots left!")),
		),
	)
}

// failureAttr tags a failed component with its failure kind for styling and tests.
func failureAttr(v View) g.Node {
	if v.Failure == waitlist.KindNone {
		return nil
	}
	return h.Data("failure", v.Failure.String())
}

// emailForm posts normally without JavaScript; with htmx it swaps the component and disables
// the button while the request is in flight. The button stays disabled while the input is
// empty; a noscript copy keeps the form usable when the toggle script cannot run.
func emailForm(v View, label, buttonClass string) g.Node {
	p := v.Placement
	buttonID := p.ElementID() + "-submit"

	return h.Form(
		h.Class("flex flex-col sm:flex-row gap-3"),
		h.Action(p.ActionPath()),
		h.Method("post"),
		g.Attr("hx-post", p.ActionPath()),
		g.Attr("hx-target", "#"+p.ElementID()),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("hx-disabled-elt", "#"+buttonID),
		h.Input(
			h.Type("email"),
			h.Name("email"),
			h.Value(v.Email),
			h.Placeholder("Enter your email address"),
			h.Required(),
			h.AutoComplete("email"),
			g.Attr("oninput", "document.getElementById('"+buttonID+"').disabled = this.value === ''"),
			g.If(v.State == StateSubmitting, h.Disabled()),
			h.Class("flex-1 px-4 py-3 rounded-lg border-2 border-gray-300 focus:border-orange-500 focus:outline-none text-gray-900"),
		),
		h.Button(
			h.ID(buttonID),
			h.Type("submit"),
			g.If(v.SubmitDisabled, h.Disabled()),
			h.Class("px-6 py-3 rounded-lg font-bold text-white shadow-lg disabled:opacity-50 disabled:cursor-not-allowed "+buttonClass),
			g.If(v.State == StateSubmitting, g.Text("Submitting...")),
			g.If(v.State != StateSubmitting, g.Text(label)),
		),
		g.If(v.SubmitDisabled && v.State != StateSubmitting, h.NoScript(
			h.StyleEl(g.Raw("#"+buttonID+"{display:none}")),
			h.Button(
				h.Type("submit"),
				h.Class("px-6 py-3 rounded-lg font-bold text-white shadow-lg "+buttonClass),
				g.Text(label),
			),
		)),
	)
}

func errorLine(v View) g.Node {
	if v.Message == "" {
		return nil
	}
	return h.P(
		h.Class("mt-3 text-center text-sm font-semibold text-red-600"),
		g.Attr("role", "alert"),
		g.Text(v.Message),
	)
}
