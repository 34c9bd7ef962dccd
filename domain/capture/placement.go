package capture

import (
	"github.com/hebed-ai/accelerator-landing/domain/waitlist"
)

type Variant int

const (
	// VariantCard is the full reservation card with urgency copy.
	VariantCard Variant = iota
	// VariantCompact is the plain waitlist form used on its own page.
	VariantCompact
)

// Placement is the static configuration of one form on a page. Source is sent with every insert.
type Placement struct {
	ID          string
	Source      string
	Title       string
	Subtitle    string
	ShowUrgency bool
	Class       string
	Variant     Variant
}

const defaultCardClass = "bg-gradient-to-br from-orange-50 to-red-50 border-2 border-orange-300"

var (
	HeroCTA = Placement{
		ID:          "hero-cta",
		Source:      waitlist.SourceHeroCTA,
		Title:       "🚀 Reserve Your Spot Now!",
		Subtitle:    "876 entrepreneurs have already secured their place - don't get left behind!",
		ShowUrgency: true,
		Class:       defaultCardClass,
		Variant:     VariantCard,
	}

	ProductBanner = Placement{
		ID:          "product-banner",
		Source:      waitlist.SourceProductBanner,
		Title:       "⚡ Claim Your Spot!",
		Subtitle:    "Only 33 spots remaining out of 260 total!",
		ShowUrgency: false,
		Class:       "bg-white border border-gray-200",
		Variant:     VariantCard,
	}

	FinalCTA = Placement{
		ID:          "final-cta",
		Source:      waitlist.SourceFinalCTA,
		Title:       "🔥 FINAL CALL - Reserve Now!",
		Subtitle:    "Join the exclusive group transforming their business with AI",
		ShowUrgency: true,
		Class:       defaultCardClass,
		Variant:     VariantCard,
	}

	WaitlistPage = Placement{
		ID:       "waitlist-page",
		Source:   waitlist.SourceWaitlistPage,
		Title:    "Join the Waitlist",
		Subtitle: "Be the first to know when we launch",
		Class:    "bg-gray-800",
		Variant:  VariantCompact,
	}
)

var placements = []Placement{HeroCTA, ProductBanner, FinalCTA, WaitlistPage}

// Lookup finds a placement by the id used in its form URL.
func Lookup(id string) (Placement, bool) {
	for _, p := range placements {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}

func Placements() []Placement {
	out := make([]Placement, len(placements))
	copy(out, placements)
	return out
}

// ActionPath is where the placement's form posts to.
func (p Placement) ActionPath() string {
	return "/forms/" + p.ID
}

func (p Placement) ElementID() string {
	return "capture-" + p.ID
}
