package waitlist

// Source tags identify the page placement that produced a submission. They are attribution only.
const (
	SourceHeroCTA       = "hero-cta"
	SourceProductBanner = "product-banner"
	SourceFinalCTA      = "final-cta"
	SourceWaitlistPage  = "waitlist-page"
)

var knownSources = map[string]struct{}{
	SourceHeroCTA:       {},
	SourceProductBanner: {},
	SourceFinalCTA:      {},
	SourceWaitlistPage:  {},
}

func IsKnownSource(source string) bool {
	_, ok := knownSources[source]
	return ok
}

func KnownSources() []string {
	return []string{SourceHeroCTA, SourceProductBanner, SourceFinalCTA, SourceWaitlistPage}
}
