package landing

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	tailwindCDN = "https://cdn.tailwindcss.com"
	htmxCDN     = "https://unpkg.com/htmx.org@2.0.4"
)

type PageConfig struct {
	Title       string
	Description string
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "HEBED Accelerator - Core AI Skills for Entrepreneurs"
	}

	if config.Description == "" {
		config.Description = "Entrepreneurs, managers and employees: acquire core AI skills and beat the competition with the HEBED Accelerator."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),

				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),

				Script(Src(tailwindCDN)),
				Script(Src(htmxCDN)),
			),
			Body(
				Class("min-h-screen bg-white"),
				g.Group(content),
			),
		),
	})
}
