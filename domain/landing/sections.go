package landing

import (
	"github.com/hebed-ai/accelerator-landing/domain/capture"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	trainingVideoID   = "t8oHTDdA5uU"
	conferenceVideoID = "gSFIVQBePwI"
	founderImage      = "https://i.ibb.co/hFphcTjT/founders.png"
	courseImage       = "https://i.ibb.co/LdX856PD/trust.png"
)

func heroSection() g.Node {
	return Section(
		Class("bg-blue-600 py-16 px-4"),
		Div(
			Class("max-w-6xl mx-auto text-center"),
			H1(
				Class("text-4xl md:text-5xl lg:text-6xl font-normal text-white mb-6 leading-tight"),
				g.Text("ENTREPRENEURS, MANAGERS & EMPLOYEES"),
				Br(),
				g.Text("You're one step away from acquiring core AI skills and beat the competition."),
			),
			P(Class("text-xl text-white font-medium"), g.Text("IMPORTANT: Please Watch This Video Below")),
		),
	)
}

func videoEmbed(videoID, title string) g.Node {
	return Div(
		Class("relative aspect-video"),
		g.El("iframe",
			Src("https://www.youtube.com/embed/"+videoID),
			g.Attr("title", title),
			Class("w-full h-full rounded-lg"),
			g.Attr("frameborder", "0"),
			g.Attr("allow", "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"),
			g.Attr("allowfullscreen"),
			g.Attr("loading", "lazy"),
		),
	)
}

func trainingVideoSection() g.Node {
	return Section(
		Class("py-16 px-4"),
		Div(Class("max-w-4xl mx-auto"), videoEmbed(trainingVideoID, "AI Training Video")),
	)
}

func waitlistCTASection(form capture.View) g.Node {
	return Section(
		ID("reserve"),
		Class("bg-gray-900 text-white py-20 px-4"),
		Div(
			Class("max-w-4xl mx-auto text-center"),
			H2(Class("text-3xl md:text-4xl font-normal mb-4"), g.Text("PREMIUM ACCELERATOR LAUNCHING SOON")),
			P(Class("text-xl text-gray-300 mb-12"), g.Text("Secure your exclusive spot before it's too late!")),
			capture.Render(form),
		),
	)
}

type highlight struct {
	icon        string
	title       string
	description string
}

var highlights = []highlight{
	{
		icon:        "⚡",
		title:       "Boost Efficiency with AI",
		description: "Discover how AI tools can streamline your business processes and save you time and effort",
	},
	{
		icon:        "📈",
		title:       "Maximize Growth Potential",
		description: "Learn how AI can help you scale your business and reach new heights of success",
	},
	{
		icon:        "💲",
		title:       "High ROI Investment",
		description: "Invest in yourself with our course and see significant returns on your business",
	},
}

func highlightsSection() g.Node {
	return Section(
		Class("bg-gray-900 py-16 px-4"),
		Div(
			Class("max-w-6xl mx-auto grid md:grid-cols-3 gap-8"),
			g.Group(g.Map(highlights, func(item highlight) g.Node {
				return Div(
					Class("flex items-start gap-4"),
					Div(
						Class("w-16 h-16 flex-shrink-0 bg-blue-600 rounded-lg flex items-center justify-center text-3xl"),
						g.Attr("aria-hidden", "true"),
						g.Text(item.icon),
					),
					Div(
						H3(Class("text-lg font-semibold text-white mb-2"), g.Text(item.title)),
						P(Class("text-gray-300"), g.Text(item.description)),
					),
				)
			})),
		),
	)
}

func aboutSection() g.Node {
	return Section(
		Class("bg-blue-600 text-white py-20 px-4"),
		Div(
			Class("max-w-4xl mx-auto"),
			H2(Class("text-3xl md:text-4xl font-normal mb-8"), g.Text("About HEBED Accelerator")),
			P(
				Class("text-lg leading-relaxed"),
				g.Text("Are you an independent consultant, freelancer, or business owner looking to harness the power of AI to supercharge your business? "+
					"Whether you run an online store, marketing agency, or content creation business, our course is designed for you. "+
					"We understand your need for efficiency, growth, and high ROI. Let us guide you on the path to success. "+
					"Join our exclusive program now and be among the select few to unlock the potential of AI for your business."),
			),
		),
	)
}

func instructorsSection() g.Node {
	return Section(
		Class("bg-gray-900 text-white py-20 px-4"),
		Div(
			Class("max-w-6xl mx-auto grid lg:grid-cols-2 gap-12 items-center"),
			Div(Img(Src(founderImage), Alt("HEBED AI Instructors"), Class("w-full h-auto object-cover rounded-lg max-h-96"))),
			Div(
				H2(Class("text-3xl md:text-4xl font-normal mb-6"), g.Text("Meet Your Instructors")),
				P(
					Class("text-lg leading-relaxed text-gray-300"),
					g.Text(`"Hi, we're Heben and Edward, co-founders of HEBED AI, and we're passionate about making AI transformation accessible to every small business owner."`),
					Br(), Br(),
					g.Text("As seasoned digital transformation specialists, we've witnessed firsthand the frustration of small business owners drowning in AI hype while struggling to find practical, profitable solutions. "+
						"Together, we've spent over 1 year helping businesses bridge the gap between cutting-edge technology and real-world results."),
				),
			),
		),
	)
}

func conferenceSection() g.Node {
	return Section(
		Class("bg-white py-20 px-4"),
		Div(
			Class("max-w-6xl mx-auto"),
			H2(Class("text-3xl md:text-4xl font-normal text-center mb-12 text-gray-900"), g.Text("Generative AI for Business — Live at Mövenpick Geneva")),
			Div(
				Class("grid lg:grid-cols-2 gap-12 items-center"),
				Div(videoEmbed(conferenceVideoID, "Geneva Conference Video")),
				P(
					Class("text-lg leading-relaxed text-gray-700"),
					g.Text("On May 22, 2025, HEBED AI brought together business leaders, entrepreneurs, and innovators for an exclusive conference on Generative AI at the prestigious Mövenpick Hotel Geneva."),
					Br(), Br(),
					g.Text("From real-world automation case studies to live demos of AI agents in action, attendees walked away with powerful insights and practical tools to future-proof their business."),
					Br(), Br(),
					g.Text("🔥 Missed it? No worries — the momentum continues inside the HEBED Accelerator. Reserve your spot now and be among the select few to access our mentorship program with replays, expert insights, and the community shaping the next wave of AI-driven business."),
				),
			),
		),
	)
}

func productBannerSection(form capture.View) g.Node {
	return Section(
		Class("bg-white py-20 px-4"),
		Div(
			Class("max-w-6xl mx-auto grid lg:grid-cols-2 gap-12 items-center"),
			Div(
				H2(Class("text-4xl md:text-5xl font-normal text-gray-900 mb-6"), g.Text("Our Interventions")),
				P(Class("text-xl text-gray-600 mb-12"), g.Text("Sharing our knowledge with experts who want to thrive in their business with AI.")),
				Div(
					Class("bg-gray-50 p-8 rounded-lg"),
					Div(
						Class("mb-6"),
						Span(Class("text-sm text-gray-500 uppercase tracking-wide"), g.Text("Course")),
						H3(Class("text-2xl font-semibold text-gray-900"), g.Text("HEBED Accelerator")),
					),
					Div(Class("mb-8"), capture.Render(form)),
					Div(
						Class("flex gap-6 text-sm text-gray-600"),
						Span(g.Text("📖 10 Chapters")),
						Span(g.Text("📋 10 Lessons")),
					),
				),
			),
			Div(Img(Src(courseImage), Alt("HEBED AI Course Material"), Class("w-full h-auto object-cover rounded-lg max-h-96"))),
		),
	)
}

type testimonial struct {
	quote  string
	author string
	role   string
	image  string
}

// testimonials are laid out in two columns of two.
var testimonials = [][]testimonial{
	{
		{
			quote:  "Before this program, AI felt overwhelming. Now, I've automated my booking confirmations, set up a feedback bot, and even use AI to analyze guest reviews. Everything was broken down clearly—no fluff, just results. My staff loves it, and our response time has improved by 40%.",
			author: "Fatou K., Dakar",
			role:   "| Guesthouse Manager",
		},
		{
			quote:  "I used to think AI was only for big corporations. After Module 2, I automated my customer follow-ups and saved at least 6 hours a week. The templates were practical, and I launched my first chatbot by the end of Week 3. It's like having a digital team working 24/7.",
			author: "Grace A., Nairobi",
			role:   "Boutique Owner",
			image:  "https://i.ibb.co/60FrgLw0/Confident-Portrait-of-a-Beautiful-Woman.png",
		},
	},
	{
		{
			quote:  "This course changed how I work. The AI marketing tools helped me triple my content output. Clients noticed immediately. I even booked two new projects thanks to the portfolio I built using the course exercises.",
			author: "Thabo M., Johannesburg",
			role:   "Digital Consultant",
			image:  "https://i.ibb.co/NnN8HwWP/Calm-Portrait-on-Beige-Background.png",
		},
		{
			quote:  "The 90-day action plan was gold. It forced us to prioritize, track ROI, and implement automations that actually matter. We're now running leaner and smarter—without needing a full-time ops team.",
			author: "John S., Accra",
			role:   "SaaS Founder",
			image:  "https://i.ibb.co/gbfVNs3D/Confident-Smile-in-Classic-Suit.png",
		},
	},
}

func testimonialCard(t testimonial) g.Node {
	// Without a portrait the card shows a large quotation mark instead.
	quoteOnly := t.image == ""

	return g.El("figure",
		Class("bg-gray-900 text-white p-8 rounded-lg shadow-md relative"),
		g.If(!quoteOnly, Div(
			Class("flex justify-center mb-6"),
			Img(Src(t.image), Alt(t.author), Class("w-20 h-20 object-cover rounded-full border-4 border-white")),
		)),
		g.If(quoteOnly, Span(Class("text-7xl font-bold leading-none opacity-30 absolute top-4 left-6"), g.Text(`"`))),
		g.El("blockquote",
			g.If(quoteOnly, Class("mt-12 mb-6 text-gray-100")),
			g.If(!quoteOnly, Class("mb-6 text-gray-100")),
			g.Text(t.quote),
		),
		g.El("figcaption",
			g.El("cite", Class("font-bold not-italic text-white"), g.Text(t.author)),
			P(Class("text-gray-300 text-sm"), g.Text(t.role)),
		),
	)
}

func testimonialsSection() g.Node {
	return Section(
		Class("bg-white py-20 px-4"),
		Div(
			Class("max-w-6xl mx-auto"),
			Div(
				Class("text-center mb-16"),
				H2(Class("text-3xl md:text-4xl font-normal text-gray-900 mb-4"), g.Text("What People Are Saying")),
				P(Class("text-xl text-gray-600"), g.Text("Discover how our course is transforming businesses and helping professionals like you succeed")),
			),
			Div(
				Class("grid md:grid-cols-2 gap-8"),
				g.Group(g.Map(testimonials, func(column []testimonial) g.Node {
					return Div(Class("space-y-8"), g.Group(g.Map(column, testimonialCard)))
				})),
			),
		),
	)
}

func finalCTASection(form capture.View) g.Node {
	return Section(
		Class("bg-gray-900 text-white py-20 px-4"),
		Div(
			Class("max-w-4xl mx-auto text-center"),
			H2(Class("text-3xl md:text-4xl font-normal mb-6"), g.Text("🚨 Last Chance: Only 33 Spots Remaining!")),
			P(Class("text-xl text-gray-300 mb-12"), g.Text("876 forward-thinking entrepreneurs have already secured their spot. Don't let this opportunity slip away!")),
			capture.Render(form),
		),
	)
}
