package ui

import (
	"slices"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"

// Chrome is the per-request frame around every signed-in page.
type Chrome struct {
	Title  string
	Active string // page key highlighted in the sidebar
	User   string
	Scopes []string
	Prefs  domain.Preferences
	CSRF   Node
	Flash  string
}

func (c Chrome) can(scope string) bool {
	if scope == "" {
		return true
	}
	return slices.Contains(c.Scopes, scope)
}

func head(title string) Node {
	return Head(
		Meta(Charset("utf-8")),
		Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
		TitleEl(Text(title+" | Dash")),
		Link(Rel("icon"), Href("data:,")),
		Link(Rel("stylesheet"), Href("/ui/static/app.css")),
		Script(Type("module"), Src(datastarScript)),
	)
}

func appPage(c Chrome, body ...Node) Node {
	nav := make([]Node, 0, len(domain.Pages))
	for _, page := range domain.Pages {
		if !c.can(page.Scope) {
			continue
		}
		className := "app-nav-link"
		if page.Key == c.Active {
			className += " active"
		}
		nav = append(nav, A(Href(page.Path), Class(className), Text(page.Title)))
	}

	return HTML(
		Lang("en"),
		Attr("data-color-mode", c.Prefs.Theme.ColorMode()),
		Style("--brand: "+brandColor(c.Prefs)+";"),
		head(c.Title),
		Body(
			Main(Class("app-shell"),
				Aside(
					Class("app-sidebar"),
					Div(
						Class("brand"),
						Strong(Text("Dash")),
						P(Class("color-fg-muted text-small mb-0"), Text("Platform administration")),
					),
					Nav(Class("app-nav"), Group(nav)),
					favorites(c),
				),
				Section(
					Class("app-main"),
					Div(
						Class("topbar"),
						Div(
							H1(Class("page-title"), Text(c.Title)),
							favoriteToggle(c),
						),
						Div(
							P(Class("color-fg-muted text-small mb-2"), Text("Signed in as "+c.User)),
							postButton("/ui/logout", "Sign out", "btn btn-sm", c.CSRF),
						),
					),
					If(c.Flash != "", Div(Class("flash flash-error"), Role("alert"), Text(c.Flash))),
					Div(Class("content"), Group(body)),
				),
			),
		),
	)
}

func favorites(c Chrome) Node {
	if len(c.Prefs.Favorites) == 0 {
		return nil
	}
	links := make([]Node, 0, len(c.Prefs.Favorites))
	for _, key := range c.Prefs.Favorites {
		page, ok := domain.FindPage(key)
		if !ok || !c.can(page.Scope) {
			continue
		}
		links = append(links, Li(A(Href(page.Path), Class("app-nav-link"), Text("★ "+page.Title))))
	}
	return Div(
		Class("app-favorites"),
		P(Class("app-nav-heading"), Text("Favourites")),
		Ul(Group(links)),
	)
}

// favoriteToggle pins or unpins the current page.
func favoriteToggle(c Chrome) Node {
	if _, ok := domain.FindPage(c.Active); !ok {
		return nil
	}
	label := "☆ Pin"
	if c.Prefs.IsFavorite(c.Active) {
		label = "★ Unpin"
	}
	return Form(
		Method("post"),
		Action("/ui/favorites/toggle"),
		Class("inline-form"),
		c.CSRF,
		Input(Type("hidden"), Name("page"), Value(c.Active)),
		Button(Type("submit"), Class("btn btn-sm btn-invisible"), Text(label)),
	)
}

func brandColor(p domain.Preferences) string {
	if domain.ValidBrandColor(p.BrandColor) {
		return p.BrandColor
	}
	return domain.DefaultBrandColor
}

// ErrorPage is shown for failures outside the JSON API.
func ErrorPage(title, message string) Node {
	return HTML(
		Lang("en"),
		Attr("data-color-mode", "auto"),
		head(title),
		Body(
			Main(
				Class("layout"),
				H1(Class("page-title"), Text(title)),
				P(Text(message)),
				P(A(Href("/ui"), Text("Back to the dashboard"))),
			),
		),
	)
}

// LoginPage renders the sign-in form. next is where to go afterwards.
func LoginPage(errMsg, next string, csrf Node) Node {
	return HTML(
		Lang("en"),
		Attr("data-color-mode", "auto"),
		head("Sign in"),
		Body(
			Class("login-body"),
			Main(
				Class("login-wrap"),
				H1(Text("Dash")),
				P(Class(mutedClass()), Text("Sign in to manage roles and review activity.")),
				If(errMsg != "", P(Class("error"), Role("alert"), Text(errMsg))),
				Form(
					Method("post"),
					Action("/ui/login"),
					Class("login-form"),
					csrf,
					Input(Type("hidden"), Name("next"), Value(next)),
					Label(For("username"), Text("Username")),
					Input(ID("username"), Name("username"), Type("text"), AutoComplete("username"), Required()),
					Label(For("password"), Text("Password")),
					Input(ID("password"), Name("password"), Type("password"), AutoComplete("current-password"), Required()),
					Button(Type("submit"), Class("btn btn-primary"), Text("Sign in")),
				),
			),
		),
	)
}
