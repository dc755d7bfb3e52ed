package ui

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

func SettingsPage(c Chrome) Node {
	themes := []domain.Theme{domain.ThemeSystem, domain.ThemeLight, domain.ThemeDark}

	return appPage(c,
		Form(
			Method("post"),
			Action("/ui/settings"),
			Class(cardClass("settings-form")),
			c.CSRF,
			H2(Text("Appearance")),
			Label(For("theme"), Text("Theme")),
			Select(ID("theme"), Name("theme"), Class("form-select"),
				Map(themes, func(t domain.Theme) Node {
					return Option(Value(string(t)), If(t == c.Prefs.Theme, Selected()), Text(string(t)))
				}),
			),
			Label(For("brand_color"), Text("Brand colour")),
			Input(ID("brand_color"), Name("brand_color"), Type("color"), Value(brandColor(c.Prefs))),
			Div(Class("toolbar-group"), Button(Type("submit"), Class("btn btn-primary"), Text("Save"))),
		),
		Div(
			Class(cardClass()),
			H2(Text("Favourites")),
			P(Class(mutedClass()), Text("Pinned pages appear in the sidebar.")),
			Ul(Class("favorite-list"), Map(domain.Pages, func(page domain.Page) Node {
				if !c.can(page.Scope) {
					return nil
				}
				label := "Pin"
				if c.Prefs.IsFavorite(page.Key) {
					label = "Unpin"
				}
				return Li(
					A(Href(page.Path), Text(page.Title)),
					Text(" "),
					Form(
						Method("post"),
						Action("/ui/favorites/toggle"),
						Class("inline-form"),
						c.CSRF,
						Input(Type("hidden"), Name("page"), Value(page.Key)),
						Input(Type("hidden"), Name("next"), Value("/ui/settings")),
						Button(Type("submit"), Class("btn btn-sm"), Text(label)),
					),
				)
			})),
		),
	)
}
