package domain

// Page is a top-level dashboard page that can be pinned as a favourite.
type Page struct {
	Key   string
	Title string
	Path  string
	Scope string // required scope, empty when any signed-in user may open it
}

var Pages = []Page{
	{Key: "roles", Title: "Roles", Path: "/ui/roles", Scope: ScopeRolesView},
	{Key: "activity", Title: "Activity", Path: "/ui/activity", Scope: ScopeActivityView},
	{Key: "settings", Title: "Settings", Path: "/ui/settings"},
}

func FindPage(key string) (Page, bool) {
	for _, p := range Pages {
		if p.Key == key {
			return p, true
		}
	}
	return Page{}, false
}
