package ui

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

type ActivityProps struct {
	Chrome  Chrome
	Filter  domain.ActivityFilter
	Entries []domain.ActivityLog
}

func ActivityPage(p ActivityProps) Node {
	return appPage(p.Chrome,
		activityFilterForm(p.Filter),
		activityTable(p.Entries),
	)
}

func activityFilterForm(f domain.ActivityFilter) Node {
	actions := make([]string, 0, len(domain.ActivityActions))
	for _, a := range domain.ActivityActions {
		actions = append(actions, string(a))
	}
	statuses := make([]string, 0, len(domain.ActivityStatuses))
	for _, s := range domain.ActivityStatuses {
		statuses = append(statuses, string(s))
	}
	modules := make([]string, 0, len(domain.Modules))
	for _, m := range domain.Modules {
		modules = append(modules, string(m))
	}

	return Form(
		Method("get"),
		Action("/ui/activity"),
		Class(cardClass("filter-form")),
		Div(
			Class("filter-grid"),
			Label(For("activity-search"), Text("Search")),
			Input(ID("activity-search"), Name("q"), Type("search"), Class("form-control"),
				Placeholder("User, target or details"), Value(f.Search)),
			filterSelect("action", "Action", actions, string(f.Action)),
			filterSelect("status", "Status", statuses, string(f.Status)),
			filterSelect("module", "Module", modules, string(f.Module)),
			Label(For("activity-since"), Text("Since")),
			Input(ID("activity-since"), Name("since"), Type("date"), Class("form-control"), Value(dateValue(f.Since))),
			Label(For("activity-until"), Text("Until")),
			Input(ID("activity-until"), Name("until"), Type("date"), Class("form-control"), Value(dateValue(f.Until))),
		),
		Div(
			Class("toolbar-group"),
			Button(Type("submit"), Class("btn btn-primary btn-sm"), Text("Apply")),
			A(Href("/ui/activity"), Class("btn btn-sm"), Text("Clear")),
		),
	)
}

func filterSelect(name, label string, values []string, selected string) Node {
	options := []Node{Option(Value(""), Text("Any"))}
	for _, v := range values {
		options = append(options, Option(Value(v), If(v == selected, Selected()), Text(v)))
	}
	id := "activity-" + name
	return Group{
		Label(For(id), Text(label)),
		Select(ID(id), Name(name), Class("form-select"), Group(options)),
	}
}

func activityTable(entries []domain.ActivityLog) Node {
	if len(entries) == 0 {
		return Div(Class(cardClass("blankslate")), P(Class("color-fg-muted mb-0"), Text("No activity matches these filters.")))
	}

	return Div(
		Class(cardClass()),
		Table(
			Class("table"),
			THead(Tr(
				Th(Text("When")),
				Th(Text("User")),
				Th(Text("Action")),
				Th(Text("Module")),
				Th(Text("Target")),
				Th(Text("Status")),
				Th(Text("IP")),
				Th(Text("Details")),
			)),
			TBody(Map(entries, func(e domain.ActivityLog) Node {
				return Tr(
					Td(Class("nowrap"), Text(formatTime(e.CreatedAt))),
					Td(Text(orDash(e.Username))),
					Td(Text(e.Action.Label())),
					Td(Text(string(e.Module))),
					Td(Text(orDash(e.Target))),
					Td(statusLabel(string(e.Status), e.Status.Tone())),
					Td(Code(Text(orDash(e.IPAddress)))),
					Td(Class(mutedClass()), Text(e.Details)),
				)
			})),
		),
		P(Class(mutedClass()), Text(plural(len(entries), "entry", "entries")+", newest first")),
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
