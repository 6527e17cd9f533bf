package tui

import "charm.land/bubbles/v2/key"

// ── Shared Bindings ────────────────────────────────────────────────

type SharedKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Home    key.Binding
	End     key.Binding
	Enter   key.Binding
	Back    key.Binding
	Quit    key.Binding
	Help    key.Binding
	Mouse   key.Binding
	Filter  key.Binding
	TabNext key.Binding
	TabPrev key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
}

var SharedKeys = SharedKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "Move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "Move down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "Jump top"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "Jump bottom"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "Quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "Keys"),
	),
	Mouse: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "Mouse/copy mode"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "Filter"),
	),
	TabNext: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "Next tab"),
	),
	TabPrev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "Prev tab"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "Deals"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "Merchants"),
	),
}

// ── Page Bindings ──────────────────────────────────────────────────

type PageKeyMap struct {
	Search  key.Binding
	Inspect key.Binding
	Open    key.Binding
	Reload  key.Binding
	Sidebar key.Binding
}

var PageKeys = PageKeyMap{
	Search: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "Search merchants"),
	),
	Inspect: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "Inspect merchant"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "Open website"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "Reload"),
	),
	Sidebar: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "Toggle sidebar"),
	),
}

// ── Scroll Bindings ────────────────────────────────────────────────

type ScrollKeyMap struct {
	HalfDown key.Binding
	HalfUp   key.Binding
	PageDown key.Binding
	PageUp   key.Binding
}

var ScrollKeys = ScrollKeyMap{
	HalfDown: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("^d", "Half-page down"),
	),
	HalfUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("^u", "Half-page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown", "space"),
		key.WithHelp("^f", "Full-page down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("^b", "Full-page up"),
	),
}

// ── Filter Mode Bindings ───────────────────────────────────────────

type FilterKeyMap struct {
	Cancel  key.Binding
	Confirm key.Binding
}

var FilterKeys = FilterKeyMap{
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Cancel"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Apply"),
	),
}

// ── Search Overlay Bindings ────────────────────────────────────────

type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "Move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "Move down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Show deals"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Close"),
	),
}

// ── Help Overlay Dismiss Bindings ──────────────────────────────────

type HelpOverlayKeyMap struct {
	Close key.Binding
}

var HelpOverlayKeys = HelpOverlayKeyMap{
	Close: key.NewBinding(
		key.WithKeys("?", "esc", "q"),
		key.WithHelp("?/esc", "Close"),
	),
}

// ── Inspect Bindings ───────────────────────────────────────────────

type InspectKeyMap struct {
	Close key.Binding
}

var InspectKeys = InspectKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "i"),
		key.WithHelp("esc", "Close"),
	),
}

// ── Helper Functions ────────────────────────────────────────────────

// bindingsToHelpEntries converts key bindings to help entries, filtering disabled bindings.
func bindingsToHelpEntries(bindings ...key.Binding) []helpEntry {
	entries := make([]helpEntry, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if h.Key == "" {
			continue
		}
		entries = append(entries, helpEntry{key: h.Key, desc: h.Desc})
	}
	return entries
}
