package tui

import (
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

func TestSharedKeys_MatchRuneKeys(t *testing.T) {
	tests := []struct {
		name    string
		msg     tea.KeyPressMsg
		binding key.Binding
		want    bool
	}{
		{"j matches Down", tea.KeyPressMsg{Code: 'j', Text: "j"}, SharedKeys.Down, true},
		{"k matches Up", tea.KeyPressMsg{Code: 'k', Text: "k"}, SharedKeys.Up, true},
		{"g matches Home", tea.KeyPressMsg{Code: 'g', Text: "g"}, SharedKeys.Home, true},
		{"G matches End", tea.KeyPressMsg{Code: 'G', Text: "G"}, SharedKeys.End, true},
		{"q matches Quit", tea.KeyPressMsg{Code: 'q', Text: "q"}, SharedKeys.Quit, true},
		{"? matches Help", tea.KeyPressMsg{Code: '?', Text: "?"}, SharedKeys.Help, true},
		{"m matches Mouse", tea.KeyPressMsg{Code: 'm', Text: "m"}, SharedKeys.Mouse, true},
		{"/ matches Filter", tea.KeyPressMsg{Code: '/', Text: "/"}, SharedKeys.Filter, true},
		{"1 matches Tab1", tea.KeyPressMsg{Code: '1', Text: "1"}, SharedKeys.Tab1, true},
		{"2 matches Tab2", tea.KeyPressMsg{Code: '2', Text: "2"}, SharedKeys.Tab2, true},
		{"3 matches nothing", tea.KeyPressMsg{Code: '3', Text: "3"}, SharedKeys.Tab2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := key.Matches(tt.msg, tt.binding); got != tt.want {
				t.Errorf("key.Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSharedKeys_MatchSpecialKeys(t *testing.T) {
	tests := []struct {
		name    string
		msg     tea.KeyPressMsg
		binding key.Binding
	}{
		{"KeyDown matches Down", tea.KeyPressMsg{Code: tea.KeyDown}, SharedKeys.Down},
		{"KeyUp matches Up", tea.KeyPressMsg{Code: tea.KeyUp}, SharedKeys.Up},
		{"KeyEnter matches Enter", tea.KeyPressMsg{Code: tea.KeyEnter}, SharedKeys.Enter},
		{"KeyEscape matches Back", tea.KeyPressMsg{Code: tea.KeyEscape}, SharedKeys.Back},
		{"KeyTab matches TabNext", tea.KeyPressMsg{Code: tea.KeyTab}, SharedKeys.TabNext},
		{"KeyShiftTab matches TabPrev", tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}, SharedKeys.TabPrev},
		{"KeyHome matches Home", tea.KeyPressMsg{Code: tea.KeyHome}, SharedKeys.Home},
		{"KeyEnd matches End", tea.KeyPressMsg{Code: tea.KeyEnd}, SharedKeys.End},
		{"ctrl+c matches Quit", tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, SharedKeys.Quit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("expected match for %q", tt.msg.String())
			}
		})
	}
}

func TestSharedKeys_NoCrossContamination(t *testing.T) {
	jMsg := tea.KeyPressMsg{Code: 'j', Text: "j"}
	kMsg := tea.KeyPressMsg{Code: 'k', Text: "k"}

	if key.Matches(jMsg, SharedKeys.Up) {
		t.Error("j should not match Up")
	}
	if key.Matches(kMsg, SharedKeys.Down) {
		t.Error("k should not match Down")
	}
	if key.Matches(jMsg, SharedKeys.Quit) {
		t.Error("j should not match Quit")
	}
}

func TestPageKeys_MatchRuneKeys(t *testing.T) {
	tests := []struct {
		name    string
		msg     tea.KeyPressMsg
		binding key.Binding
	}{
		{"s matches Search", tea.KeyPressMsg{Code: 's', Text: "s"}, PageKeys.Search},
		{"i matches Inspect", tea.KeyPressMsg{Code: 'i', Text: "i"}, PageKeys.Inspect},
		{"o matches Open", tea.KeyPressMsg{Code: 'o', Text: "o"}, PageKeys.Open},
		{"r matches Reload", tea.KeyPressMsg{Code: 'r', Text: "r"}, PageKeys.Reload},
		{"p matches Sidebar", tea.KeyPressMsg{Code: 'p', Text: "p"}, PageKeys.Sidebar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("expected match for %q", tt.msg.String())
			}
		})
	}
}

func TestPageKeys_CaseSensitivity(t *testing.T) {
	if key.Matches(tea.KeyPressMsg{Code: 'S', Text: "S"}, PageKeys.Search) {
		t.Error("capital S should not match Search")
	}
	if key.Matches(tea.KeyPressMsg{Code: 'R', Text: "R"}, PageKeys.Reload) {
		t.Error("capital R should not match Reload")
	}
}

func TestScrollKeys_Match(t *testing.T) {
	tests := []struct {
		name    string
		msg     tea.KeyPressMsg
		binding key.Binding
	}{
		{"ctrl+d matches HalfDown", tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl}, ScrollKeys.HalfDown},
		{"ctrl+u matches HalfUp", tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}, ScrollKeys.HalfUp},
		{"ctrl+f matches PageDown", tea.KeyPressMsg{Code: 'f', Mod: tea.ModCtrl}, ScrollKeys.PageDown},
		{"pgdown matches PageDown", tea.KeyPressMsg{Code: tea.KeyPgDown}, ScrollKeys.PageDown},
		{"space matches PageDown", tea.KeyPressMsg{Code: ' ', Text: " "}, ScrollKeys.PageDown},
		{"ctrl+b matches PageUp", tea.KeyPressMsg{Code: 'b', Mod: tea.ModCtrl}, ScrollKeys.PageUp},
		{"pgup matches PageUp", tea.KeyPressMsg{Code: tea.KeyPgUp}, ScrollKeys.PageUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("expected match for %q", tt.msg.String())
			}
		})
	}
}

func TestSearchKeys_Match(t *testing.T) {
	tests := []struct {
		name    string
		msg     tea.KeyPressMsg
		binding key.Binding
	}{
		{"up matches Up", tea.KeyPressMsg{Code: tea.KeyUp}, SearchKeys.Up},
		{"ctrl+p matches Up", tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl}, SearchKeys.Up},
		{"down matches Down", tea.KeyPressMsg{Code: tea.KeyDown}, SearchKeys.Down},
		{"ctrl+n matches Down", tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}, SearchKeys.Down},
		{"enter matches Select", tea.KeyPressMsg{Code: tea.KeyEnter}, SearchKeys.Select},
		{"esc matches Close", tea.KeyPressMsg{Code: tea.KeyEscape}, SearchKeys.Close},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("expected match for %q", tt.msg.String())
			}
		})
	}
}

func TestSearchKeys_LettersAreQueryText(t *testing.T) {
	// j and k must reach the query input.
	for _, r := range []string{"j", "k", "q"} {
		msg := tea.KeyPressMsg{Code: []rune(r)[0], Text: r}
		if key.Matches(msg, SearchKeys.Up) || key.Matches(msg, SearchKeys.Down) || key.Matches(msg, SearchKeys.Close) {
			t.Errorf("%q should not be bound in the search overlay", r)
		}
	}
}

func TestHelpOverlayKeys_MatchAllDismissKeys(t *testing.T) {
	msgs := []tea.KeyPressMsg{
		{Code: '?', Text: "?"},
		{Code: tea.KeyEscape},
		{Code: 'q', Text: "q"},
	}
	for _, msg := range msgs {
		if !key.Matches(msg, HelpOverlayKeys.Close) {
			t.Errorf("expected %q to match HelpOverlayKeys.Close", msg.String())
		}
	}
}

func TestInspectKeys_MatchAllCloseKeys(t *testing.T) {
	msgs := []tea.KeyPressMsg{
		{Code: tea.KeyEscape},
		{Code: 'q', Text: "q"},
		{Code: 'i', Text: "i"},
	}
	for _, msg := range msgs {
		if !key.Matches(msg, InspectKeys.Close) {
			t.Errorf("expected %q to match InspectKeys.Close", msg.String())
		}
	}
}

func TestFilterKeys_Match(t *testing.T) {
	escMsg := tea.KeyPressMsg{Code: tea.KeyEscape}
	enterMsg := tea.KeyPressMsg{Code: tea.KeyEnter}

	if !key.Matches(escMsg, FilterKeys.Cancel) {
		t.Error("esc should match FilterKeys.Cancel")
	}
	if !key.Matches(enterMsg, FilterKeys.Confirm) {
		t.Error("enter should match FilterKeys.Confirm")
	}
}

func TestBindingsToHelpEntries(t *testing.T) {
	entries := bindingsToHelpEntries(SharedKeys.Up, SharedKeys.Down)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].key != "↑/k" {
		t.Errorf("expected Key=↑/k, got %s", entries[0].key)
	}
	if entries[0].desc != "Move up" {
		t.Errorf("expected Desc=Move up, got %s", entries[0].desc)
	}
	if entries[1].key != "↓/j" {
		t.Errorf("expected Key=↓/j, got %s", entries[1].key)
	}
	if entries[1].desc != "Move down" {
		t.Errorf("expected Desc=Move down, got %s", entries[1].desc)
	}
}

func TestBindingsToHelpEntries_FiltersDisabled(t *testing.T) {
	disabled := key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "test"),
		key.WithDisabled(),
	)
	entries := bindingsToHelpEntries(SharedKeys.Up, disabled, SharedKeys.Down)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (disabled filtered), got %d", len(entries))
	}
	if entries[0].key != "↑/k" {
		t.Errorf("expected first entry Key=↑/k, got %s", entries[0].key)
	}
	if entries[1].key != "↓/j" {
		t.Errorf("expected second entry Key=↓/j, got %s", entries[1].key)
	}
}
