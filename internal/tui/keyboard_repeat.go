package tui

import tea "charm.land/bubbletea/v2"

// repeatNavigationStep is how many items a held arrow key moves per
// repeat event.
const repeatNavigationStep = 3

func navigationStepForKey(msg tea.KeyPressMsg) int {
	if msg.IsRepeat {
		return repeatNavigationStep
	}
	return 1
}
