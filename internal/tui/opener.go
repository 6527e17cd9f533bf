package tui

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	tea "charm.land/bubbletea/v2"
)

type capability struct {
	Available bool
	Reason    string
}

var (
	cachedBrowserCap capability
	browserCapOnce   sync.Once
)

// browserCapability reports whether a website can be handed to the
// desktop's URL opener. The result is computed once per process.
func browserCapability() capability {
	browserCapOnce.Do(func() {
		cachedBrowserCap = computeBrowserCapability()
	})
	return cachedBrowserCap
}

func computeBrowserCapability() capability {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("open"); err != nil {
			return capability{Available: false, Reason: "open command not found"}
		}
		return capability{Available: true}
	case "linux":
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return capability{Available: false, Reason: "xdg-open command not found"}
		}
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return capability{Available: false, Reason: "no GUI session detected"}
		}
		return capability{Available: true}
	default:
		return capability{Available: false, Reason: "unsupported platform"}
	}
}

// websiteURL normalizes a merchant website into an absolute http(s) URL.
// Bare hosts get an https scheme.
func websiteURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("no website")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing website %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("website %q is not an http(s) URL", raw)
	}
	return u.String(), nil
}

func openURL(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "linux":
		return exec.Command("xdg-open", target).Start()
	default:
		return fmt.Errorf("open url not supported on platform %s", runtime.GOOS)
	}
}

// openWebsite opens the focused merchant's website in the browser.
func (m Model) openWebsite() (tea.Model, tea.Cmd) {
	merchant, ok := m.focusedMerchant()
	if !ok {
		m.ui.message = "No merchant selected"
		return m, nil
	}
	target, err := websiteURL(merchant.Website)
	if err != nil {
		m.ui.message = merchant.Name + ": " + err.Error()
		return m, nil
	}
	if cp := browserCapability(); !cp.Available {
		m.ui.message = "Cannot open browser: " + cp.Reason
		return m, nil
	}
	m.ui.message = "Opening " + target
	return m, func() tea.Msg {
		return websiteOpenedMsg{url: target, err: openURL(target)}
	}
}
