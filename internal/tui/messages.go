package tui

import (
	"time"

	"github.com/daptify14/dealit/internal/cms"
)

// --- Messages ---

type catalogLoadedMsg struct {
	catalog *cms.Catalog
	err     error
	gen     uint64
}

// frameMsg drives one animation frame of the page host.
type frameMsg struct {
	at time.Time
}

// websiteOpenedMsg reports the outcome of handing a URL to the browser.
type websiteOpenedMsg struct {
	url string
	err error
}

// inspectReadyMsg carries the highlighted JSON of one merchant.
type inspectReadyMsg struct {
	slug    string
	content string
	err     error
}
