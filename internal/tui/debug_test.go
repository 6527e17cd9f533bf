package tui

import (
	"bytes"
	"errors"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/daptify14/dealit/internal/cms"
)

func TestFormatMsgDetail(t *testing.T) {
	catalog := cms.NewCatalog(sampleMerchants(), sampleCoupons(), testNow)
	tests := []struct {
		name string
		msg  tea.Msg
		want string
	}{
		{"key", tea.KeyPressMsg{Code: 'j', Text: "j"}, "j"},
		{"window", tea.WindowSizeMsg{Width: 120, Height: 24}, "120x24"},
		{"click", tea.MouseClickMsg{X: 3, Y: 7}, "x=3 y=7"},
		{"background", tea.BackgroundColorMsg{Color: color.Black}, "dark=true"},
		{"catalog", catalogLoadedMsg{catalog: catalog, gen: 2}, "gen=2 merchants=3 coupons=16"},
		{"catalog error", catalogLoadedMsg{gen: 1, err: errors.New("down")}, `gen=1 err="down" `},
		{"inspect", inspectReadyMsg{slug: "bolt-books", content: "abc"}, `slug="bolt-books" len=3`},
		{"website", websiteOpenedMsg{url: "https://cedar.example"}, `url="https://cedar.example"`},
		{"unknown", struct{}{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMsgDetail(tt.msg); got != tt.want {
				t.Fatalf("formatMsgDetail = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogMsgSkipsFramesAndWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	m := newTestModel(WithOptions(func(o *Options) {
		o.DebugLog = slog.New(slog.NewJSONHandler(&buf, nil))
	}))
	buf.Reset()

	m.logMsg(frameMsg{at: testNow})
	if buf.Len() != 0 {
		t.Fatalf("frame messages should not be logged, got %s", buf.String())
	}

	m.logMsg(tea.WindowSizeMsg{Width: 90, Height: 30})
	out := buf.String()
	if !strings.Contains(out, `"detail":"90x30"`) || !strings.Contains(out, `"type":"tea.WindowSizeMsg"`) {
		t.Fatalf("log line = %s", out)
	}
}
