package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/daptify14/dealit/internal/cms"
	dealitconfig "github.com/daptify14/dealit/internal/config"
	"github.com/daptify14/dealit/internal/search"
)

const fixtureCatalog = `{
	"merchants": {"data": [
		{"id": 1, "attributes": {"name": "Acme Outdoors", "slug": "acme-outdoors", "website": "acme.example"}},
		{"id": 2, "attributes": {"name": "Bolt Books", "slug": "bolt-books"}}
	]},
	"coupons": [
		{"id": 7, "title": "Half off tents", "merchant": "acme-outdoors"},
		{"id": 8, "title": "Paperback sale", "merchant": "bolt-books"}
	]
}`

// offlineConfig writes a config file pointing at a fixture directory and
// returns its path.
func offlineConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	fixtures := filepath.Join(dir, "fixtures")
	if err := os.MkdirAll(fixtures, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(fixtures, "catalog.json"), []byte(fixtureCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.yaml")
	body := "fixtures_dir: " + fixtures + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DEALIT_DEBUG", "")
	t.Setenv(dealitconfig.EnvCMSURL, "")
	var out bytes.Buffer
	cmd := newRootCmd(&app{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchCommandPrintsMatches(t *testing.T) {
	out, err := runCLI(t, "--config", offlineConfig(t), "search", "books")
	if err != nil {
		t.Fatalf("search: %v\n%s", err, out)
	}
	if got := strings.TrimSpace(out); got != "Bolt Books  bolt-books" {
		t.Fatalf("output = %q", got)
	}
}

func TestInspectCommandPrintsPlainJSON(t *testing.T) {
	out, err := runCLI(t, "--config", offlineConfig(t), "inspect", "--plain", "acme-outdoors")
	if err != nil {
		t.Fatalf("inspect: %v\n%s", err, out)
	}
	for _, want := range []string{`"slug": "acme-outdoors"`, `"title": "Half off tents"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("inspect output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Paperback sale") {
		t.Fatal("inspect should only list the merchant's own coupons")
	}
}

func TestInspectCommandUnknownSlug(t *testing.T) {
	a := &app{configPath: offlineConfig(t)}
	_, _, err := a.fetchMerchant(t.Context(), "nope")
	if !errors.Is(err, cms.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSourceRequiresURLOrFixtures(t *testing.T) {
	a := &app{}
	if _, _, err := a.source(dealitconfig.Default()); !errors.Is(err, errNoSource) {
		t.Fatalf("err = %v, want errNoSource", err)
	}

	cfg := dealitconfig.Default()
	cfg.CMSURL = "https://cms.example"
	src, client, err := a.source(cfg)
	if err != nil || client == nil || src == nil {
		t.Fatalf("online source = %v %v %v", src, client, err)
	}
	if client.BaseURL != "https://cms.example" {
		t.Fatalf("BaseURL = %q", client.BaseURL)
	}

	cfg = dealitconfig.Default()
	cfg.FixturesDir = t.TempDir()
	src, client, err = a.source(cfg)
	if err != nil || client != nil {
		t.Fatalf("offline source client=%v err=%v", client, err)
	}
	if _, ok := src.(*cms.DirSource); !ok {
		t.Fatalf("offline source = %T, want *cms.DirSource", src)
	}
}

func TestPrintMatchesAlignsSlugs(t *testing.T) {
	var buf bytes.Buffer
	err := printMatches(&buf, []search.Match{
		{Name: "Acme Outdoors", Slug: "acme-outdoors"},
		{Name: "Bolt", Slug: "bolt"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "Acme Outdoors  acme-outdoors\nBolt           bolt\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := printMatches(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "No merchants found\n" {
		t.Fatalf("empty output = %q", buf.String())
	}
}
