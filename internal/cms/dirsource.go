package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// dirWalkWorkers is the fastwalk concurrency for fixture directories.
const dirWalkWorkers = 4

// errWalkCanceled signals context cancellation inside the walk callback.
var errWalkCanceled = errors.New("walk canceled")

// DirSource reads CMS-shaped JSON fixtures from a directory tree. Each
// *.json file may hold {"merchants": ...} and/or {"coupons": ...}, where
// each value is a collection response or a bare data array.
type DirSource struct {
	Root string
}

func NewDirSource(root string) *DirSource {
	return &DirSource{Root: filepath.Clean(root)}
}

type fixtureFile struct {
	Merchants json.RawMessage `json:"merchants"`
	Coupons   json.RawMessage `json:"coupons"`
}

// files returns the sorted fixture paths under Root.
func (d *DirSource) files(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(d.Root)
	if err != nil {
		return nil, fmt.Errorf("fixtures dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fixtures dir %s: not a directory", d.Root)
	}

	var (
		mu    sync.Mutex
		paths []string
	)
	conf := &fastwalk.Config{
		NumWorkers: dirWalkWorkers,
		Follow:     false,
		Sort:       fastwalk.SortNone,
	}
	err = fastwalk.Walk(conf, d.Root, fastwalk.IgnorePermissionErrors(func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errWalkCanceled
		default:
		}
		if de.IsDir() {
			if path != d.Root && strings.HasPrefix(de.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		mu.Lock()
		paths = append(paths, path)
		mu.Unlock()
		return nil
	}))
	if errors.Is(err, errWalkCanceled) {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("walking fixtures: %w", err)
	}
	slices.Sort(paths)
	return paths, nil
}

func (d *DirSource) load(ctx context.Context, pick func(fixtureFile) json.RawMessage, each func([]fields) error) error {
	paths, err := d.files(ctx)
	if err != nil {
		return err
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading fixture: %w", err)
		}
		var ff fixtureFile
		if err := json.Unmarshal(data, &ff); err != nil {
			return fmt.Errorf("fixture %s: %w: %v", filepath.Base(path), ErrMalformed, err)
		}
		raw := pick(ff)
		if isNull(raw) {
			continue
		}
		entries, err := fixtureEntries(raw)
		if err != nil {
			return fmt.Errorf("fixture %s: %w", filepath.Base(path), err)
		}
		if err := each(entries); err != nil {
			return err
		}
	}
	return nil
}

// fixtureEntries accepts either a full collection response or a bare
// data array.
func fixtureEntries(raw json.RawMessage) ([]fields, error) {
	if firstByte(raw) == '{' {
		entries, _, err := parseCollection(raw)
		return entries, err
	}
	return decodeEntries(raw)
}

// Merchants implements Source.
func (d *DirSource) Merchants(ctx context.Context) ([]Merchant, error) {
	var out []Merchant
	err := d.load(ctx, func(ff fixtureFile) json.RawMessage { return ff.Merchants }, func(entries []fields) error {
		for _, e := range entries {
			if m := parseMerchant(e); m.Slug != "" || m.Name != "" {
				out = append(out, m)
			}
		}
		return nil
	})
	return out, err
}

// Coupons implements Source.
func (d *DirSource) Coupons(ctx context.Context) ([]Coupon, error) {
	var out []Coupon
	err := d.load(ctx, func(ff fixtureFile) json.RawMessage { return ff.Coupons }, func(entries []fields) error {
		for _, e := range entries {
			if c := parseCoupon(e); c.Title != "" {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}
