package cms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// envelope is the outer shape of every CMS collection response.
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Pagination Pagination `json:"pagination"`
	} `json:"meta"`
}

// fields is one entry with its attributes flattened to the top level.
type fields map[string]json.RawMessage

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func firstByte(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}

// flattenEntry accepts both {id, attributes: {...}} and {id, ...} shapes.
func flattenEntry(raw json.RawMessage) (fields, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: entry: %v", ErrMalformed, err)
	}
	attrs, ok := obj["attributes"]
	if !ok || firstByte(attrs) != '{' {
		return obj, nil
	}
	var inner map[string]json.RawMessage
	if err := json.Unmarshal(attrs, &inner); err != nil {
		return nil, fmt.Errorf("%w: attributes: %v", ErrMalformed, err)
	}
	delete(obj, "attributes")
	for k, v := range inner {
		if _, exists := obj[k]; exists && k == "id" {
			continue
		}
		obj[k] = v
	}
	return obj, nil
}

// decodeEntries turns a data payload (array, single object or null) into
// flattened entries.
func decodeEntries(data json.RawMessage) ([]fields, error) {
	switch firstByte(data) {
	case 0, 'n':
		return nil, nil
	case '{':
		f, err := flattenEntry(data)
		if err != nil {
			return nil, err
		}
		return []fields{f}, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: data: %v", ErrMalformed, err)
		}
		out := make([]fields, 0, len(items))
		for _, item := range items {
			f, err := flattenEntry(item)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: data is not an object or array", ErrMalformed)
	}
}

// unwrapRelation strips the {data: ...} wrapper relations carry in the
// nested shape.
func unwrapRelation(raw json.RawMessage) json.RawMessage {
	if firstByte(raw) != '{' {
		return raw
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return raw
	}
	if data, ok := obj["data"]; ok && len(obj) <= 2 {
		return data
	}
	return raw
}

func (f fields) str(keys ...string) string {
	for _, k := range keys {
		raw, ok := f[k]
		if !ok || isNull(raw) {
			continue
		}
		switch firstByte(raw) {
		case '"':
			var s string
			if json.Unmarshal(raw, &s) == nil {
				return strings.TrimSpace(s)
			}
		case '{', '[':
			continue
		default:
			return strings.TrimSpace(string(raw))
		}
	}
	return ""
}

func (f fields) boolean(keys ...string) bool {
	for _, k := range keys {
		raw, ok := f[k]
		if !ok || isNull(raw) {
			continue
		}
		var b bool
		if json.Unmarshal(raw, &b) == nil {
			return b
		}
		if v, err := strconv.ParseBool(f.str(k)); err == nil {
			return v
		}
	}
	return false
}

func (f fields) number(keys ...string) float64 {
	for _, k := range keys {
		s := f.str(k)
		if s == "" {
			continue
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return 0
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func (f fields) time(keys ...string) time.Time {
	for _, k := range keys {
		s := f.str(k)
		if s == "" {
			continue
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}

// id prefers the numeric/string "id" and falls back to "documentId".
func (f fields) id() string {
	if id := f.str("id"); id != "" {
		return id
	}
	return f.str("documentId")
}

// richText flattens a plain string or an array of rich-text blocks.
func (f fields) richText(keys ...string) string {
	for _, k := range keys {
		raw, ok := f[k]
		if !ok || isNull(raw) {
			continue
		}
		switch firstByte(raw) {
		case '"':
			return f.str(k)
		case '[':
			var blocks []textNode
			if err := json.Unmarshal(raw, &blocks); err != nil {
				continue
			}
			return blocksText(blocks)
		}
	}
	return ""
}

// relationSlug reads a to-one relation and returns its slug. The value may
// be {data: {...}}, {data: null}, a bare entry or a plain slug string.
func (f fields) relationSlug(key string) string {
	raw, ok := f[key]
	if !ok {
		return ""
	}
	raw = unwrapRelation(raw)
	switch firstByte(raw) {
	case '"':
		return fields{key: raw}.str(key)
	case '{':
		entry, err := flattenEntry(raw)
		if err != nil {
			return ""
		}
		return entry.str("slug")
	}
	return ""
}

// relationNames reads a to-many relation and returns the display names of
// its entries, in order.
func (f fields) relationNames(key string) []string {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	raw = unwrapRelation(raw)
	if firstByte(raw) != '[' {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		switch firstByte(item) {
		case '"':
			if s := (fields{"v": item}).str("v"); s != "" {
				out = append(out, s)
			}
		case '{':
			entry, err := flattenEntry(item)
			if err != nil {
				continue
			}
			if name := entry.str("name", "title", "slug"); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

// textNode is one node of a rich-text block tree.
type textNode struct {
	Type     string     `json:"type"`
	Text     string     `json:"text"`
	Format   string     `json:"format"`
	Children []textNode `json:"children"`
}

func blocksText(blocks []textNode) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		var s string
		if b.Type == "list" {
			items := make([]string, 0, len(b.Children))
			for _, item := range b.Children {
				if t := strings.TrimSpace(inlineText(item)); t != "" {
					items = append(items, "• "+t)
				}
			}
			s = strings.Join(items, "\n")
		} else {
			s = strings.TrimSpace(inlineText(b))
		}
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func inlineText(n textNode) string {
	if len(n.Children) == 0 {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(inlineText(c))
	}
	return b.String()
}

func parseMerchant(f fields) Merchant {
	return Merchant{
		ID:          f.id(),
		Slug:        f.str("slug"),
		Name:        f.str("name", "title"),
		Description: f.richText("description", "about", "content"),
		Website:     f.str("website", "url", "homepage"),
		Categories:  f.relationNames("categories"),
		Featured:    f.boolean("featured", "isFeatured"),
		Rating:      f.number("rating", "score"),
	}
}

func parseCoupon(f fields) Coupon {
	c := Coupon{
		ID:           f.id(),
		Title:        f.str("title", "name"),
		Description:  f.richText("description", "details", "terms"),
		Code:         f.str("code", "couponCode", "promoCode"),
		Discount:     f.str("discount", "discountText", "value"),
		MerchantSlug: f.relationSlug("merchant"),
		Verified:     f.boolean("verified", "isVerified"),
		Uses:         int(f.number("uses", "usedCount", "usageCount")),
		ExpiresAt:    f.time("expiresAt", "expiryDate", "expires_at", "validUntil"),
	}
	if kind := f.str("kind", "type", "couponType"); kind != "" {
		c.Kind = ParseCouponKind(kind)
	} else if c.Code != "" {
		c.Kind = KindCode
	} else {
		c.Kind = KindDeal
	}
	return c
}

// ParseMerchants decodes a merchant collection response body.
func ParseMerchants(body []byte) ([]Merchant, Pagination, error) {
	entries, page, err := parseCollection(body)
	if err != nil {
		return nil, page, err
	}
	out := make([]Merchant, 0, len(entries))
	for _, e := range entries {
		m := parseMerchant(e)
		if m.Slug == "" && m.Name == "" {
			continue
		}
		out = append(out, m)
	}
	return out, page, nil
}

// ParseCoupons decodes a coupon collection response body.
func ParseCoupons(body []byte) ([]Coupon, Pagination, error) {
	entries, page, err := parseCollection(body)
	if err != nil {
		return nil, page, err
	}
	out := make([]Coupon, 0, len(entries))
	for _, e := range entries {
		c := parseCoupon(e)
		if c.Title == "" {
			continue
		}
		out = append(out, c)
	}
	return out, page, nil
}

func parseCollection(body []byte) ([]fields, Pagination, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, Pagination{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	entries, err := decodeEntries(env.Data)
	return entries, env.Meta.Pagination, err
}
