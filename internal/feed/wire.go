package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/muurk/controlroom/internal/screen"
)

// Accepted spellings for each item field, first match wins
var (
	idKeys     = []string{"id", "stt", "soThuTu", "STT"}
	nameKeys   = []string{"name", "tenManHinh", "TenManHinh"}
	activeKeys = []string{"active", "isActive"}
	codeKeys   = []string{"code", "maHienThiDieuKhienTrungTam", "maManHinh", "MaManHinh"}
	kindKeys   = []string{"kind", "loaiManHinh", "LoaiManHinh"}
)

// Item is one screen in the canonical wire spelling
type Item struct {
	ID     int    `json:"id" yaml:"id"`
	Name   string `json:"name,omitempty" yaml:"name"`
	Active bool   `json:"active" yaml:"active"`
	Code   string `json:"code,omitempty" yaml:"code,omitempty"`
	Kind   string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Response is the feed body
type Response struct {
	Result []Item `json:"result"`
}

type rawResponse struct {
	Result *[]json.RawMessage `json:"result"`
}

// Decode parses a feed body into entries. A body without a result array is a
// parse error; items that are not objects are reported individually and
// skipped. Field-level problems (missing id, bad name) are left for
// screen.Normalize to report.
func Decode(body []byte) ([]screen.Entry, []error, error) {
	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, nil, NewParseError("failed to parse feed response", err)
	}
	if raw.Result == nil {
		return nil, nil, NewParseError("feed response has no result array", nil)
	}

	entries := make([]screen.Entry, 0, len(*raw.Result))
	var problems []error
	for i, item := range *raw.Result {
		entry, err := decodeItem(item)
		if err != nil {
			problems = append(problems, NewInvalidEntryError(&screen.EntryError{Index: i, ID: -1, Reason: err.Error()}))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, problems, nil
}

func decodeItem(data json.RawMessage) (screen.Entry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return screen.Entry{}, fmt.Errorf("not an object: %w", err)
	}
	if fields == nil {
		return screen.Entry{}, fmt.Errorf("null entry")
	}

	var entry screen.Entry
	if v, ok := lookup(fields, idKeys); ok {
		if id, ok := asInt(v); ok {
			entry.ID = &id
		}
	}
	if v, ok := lookup(fields, nameKeys); ok {
		entry.Name = asString(v)
	}
	if v, ok := lookup(fields, activeKeys); ok {
		entry.Active = asActive(v)
	}
	if v, ok := lookup(fields, codeKeys); ok {
		entry.Code = asString(v)
	}
	if v, ok := lookup(fields, kindKeys); ok {
		entry.Kind = asString(v)
	}
	return entry, nil
}

// lookup returns the first non-null value among keys
func lookup(fields map[string]json.RawMessage, keys []string) (json.RawMessage, bool) {
	for _, k := range keys {
		v, ok := fields[k]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			continue
		}
		return v, true
	}
	return nil, false
}

func asInt(v json.RawMessage) (int, bool) {
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return 0, false
		}
		n = json.Number(strings.TrimSpace(s))
	}
	if i, err := n.Int64(); err == nil {
		return int(i), true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func asString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	return ""
}

// asActive accepts true or 1
func asActive(v json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		f, err := n.Float64()
		return err == nil && f == 1
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		return err == nil && b
	}
	return false
}

// Encode renders items as a feed body
func Encode(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(Response{Result: items})
}
