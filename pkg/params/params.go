// Package params holds the ordered key/value maps produced by widget serializers.
package params

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Params is an ordered map of string, bool or int values.
// Setting an existing key replaces its value without moving it.
type Params struct {
	keys   []string
	values map[string]any
}

// Attribute is a single rendered data-* attribute
type Attribute struct {
	Name  string
	Value string
}

// New creates an empty Params
func New() *Params {
	return &Params{values: make(map[string]any)}
}

// Set stores a string, bool or int value under key. Other value types are ignored.
// A nil receiver is left as is and a new Params holding the value is returned.
func (p *Params) Set(key string, value any) *Params {
	if p == nil {
		return New().Set(key, value)
	}
	switch v := value.(type) {
	case string, bool, int:
	case int64:
		value = int(v)
	case int32:
		value = int(v)
	default:
		return p
	}

	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Get returns the value stored under key
func (p *Params) Get(key string) (any, bool) {
	if p == nil || p.values == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present
func (p *Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Delete removes key, keeping the order of the remaining keys
func (p *Params) Delete(key string) {
	if !p.Has(key) {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Len returns the number of stored keys
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Each calls fn for every key in insertion order
func (p *Params) Each(fn func(key string, value any)) {
	if p == nil {
		return
	}
	for _, k := range p.keys {
		fn(k, p.values[k])
	}
}

// Merge copies every entry of other into p. Existing keys are overwritten in place.
// A nil receiver is left as is and a new Params holding the entries is returned.
func (p *Params) Merge(other *Params) *Params {
	if p == nil {
		p = New()
	}
	other.Each(func(key string, value any) {
		p.Set(key, value)
	})
	return p
}

// Clone returns an independent copy
func (p *Params) Clone() *Params {
	return New().Merge(p)
}

// Equal reports whether both maps hold the same keys, order and values
func (p *Params) Equal(other *Params) bool {
	if p.Len() != other.Len() {
		return false
	}
	for i, k := range p.Keys() {
		if other.keys[i] != k || other.values[k] != p.values[k] {
			return false
		}
	}
	return true
}

// String returns the value under key formatted for output.
// Booleans become "true"/"false" and integers are written in decimal.
func (p *Params) String(key string) string {
	v, ok := p.Get(key)
	if !ok {
		return ""
	}
	return format(v)
}

// Query encodes the map as a URL query string in insertion order
func (p *Params) Query() string {
	var b strings.Builder
	p.Each(func(key string, value any) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(format(value)))
	})
	return b.String()
}

// DataAttributes returns data-<key> attributes in insertion order
func (p *Params) DataAttributes() []Attribute {
	attrs := make([]Attribute, 0, p.Len())
	p.Each(func(key string, value any) {
		attrs = append(attrs, Attribute{Name: "data-" + key, Value: format(value)})
	})
	return attrs
}

func format(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	}
	return fmt.Sprint(v)
}
