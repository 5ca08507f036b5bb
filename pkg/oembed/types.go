package oembed

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Response is the JSON document returned by an oEmbed endpoint
type Response struct {
	Type         string `json:"type"`
	Version      string `json:"version"`
	HTML         string `json:"html"`
	URL          string `json:"url"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ProviderName string `json:"provider_name"`
	ProviderURL  string `json:"provider_url"`
	CacheAge     Number `json:"cache_age"`
	Width        Number `json:"width"`
	Height       Number `json:"height"`
}

// Number decodes a JSON number, a numeric string or null.
// Providers disagree on the type of cache_age and the dimensions.
type Number int64

// UnmarshalJSON implements json.Unmarshaler. Values that are not numeric decode as 0.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*n = Number(i)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*n = Number(f)
		return nil
	}
	*n = 0
	return nil
}
