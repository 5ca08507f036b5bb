package oembed

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// MaxKeyLength is the longest cache key stored as-is
const MaxKeyLength = 172

// CacheKey builds <tag>_<datasource>[_<lang>][_<codes>].
// Keys over MaxKeyLength replace the codes, then the datasource, with an FNV-1a digest.
func CacheKey(tag, datasource, lang, codes string) string {
	key := joinKey(tag, datasource, lang, codes)
	if len(key) <= MaxKeyLength {
		return key
	}

	key = joinKey(tag, datasource, lang, digest(codes))
	if len(key) <= MaxKeyLength {
		return key
	}

	return joinKey(tag, digest(datasource+"_"+lang+"_"+codes), "", "")
}

func joinKey(tag, datasource, lang, codes string) string {
	parts := []string{tag, datasource}
	if lang != "" {
		parts = append(parts, lang)
	}
	if codes != "" {
		parts = append(parts, codes)
	}
	return strings.Join(parts, "_")
}

func digest(s string) string {
	if s == "" {
		return ""
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return strconv.FormatUint(h.Sum64(), 16)
}
