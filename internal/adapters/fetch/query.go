package fetch

import (
	"net/url"
	"strings"
)

// Param is one query parameter.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Query is an ordered parameter list. Order is kept so cache keys built
// from the same request are always identical.
type Query []Param

// Add returns q with key=value appended.
func (q Query) Add(key, value string) Query {
	return append(q, Param{Key: key, Value: value})
}

// Encode renders q as an escaped query string in insertion order.
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// CacheKey identifies a request as "base?k1=v1&k2=v2&".
func CacheKey(base string, q Query) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteByte('?')
	for _, p := range q {
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
		b.WriteByte('&')
	}
	return b.String()
}
