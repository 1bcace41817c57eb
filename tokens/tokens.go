// Package tokens is the token-metadata collaborator contract. The
// classification core only needs symbol and decimals; anything able to
// answer LookupToken can back it (a database, an RPC metadata fetcher, or
// the in-memory cache below).
package tokens

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultDecimals is assumed for mints with no known metadata; it matches
// the chain's native-unit convention.
const DefaultDecimals = 9

type TokenInfo struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals uint8  `json:"decimals"`
}

// Lookup resolves mint addresses to token metadata. Implementations must
// tolerate unknown tokens by returning ok == false, never an error.
type Lookup interface {
	LookupToken(mint string) (TokenInfo, bool)
}

// Cache is a concurrency-safe in-memory Lookup.
type Cache struct {
	mu sync.RWMutex
	m  map[string]TokenInfo
}

func NewCache() *Cache {
	return &Cache{m: make(map[string]TokenInfo)}
}

func (c *Cache) Set(mint string, info TokenInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[mint] = info
}

func (c *Cache) LookupToken(mint string) (TokenInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	info, ok := c.m[mint]
	return info, ok
}

// ResolveOrDefault looks a mint up and falls back to a mint-prefix symbol
// and DefaultDecimals when metadata is unavailable, warning so unsupported
// mints show up in logs.
func ResolveOrDefault(l Lookup, mint string, log *logrus.Logger) TokenInfo {
	if l != nil {
		if info, ok := l.LookupToken(mint); ok {
			return info
		}
	}
	if log != nil {
		log.Warnf("no metadata for mint %s, using defaults", mint)
	}
	symbol := mint
	if len(symbol) > 4 {
		symbol = symbol[:4] + "…"
	}
	return TokenInfo{
		Symbol:   symbol,
		Decimals: DefaultDecimals,
	}
}
