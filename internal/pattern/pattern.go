// Package pattern matches hostnames against wildcard domain patterns.
//
// A pattern is matched against the whole hostname, case-insensitively.
// "*" matches any run of characters, including dots and the empty string;
// every other character is literal. "*.example.com" matches
// "www.example.com" and "a.b.example.com" but not "example.com".
package pattern

import (
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

// Wildcard is the only special character in a domain pattern.
const Wildcard = "*"

// Cache memoises compiled patterns keyed by the raw pattern string.
type Cache interface {
	Get(pattern string) (glob.Glob, bool)
	Put(pattern string, g glob.Glob)
}

// Matcher evaluates domain patterns, compiling each one at most once per
// cache entry.
type Matcher struct {
	cache Cache
}

// NewMatcher returns a Matcher backed by cache. A nil cache disables
// memoisation.
func NewMatcher(cache Cache) *Matcher {
	if cache == nil {
		cache = NoCache{}
	}
	return &Matcher{cache: cache}
}

var defaultMatcher = NewMatcher(NewMapCache())

// Default returns the shared Matcher used by the package-level helpers.
func Default() *Matcher {
	return defaultMatcher
}

// Match reports whether hostname matches pattern using the shared Matcher.
func Match(hostname, pattern string) bool {
	return defaultMatcher.Match(hostname, pattern)
}

// Match reports whether hostname matches pattern.
func (m *Matcher) Match(hostname, pattern string) bool {
	if pattern == "" {
		return hostname == ""
	}
	g, ok := m.cache.Get(pattern)
	if !ok {
		var err error
		g, err = Compile(pattern)
		if err != nil {
			return false
		}
		m.cache.Put(pattern, g)
	}
	return g.Match(strings.ToLower(hostname))
}

// MatchAny reports whether any of patterns matches hostname.
func (m *Matcher) MatchAny(hostname string, patterns []string) bool {
	_, ok := m.First(hostname, patterns)
	return ok
}

// First returns the first pattern in list order that matches hostname.
func (m *Matcher) First(hostname string, patterns []string) (string, bool) {
	for _, p := range patterns {
		if m.Match(hostname, p) {
			return p, true
		}
	}
	return "", false
}

// Compile translates a domain pattern into a glob that matches lower-cased
// hostnames. Glob metacharacters other than "*" are quoted so they match
// literally.
func Compile(pattern string) (glob.Glob, error) {
	pieces := strings.Split(strings.ToLower(pattern), Wildcard)
	g, err := glob.Compile(quotePieces(pieces))
	if err != nil {
		return nil, err
	}
	return domainGlob{glob: g, pieces: pieces}, nil
}

// Translate returns the glob source for a domain pattern.
func Translate(pattern string) string {
	return quotePieces(strings.Split(strings.ToLower(pattern), Wildcard))
}

func quotePieces(pieces []string) string {
	quoted := make([]string, len(pieces))
	for i, piece := range pieces {
		quoted[i] = glob.QuoteMeta(piece)
	}
	return strings.Join(quoted, Wildcard)
}

// domainGlob pairs the compiled glob with the literal pieces between
// wildcards. The glob's prefix/suffix matchers let the two ends overlap
// ("a" against "a*a"), so a hit is confirmed by an anchored walk over the
// pieces.
type domainGlob struct {
	glob   glob.Glob
	pieces []string
}

// Match implements glob.Glob.
func (d domainGlob) Match(s string) bool {
	return d.glob.Match(s) && matchPieces(s, d.pieces)
}

// matchPieces reports whether s is pieces[0], then any run, then pieces[1]
// and so on, ending with the last piece. Leftmost placement of each middle
// piece is enough: a later placement never leaves more room for the rest.
func matchPieces(s string, pieces []string) bool {
	if len(pieces) == 1 {
		return s == pieces[0]
	}
	first, last := pieces[0], pieces[len(pieces)-1]
	if len(s) < len(first)+len(last) || !strings.HasPrefix(s, first) || !strings.HasSuffix(s, last) {
		return false
	}
	rest := s[len(first) : len(s)-len(last)]
	for _, piece := range pieces[1 : len(pieces)-1] {
		i := strings.Index(rest, piece)
		if i < 0 {
			return false
		}
		rest = rest[i+len(piece):]
	}
	return true
}

// MapCache is a Cache backed by a map guarded by a read/write mutex.
type MapCache struct {
	mu    sync.RWMutex
	globs map[string]glob.Glob
}

// NewMapCache returns an empty MapCache.
func NewMapCache() *MapCache {
	return &MapCache{globs: make(map[string]glob.Glob)}
}

// Get implements Cache.
func (c *MapCache) Get(pattern string) (glob.Glob, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.globs[pattern]
	return g, ok
}

// Put implements Cache.
func (c *MapCache) Put(pattern string, g glob.Glob) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.globs[pattern] = g
}

// Len returns the number of cached patterns.
func (c *MapCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.globs)
}

// NoCache compiles every pattern on every call.
type NoCache struct{}

// Get implements Cache.
func (NoCache) Get(string) (glob.Glob, bool) { return nil, false }

// Put implements Cache.
func (NoCache) Put(string, glob.Glob) {}
