// ABOUTME: Display width of strings in terminal cells, grapheme-aware
// ABOUTME: Pure ASCII takes a fast path; other strings are measured once and cached

package width

import (
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const cacheSize = 256

// cache remembers the width of measured non-ASCII strings. Labels change
// rarely, so once it is full it is simply emptied.
type cache struct {
	mu    sync.Mutex
	cells map[string]int
	limit int
}

func newCache(limit int) *cache {
	return &cache{cells: make(map[string]int, limit), limit: limit}
}

func (c *cache) get(key string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.cells[key]
	return n, ok
}

func (c *cache) put(key string, cells int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.cells) >= c.limit {
		clear(c.cells)
	}
	c.cells[key] = cells
}

var widthCache = newCache(cacheSize)

// VisibleWidth returns the number of terminal cells s occupies once
// printed. ANSI escape sequences count as zero cells; East Asian wide
// characters and most emoji count as two.
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	if isPlainASCII(s) {
		return len(s)
	}
	if w, ok := widthCache.get(s); ok {
		return w
	}
	w := measure(s)
	widthCache.put(s, w)
	return w
}

// isPlainASCII reports whether s holds only printable ASCII (0x20-0x7E).
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

func measure(s string) int {
	rest := StripANSI(s)
	cells := 0
	state := -1
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		cells += clusterWidth(cluster)
	}
	return cells
}

// clusterWidth is the width of a grapheme cluster, taken from its first rune.
func clusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
