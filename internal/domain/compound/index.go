package compound

import (
	"sync"

	"github.com/turtacn/stilbar/internal/domain/notation"
)

// Index is the in-memory lookup structure the converter resolves codes
// against.  It mirrors the repository contents and supports the three lookup
// keys the converter needs: normalized code, raw (un-dash-normalized) code,
// and 1-based sequence number.
//
// Duplicate codes follow the library's authoring convention: the last loaded
// compound wins.  Index is safe for concurrent use.
type Index struct {
	mu      sync.RWMutex
	byCode  map[string]*Compound
	byRaw   map[string]*Compound
	byHash  map[string]*Compound
	ordered []*Compound
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		byCode: make(map[string]*Compound),
		byRaw:  make(map[string]*Compound),
		byHash: make(map[string]*Compound),
	}
}

// Reload replaces the index contents with the given compounds, in order.
func (ix *Index) Reload(compounds []*Compound) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.byCode = make(map[string]*Compound, len(compounds))
	ix.byRaw = make(map[string]*Compound, len(compounds))
	ix.byHash = make(map[string]*Compound, len(compounds))
	ix.ordered = make([]*Compound, 0, len(compounds))

	for _, c := range compounds {
		ix.put(c)
	}
}

// Put adds or replaces a single compound.
func (ix *Index) Put(c *Compound) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.put(c)
}

func (ix *Index) put(c *Compound) {
	if c.HasCode() {
		ix.byCode[c.NormalizedCode] = c
		ix.byRaw[notation.Clean(c.Code)] = c
	}
	ix.byHash[c.Hash] = c
	ix.ordered = append(ix.ordered, c)
}

// Remove drops the compound with the given hash.  Code keys are only cleared
// when they still point at the removed compound, preserving last-wins
// semantics for duplicate codes.
func (ix *Index) Remove(hash string) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	c, ok := ix.byHash[hash]
	if !ok {
		return false
	}
	delete(ix.byHash, hash)
	if c.HasCode() {
		if cur, ok := ix.byCode[c.NormalizedCode]; ok && cur.Hash == hash {
			delete(ix.byCode, c.NormalizedCode)
		}
		if cur, ok := ix.byRaw[notation.Clean(c.Code)]; ok && cur.Hash == hash {
			delete(ix.byRaw, notation.Clean(c.Code))
		}
	}
	for i, cur := range ix.ordered {
		if cur.Hash == hash {
			ix.ordered = append(ix.ordered[:i], ix.ordered[i+1:]...)
			break
		}
	}
	return true
}

// ByCode looks up a compound by its normalized StilBAR code.
func (ix *Index) ByCode(normalized string) (*Compound, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	c, ok := ix.byCode[normalized]
	return c, ok
}

// ByRawCode looks up a compound by the cleaned but un-dash-normalized code,
// matching inputs authored with ASCII hyphens.
func (ix *Index) ByRawCode(cleaned string) (*Compound, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	c, ok := ix.byRaw[cleaned]
	return c, ok
}

// ByHash looks up a compound by hash ID.
func (ix *Index) ByHash(hash string) (*Compound, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	c, ok := ix.byHash[hash]
	return c, ok
}

// BySeq looks up a compound by its 1-based library sequence number.
func (ix *Index) BySeq(seq int) (*Compound, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	for _, c := range ix.ordered {
		if c.Seq == seq {
			return c, true
		}
	}
	return nil, false
}

// All returns the indexed compounds in load order.
func (ix *Index) All() []*Compound {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]*Compound, len(ix.ordered))
	copy(out, ix.ordered)
	return out
}

// Len returns the number of indexed compounds.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.ordered)
}
