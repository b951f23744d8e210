// Package identifier はソート可能でプレフィックス付きのエンティティIDを生成します。
package identifier

import (
	"fmt"
	"sync"

	"github.com/segmentio/ksuid"
)

// Entity prefixes distinguish record types sharing the single table.
const (
	// CollectionPrefix marks collection ids (e.g. "col_2H7x...").
	CollectionPrefix = "col"
	// EntryPrefix marks journal entry ids.
	EntryPrefix = "ent"
)

// KeyPrefix returns the string that all ids carrying the given prefix
// start with. Range scans over the single table filter on this value.
func KeyPrefix(prefix string) string {
	return prefix + "_"
}

// Generator issues KSUID-based ids that are strictly increasing within the
// process. KSUIDs are time-ordered only at second precision, so the generator
// sequences ids issued inside the same second to keep lexicographic order
// aligned with creation order, which the range-scan pagination relies on.
type Generator struct {
	mu   sync.Mutex
	last ksuid.KSUID
}

// NewGenerator creates a new id generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// NewID returns a new id of the form "<prefix>_<ksuid>". Each id compares
// lexicographically greater than every id previously issued by this generator.
func (g *Generator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := ksuid.New()
	if ksuid.Compare(id, g.last) <= 0 {
		id = g.last.Next()
	}
	g.last = id

	return fmt.Sprintf("%s_%s", prefix, id.String())
}
