// # internal/engine/parser/pool.go
package parser

import (
	"sync"
	"time"

	"sherlock/internal/core/errors"
	"sherlock/internal/shared/observability"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ParserPool recycles tree-sitter parser instances to avoid the per-file
// allocation overhead of sitter.NewParser() / parser.Close().
//
// A sitter.Parser is not safe for concurrent use, so each request leases its
// own parser for the duration of one parse. Each pool is tied to a single
// grammar; the Service keeps one pool per language.
//
// Concurrency: safe for use by multiple goroutines simultaneously.
type ParserPool struct {
	lang     Language
	grammar  *sitter.Language
	pool     sync.Pool
	leases   map[*sitter.Parser]time.Time
	leasesMu sync.Mutex
}

func NewParserPool(lang Language, grammar *sitter.Language) *ParserPool {
	p := &ParserPool{
		lang:    lang,
		grammar: grammar,
		leases:  make(map[*sitter.Parser]time.Time),
	}
	p.pool = sync.Pool{
		New: func() any {
			sp := sitter.NewParser()
			_ = sp.SetLanguage(grammar)
			return sp
		},
	}
	return p
}

// Get retrieves a parser configured for the pool's grammar.
func (p *ParserPool) Get() *sitter.Parser {
	sp := p.pool.Get().(*sitter.Parser)
	_ = sp.SetLanguage(p.grammar)

	p.leasesMu.Lock()
	p.leases[sp] = time.Now()
	active := len(p.leases)
	p.leasesMu.Unlock()

	observability.ActiveParsers.WithLabelValues(string(p.lang)).Set(float64(active))
	return sp
}

// Put resets sp and returns it to the pool. Callers must not use sp after
// calling Put.
func (p *ParserPool) Put(sp *sitter.Parser) {
	if sp == nil {
		return
	}

	p.leasesMu.Lock()
	delete(p.leases, sp)
	active := len(p.leases)
	p.leasesMu.Unlock()

	observability.ActiveParsers.WithLabelValues(string(p.lang)).Set(float64(active))
	sp.Reset()
	p.pool.Put(sp)
}

// Parse leases a parser, parses source and returns the tree. The caller owns
// the tree and must Close it.
func (p *ParserPool) Parse(source []byte) (*sitter.Tree, error) {
	sp := p.Get()
	defer p.Put(sp)

	tree := sp.Parse(source, nil)
	if tree == nil {
		return nil, errors.AddContext(
			errors.New(errors.CodeParseFailure, "failed to parse file"),
			errors.CtxLanguage, string(p.lang),
		)
	}
	return tree, nil
}

// Stats returns the number of currently leased parsers.
func (p *ParserPool) Stats() int {
	p.leasesMu.Lock()
	defer p.leasesMu.Unlock()
	return len(p.leases)
}
