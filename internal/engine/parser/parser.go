// # internal/engine/parser/parser.go
package parser

import (
	"context"
	"os"
	"time"
	"unicode/utf8"

	"sherlock/internal/core/errors"
	"sherlock/internal/engine/chunk"
	"sherlock/internal/shared/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Service extracts symbols and chunk hashes from files on disk. It holds only
// state built at startup (registry, grammars, parser pools) and may be shared
// by any number of concurrent requests.
type Service struct {
	registry *Registry
	grammars *GrammarLoader
	pools    map[Language]*ParserPool
	readFile func(string) ([]byte, error)
}

func NewService(registry *Registry, grammars *GrammarLoader) *Service {
	s := &Service{
		registry: registry,
		grammars: grammars,
		pools:    make(map[Language]*ParserPool),
		readFile: os.ReadFile,
	}
	for _, lang := range registry.Languages() {
		grammar, err := grammars.Grammar(lang)
		if err != nil {
			continue
		}
		s.pools[lang] = NewParserPool(lang, grammar)
	}
	return s
}

func (s *Service) Registry() *Registry {
	return s.registry
}

func (s *Service) Grammars() *GrammarLoader {
	return s.grammars
}

// ExtractSymbols detects the language of filePath, reads and parses it, and
// returns its symbols in pre-order. The file is not checked for existence
// beforehand; a missing file surfaces as a read failure.
func (s *Service) ExtractSymbols(ctx context.Context, filePath string) ([]CodeSymbol, error) {
	ctx, span := observability.Tracer.Start(ctx, "parser.ExtractSymbols",
		trace.WithAttributes(attribute.String("file.path", filePath)))
	defer span.End()

	symbols, err := s.extractSymbols(ctx, filePath)
	if err != nil {
		recordFailure(span, "extract", err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("symbols.count", len(symbols)))
	return symbols, nil
}

func (s *Service) extractSymbols(ctx context.Context, filePath string) ([]CodeSymbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lang, pool, err := s.resolve(filePath)
	if err != nil {
		return nil, err
	}

	source, err := s.readSource(filePath)
	if err != nil {
		return nil, err
	}
	return s.extract(lang, pool, filePath, source)
}

// ExtractSource runs extraction over in-memory source, using filePath only
// for language detection and symbol ids.
func (s *Service) ExtractSource(ctx context.Context, filePath string, source []byte) ([]CodeSymbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lang, pool, err := s.resolve(filePath)
	if err != nil {
		return nil, err
	}
	return s.extract(lang, pool, filePath, source)
}

func (s *Service) resolve(filePath string) (Language, *ParserPool, error) {
	lang, ok := s.registry.DetectLanguage(filePath)
	if !ok {
		return "", nil, errors.AddContext(
			errors.New(errors.CodeUnsupportedLanguage, "unsupported file type"),
			errors.CtxPath, filePath,
		)
	}
	if _, err := s.grammars.Grammar(lang); err != nil {
		return "", nil, err
	}
	pool, ok := s.pools[lang]
	if !ok {
		return "", nil, errors.AddContext(
			errors.New(errors.CodeUnsupportedLanguage, "language parser not available"),
			errors.CtxLanguage, string(lang),
		)
	}
	return lang, pool, nil
}

func (s *Service) extract(lang Language, pool *ParserPool, filePath string, source []byte) ([]CodeSymbol, error) {
	rules, ok := RulesetFor(lang)
	if !ok {
		return nil, errors.AddContext(
			errors.New(errors.CodeUnsupportedLanguage, "no extraction rules"),
			errors.CtxLanguage, string(lang),
		)
	}

	start := time.Now()
	tree, err := pool.Parse(source)
	observability.ParsingDuration.WithLabelValues(string(lang)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, filePath)
	}
	defer tree.Close()

	ectx := NewExtractionContext(source, filePath)
	if err := NewExtractorEngine(rules).Walk(ectx, WrapNode(tree.RootNode())); err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, filePath)
	}

	for _, sym := range ectx.Symbols {
		observability.SymbolsExtractedTotal.WithLabelValues(string(lang), string(sym.SymbolType)).Inc()
	}
	return ectx.Symbols, nil
}

// ExtractDependencies is not implemented yet and always returns an empty
// slice. Callers must not read the result as "no dependencies".
func (s *Service) ExtractDependencies(ctx context.Context, filePath string) ([]CodeSymbol, error) {
	_, span := observability.Tracer.Start(ctx, "parser.ExtractDependencies",
		trace.WithAttributes(attribute.String("file.path", filePath)))
	defer span.End()
	return []CodeSymbol{}, nil
}

// ChunkHash hashes the 1-based inclusive line range of filePath. Nil bounds
// default to the first and last line.
func (s *Service) ChunkHash(ctx context.Context, filePath string, startLine, endLine *int) (string, error) {
	_, span := observability.Tracer.Start(ctx, "parser.ChunkHash",
		trace.WithAttributes(attribute.String("file.path", filePath)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, err := s.readSource(filePath)
	if err != nil {
		recordFailure(span, "hash", err)
		return "", err
	}
	hash, err := chunk.Hash(content, startLine, endLine)
	if err != nil {
		err = errors.AddContext(err, errors.CtxPath, filePath)
		recordFailure(span, "hash", err)
		return "", err
	}
	observability.ChunkHashesTotal.Inc()
	return hash, nil
}

// readSource reads filePath as text. Content that is not valid UTF-8 is a
// read failure, the same as a missing file.
func (s *Service) readSource(filePath string) ([]byte, error) {
	content, err := s.readFile(filePath)
	if err != nil {
		return nil, errors.AddContext(
			errors.Wrap(err, errors.CodeReadFailure, "failed to read file"),
			errors.CtxPath, filePath,
		)
	}
	if !utf8.Valid(content) {
		return nil, errors.AddContext(
			errors.New(errors.CodeReadFailure, "file is not valid utf-8"),
			errors.CtxPath, filePath,
		)
	}
	return content, nil
}

func recordFailure(span trace.Span, operation string, err error) {
	code := errors.CodeOf(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, string(code))
	observability.FailuresTotal.WithLabelValues(operation, string(code)).Inc()
}
