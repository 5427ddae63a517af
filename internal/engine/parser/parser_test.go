// # internal/engine/parser/parser_test.go
package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"sherlock/internal/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestService_ExtractSymbolsFromDisk(t *testing.T) {
	svc := newTestService(t)
	path := writeFile(t, "lib.rs", "pub fn foo() {}\n")

	symbols, err := svc.ExtractSymbols(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, symbols, 1)
	assert.Equal(t, path+"_foo_0", symbols[0].ID)
	assert.Equal(t, path, symbols[0].FilePath)
}

func TestService_UnsupportedExtension(t *testing.T) {
	svc := newTestService(t)

	for _, path := range []string{"notes.txt", "Makefile", "archive.tar.gz", "noext"} {
		t.Run(path, func(t *testing.T) {
			_, err := svc.ExtractSymbols(context.Background(), path)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeUnsupportedLanguage), "got %v", err)
		})
	}
}

func TestService_UnsupportedBeforeRead(t *testing.T) {
	svc := newTestService(t)
	svc.readFile = func(string) ([]byte, error) {
		t.Fatal("file must not be read for an unsupported extension")
		return nil, nil
	}

	_, err := svc.ExtractSymbols(context.Background(), "missing.txt")
	assert.True(t, errors.IsCode(err, errors.CodeUnsupportedLanguage))
}

func TestService_MissingFile(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ExtractSymbols(context.Background(), filepath.Join(t.TempDir(), "gone.py"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeReadFailure), "got %v", err)
}

func TestService_InvalidUTF8IsReadFailure(t *testing.T) {
	svc := newTestService(t)
	path := writeFile(t, "main.go", "package main\n\n// \xff\xfe\nfunc Main() {}\n")

	_, err := svc.ExtractSymbols(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeReadFailure), "got %v", err)

	_, err = svc.ChunkHash(context.Background(), path, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeReadFailure), "got %v", err)
}

func TestService_DisabledLanguage(t *testing.T) {
	disabled := false
	specs, err := BuildLanguageRegistry(map[string]LanguageOverride{
		string(LangPython): {Enabled: &disabled},
	})
	require.NoError(t, err)

	registry := NewRegistry(specs)
	grammars, err := NewGrammarLoader(registry)
	require.NoError(t, err)
	svc := NewService(registry, grammars)

	_, err = svc.ExtractSource(context.Background(), "a.py", []byte("def f(): pass\n"))
	assert.True(t, errors.IsCode(err, errors.CodeUnsupportedLanguage))

	symbols, err := svc.ExtractSource(context.Background(), "a.go", []byte("package a\nfunc F() {}\n"))
	require.NoError(t, err)
	assert.Len(t, symbols, 1)
}

func TestService_CanceledContext(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ExtractSource(ctx, "a.go", []byte("package a\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_ExtractDependenciesIsEmpty(t *testing.T) {
	svc := newTestService(t)

	deps, err := svc.ExtractDependencies(context.Background(), "does/not/matter.unknown")
	require.NoError(t, err)
	assert.NotNil(t, deps)
	assert.Empty(t, deps)
}

func TestService_ChunkHash(t *testing.T) {
	svc := newTestService(t)
	path := writeFile(t, "a.txt", "one\ntwo\nthree\n")

	full, err := svc.ChunkHash(context.Background(), path, nil, nil)
	require.NoError(t, err)
	explicit, err := svc.ChunkHash(context.Background(), path, intPtr(1), intPtr(3))
	require.NoError(t, err)
	assert.Equal(t, full, explicit)

	middle, err := svc.ChunkHash(context.Background(), path, intPtr(2), intPtr(2))
	require.NoError(t, err)
	assert.NotEqual(t, full, middle)

	_, err = svc.ChunkHash(context.Background(), path, intPtr(3), intPtr(1))
	assert.True(t, errors.IsCode(err, errors.CodeInvalidRange), "got %v", err)

	_, err = svc.ChunkHash(context.Background(), filepath.Join(t.TempDir(), "none"), nil, nil)
	assert.True(t, errors.IsCode(err, errors.CodeReadFailure), "got %v", err)
}

func TestService_ConcurrentExtraction(t *testing.T) {
	svc := newTestService(t)
	inputs := map[string]string{
		"a.go":   "package a\nfunc A() {}\nfunc b() {}\n",
		"a.py":   "class A:\n    def f(self): pass\n",
		"a.rs":   "pub struct A;\nfn b() {}\n",
		"A.java": "class A { void f() {} }\n",
	}

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers*len(inputs))

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path, src := range inputs {
				symbols, err := svc.ExtractSource(context.Background(), path, []byte(src))
				if err != nil {
					errs <- err
					continue
				}
				if len(symbols) != 2 {
					errs <- fmt.Errorf("%s: got %d symbols", path, len(symbols))
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func intPtr(v int) *int { return &v }
