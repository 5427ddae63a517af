// # internal/core/errors/errors_test.go
package errors

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	err := Wrap(fs.ErrNotExist, CodeReadFailure, "failed to read file")
	if !IsCode(err, CodeReadFailure) {
		t.Fatalf("expected READ_FAILURE, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if !strings.Contains(err.Error(), "[READ_FAILURE] failed to read file") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAddContext(t *testing.T) {
	err := AddContext(New(CodeInvalidRange, "invalid line range"), CtxPath, "a.go")
	if !IsCode(err, CodeInvalidRange) {
		t.Fatalf("context must not change the code: %v", err)
	}
	if !strings.Contains(err.Error(), "a.go") {
		t.Errorf("expected path in message, got %q", err.Error())
	}

	foreign := AddContext(errors.New("boom"), CtxOperation, "extract")
	if !IsCode(foreign, CodeInternal) {
		t.Errorf("expected foreign errors to become INTERNAL_ERROR, got %v", foreign)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"domain", New(CodeParseFailure, "parse failed"), CodeParseFailure},
		{"foreign", errors.New("x"), CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
