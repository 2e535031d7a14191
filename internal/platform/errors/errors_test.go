package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeInvalidData, "no items to select from")
	if !stderrors.Is(err, New(CodeInvalidData, "other message")) {
		t.Fatal("expected errors with the same code to match")
	}
	if stderrors.Is(err, New(CodeParse, "no items to select from")) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("line 3: unexpected token")
	err := Wrap(CodeParse, "decode toml", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if got := err.Error(); got != "decode toml: line 3: unexpected token" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCodeOfWalksChain(t *testing.T) {
	err := fmt.Errorf("generate item 2: %w", New(CodeInvalidData, "empty weights"))
	if got := CodeOf(err); got != CodeInvalidData {
		t.Fatalf("expected %s, got %s", CodeInvalidData, got)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != CodeUnknown {
		t.Fatalf("expected %s for plain error, got %s", CodeUnknown, got)
	}
	if HasCode(nil, CodeUnknown) {
		t.Fatal("expected nil error to carry no code")
	}
}

func TestCodeKind(t *testing.T) {
	tests := []struct {
		code Code
		want Kind
	}{
		{CodeParse, KindMalformedInput},
		{CodeUnsupportedFormat, KindMalformedInput},
		{CodeInvalidEncoding, KindMalformedInput},
		{CodeInvalidHandle, KindMalformedInput},
		{CodeInvalidData, KindInvalidState},
		{CodeStorage, KindInternal},
		{CodeUnknown, KindInternal},
	}
	for _, tt := range tests {
		if got := tt.code.Kind(); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.code, tt.want, got)
		}
	}
}
