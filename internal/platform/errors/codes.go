// Package errors provides structured error handling for loot generation.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Catalog state errors
	CodeInvalidData Code = "INVALID_DATA"

	// Document errors
	CodeParse             Code = "PARSE"
	CodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// Boundary errors
	CodeInvalidEncoding Code = "INVALID_ENCODING"
	CodeInvalidHandle   Code = "INVALID_HANDLE"

	// Ledger errors
	CodeStorage Code = "STORAGE"
)

// Kind groups codes by how callers should react to them.
type Kind int

const (
	// KindInternal is an unexpected failure of the engine or its storage.
	KindInternal Kind = iota
	// KindMalformedInput is reported before any state is mutated.
	KindMalformedInput
	// KindInvalidState means the catalog cannot satisfy a generation request.
	KindInvalidState
)

func (k Kind) String() string {
	switch k {
	case KindMalformedInput:
		return "malformed input"
	case KindInvalidState:
		return "invalid catalog state"
	default:
		return "internal"
	}
}

// Kind maps domain codes to their error kind.
func (c Code) Kind() Kind {
	switch c {
	case CodeParse,
		CodeUnsupportedFormat,
		CodeInvalidEncoding,
		CodeInvalidHandle:
		return KindMalformedInput

	case CodeInvalidData:
		return KindInvalidState

	default:
		return KindInternal
	}
}
