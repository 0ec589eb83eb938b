package menu

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/johnconnor-sec/menunav-go/internal/errors"
)

// ValueKind enumerates the scalar kinds a typed prompt can collect.
type ValueKind int

const (
	Bool ValueKind = iota
	Char
	String
	F64
	I64
	U64
)

// String returns the string representation of the value kind.
func (k ValueKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Char:
		return "char"
	case String:
		return "string"
	case F64:
		return "f64"
	case I64:
		return "i64"
	case U64:
		return "u64"
	default:
		return "unknown"
	}
}

func (k ValueKind) valid() bool {
	return k >= Bool && k <= U64
}

// Hint returns the input hint shown on a prompt frame for this kind.
func (k ValueKind) Hint() string {
	switch k {
	case Bool:
		return "true or false"
	case Char:
		return "a single character"
	case String:
		return "any text"
	case F64:
		return "a decimal number"
	case I64:
		return "a signed integer"
	case U64:
		return "an unsigned integer"
	default:
		return ""
	}
}

// TypedValue is the parsed result of a typed prompt. Kind selects which of
// the value fields is meaningful.
type TypedValue struct {
	Kind  ValueKind `json:"kind"`
	Bool  bool      `json:"bool,omitempty"`
	Char  rune      `json:"char,omitempty"`
	Str   string    `json:"string,omitempty"`
	Float float64   `json:"f64,omitempty"`
	Int   int64     `json:"i64,omitempty"`
	Uint  uint64    `json:"u64,omitempty"`
}

// String renders the value the way it would be typed back in.
func (v TypedValue) String() string {
	switch v.Kind {
	case Bool:
		return strconv.FormatBool(v.Bool)
	case Char:
		return string(v.Char)
	case String:
		return v.Str
	case F64:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case I64:
		return strconv.FormatInt(v.Int, 10)
	case U64:
		return strconv.FormatUint(v.Uint, 10)
	default:
		return ""
	}
}

// ParseValue interprets one raw input line as the given kind. Bool accepts
// exactly the tokens "true" and "false". Char requires exactly one
// character. String takes the line unmodified. The numeric kinds follow
// strconv with base 10 and 64-bit width; nothing is widened or narrowed.
func ParseValue(kind ValueKind, line string) (*TypedValue, error) {
	switch kind {
	case Bool:
		switch line {
		case "true":
			return &TypedValue{Kind: Bool, Bool: true}, nil
		case "false":
			return &TypedValue{Kind: Bool, Bool: false}, nil
		}
		return nil, parseError(kind, line, "expected true or false")
	case Char:
		if utf8.RuneCountInString(line) != 1 {
			return nil, parseError(kind, line, "expected exactly one character")
		}
		r, _ := utf8.DecodeRuneInString(line)
		return &TypedValue{Kind: Char, Char: r}, nil
	case String:
		return &TypedValue{Kind: String, Str: line}, nil
	case F64:
		f, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, parseError(kind, line, "not a valid decimal number")
		}
		return &TypedValue{Kind: F64, Float: f}, nil
	case I64:
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, parseError(kind, line, "not a valid signed integer")
		}
		return &TypedValue{Kind: I64, Int: n}, nil
	case U64:
		n, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return nil, parseError(kind, line, "not a valid unsigned integer")
		}
		return &TypedValue{Kind: U64, Uint: n}, nil
	default:
		return nil, errors.New(errors.InternalError, fmt.Sprintf("Unknown value kind %d", kind))
	}
}

func parseError(kind ValueKind, line, reason string) error {
	return errors.ParseFailureError(kind.String(), line, reason)
}
