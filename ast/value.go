package ast

import (
	"encoding/hex"
	"strconv"

	"github.com/pkg/errors"
)

// AddressLength is the fixed width, in bytes, of an Address value.
const AddressLength = 32

var (
	// ErrAddressTooLong is returned when an address literal decodes to
	// more than AddressLength bytes.
	ErrAddressTooLong = errors.New("address literal decodes to more than 32 bytes")
	// ErrMalformedHex is returned when a byte-array or address literal's
	// hex body cannot be decoded.
	ErrMalformedHex = errors.New("malformed hex literal")
	// ErrIntegerOverflow is returned when a U64 literal exceeds 2^64-1.
	ErrIntegerOverflow = errors.New("integer literal out of range for u64")
)

// Address is a copyable 32-byte account address value.
type Address [AddressLength]byte

// NewAddress decodes big-endian hex into a left-padded 32-byte Address. This
// is the narrow value-constructor interface the spec describes: callers
// that need a different address/byte-array domain representation can swap
// this out without touching the grammar.
func NewAddress(hexDigits string) (Address, error) {
	var addr Address
	raw, err := decodeHex(hexDigits)
	if err != nil {
		return addr, err
	}
	if len(raw) > AddressLength {
		return addr, ErrAddressTooLong
	}
	copy(addr[AddressLength-len(raw):], raw)
	return addr, nil
}

// NewByteArray decodes a hex literal body ("b\"<hex>\"" with the quotes and
// leading "b" already stripped) into raw bytes. An odd-length body is
// left-padded with a zero nibble before decoding, per spec §4.1.
func NewByteArray(hexDigits string) ([]byte, error) {
	return decodeHex(hexDigits)
}

func decodeHex(digits string) ([]byte, error) {
	if len(digits)%2 != 0 {
		digits = "0" + digits
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedHex, err.Error())
	}
	return raw, nil
}

// NewU64 parses a decimal integer literal as an unsigned 64-bit value,
// failing on overflow rather than silently wrapping.
func NewU64(digits string) (uint64, error) {
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, errors.Wrap(ErrIntegerOverflow, err.Error())
	}
	return v, nil
}

// CopyableVal is a freely-copyable value embedded in the tree (spec §3).
type CopyableVal struct {
	Span
	AddressVal *AddressLit   `( @Address`
	BoolVal    *BoolLit      `| @( "true" | "false" )`
	U64Val     *IntLit       `| @Int`
	ByteArray  *ByteArrayLit `| @ByteArray )`
}

func NewAddressVal(a Address) *CopyableVal {
	return &CopyableVal{AddressVal: &AddressLit{Value: a}}
}

func NewBoolVal(b bool) *CopyableVal {
	return &CopyableVal{BoolVal: &BoolLit{Value: b}}
}

func NewU64Val(v uint64) *CopyableVal {
	return &CopyableVal{U64Val: &IntLit{Value: v}}
}

func NewByteArrayVal(b []byte) *CopyableVal {
	return &CopyableVal{ByteArray: &ByteArrayLit{Value: b}}
}

// AddressLit is the grammar production for an account address literal:
// "0x"/"0X" followed by hex digits, decoded and left-padded to 32 bytes.
// It is always referenced from a parent field tagged "@Address"; Capture
// below does the decoding, so its own fields carry no participle tags.
type AddressLit struct {
	Span
	Value Address
}

// Capture decodes the raw "0x..." token into a padded Address.
func (a *AddressLit) Capture(tokens []string) error {
	raw := tokens[0][2:] // strip "0x"/"0X"
	addr, err := NewAddress(raw)
	if err != nil {
		return err
	}
	a.Value = addr
	return nil
}

// ByteArrayLit is the grammar production for a byte-array literal:
// b"<hex>" with an even-length (zero-padded) hex body. Referenced from a
// parent field tagged "@ByteArray".
type ByteArrayLit struct {
	Span
	Value []byte
}

// Capture decodes the raw `b"<hex>"` token into a byte slice.
func (b *ByteArrayLit) Capture(tokens []string) error {
	raw := tokens[0]
	raw = raw[2 : len(raw)-1] // strip leading b" and trailing "
	decoded, err := NewByteArray(raw)
	if err != nil {
		return err
	}
	b.Value = decoded
	return nil
}

// IntLit is the grammar production for an unsigned 64-bit integer literal.
// Referenced from a parent field tagged "@Int".
type IntLit struct {
	Span
	Value uint64
}

// Capture parses the raw decimal digits, failing on overflow.
func (n *IntLit) Capture(tokens []string) error {
	v, err := NewU64(tokens[0])
	if err != nil {
		return err
	}
	n.Value = v
	return nil
}

// BoolLit is the grammar production for the keywords "true"/"false".
// Referenced from a parent field tagged `@( "true" | "false" )`.
type BoolLit struct {
	Span
	Value bool
}

// Capture records the literal boolean value from the matched keyword.
func (b *BoolLit) Capture(tokens []string) error {
	b.Value = tokens[0] == "true"
	return nil
}

// String renders the literal the way it would have appeared in source.
func (c *CopyableVal) String() string {
	switch {
	case c.AddressVal != nil:
		return "0x" + hex.EncodeToString(c.AddressVal.Value[:])
	case c.BoolVal != nil:
		if c.BoolVal.Value {
			return "true"
		}
		return "false"
	case c.U64Val != nil:
		return strconv.FormatUint(c.U64Val.Value, 10)
	case c.ByteArray != nil:
		return `b"` + hex.EncodeToString(c.ByteArray.Value) + `"`
	default:
		return ""
	}
}
