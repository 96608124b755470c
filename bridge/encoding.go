package bridge

import (
	"strings"
	"unsafe"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/wippyai/hostfxr-go/errors"
)

// maxNativeStringUnits bounds the scan for a terminator in native strings.
const maxNativeStringUnits = 1 << 16

// StringEncoding converts between Go strings and the host library's
// NUL-terminated native strings.
type StringEncoding interface {
	Name() string
	// Encode returns a NUL-terminated native copy of s. The buffer must
	// stay reachable until the native call using it returns.
	Encode(s string) ([]byte, error)
	// Decode copies the native string at p. p must not be nil.
	Decode(p unsafe.Pointer) (string, error)
}

// Encodings used by the host library.
var (
	UTF16 StringEncoding = utf16Encoding{}
	UTF8  StringEncoding = utf8Encoding{}
)

// PlatformEncoding returns the host library's string encoding on goos.
func PlatformEncoding(goos string) StringEncoding {
	if goos == "windows" {
		return UTF16
	}
	return UTF8
}

func checkNUL(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return errors.InvalidInput(errors.PhaseCall, "string contains NUL")
	}
	return nil
}

// utf16Encoding handles wchar_t strings on Windows, little-endian.
type utf16Encoding struct{}

func (utf16Encoding) Name() string { return "utf-16" }

func (utf16Encoding) codec() encoding.Encoding {
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
}

func (e utf16Encoding) Encode(s string) ([]byte, error) {
	if err := checkNUL(s); err != nil {
		return nil, err
	}
	b, err := e.codec().NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCall, errors.KindInvalidInput, err, "encode utf-16")
	}
	return append(b, 0, 0), nil
}

func (e utf16Encoding) Decode(p unsafe.Pointer) (string, error) {
	n := 0
	for *(*uint16)(unsafe.Add(p, 2*n)) != 0 {
		n++
		if n > maxNativeStringUnits {
			return "", errors.InvalidEncoding(e.Name(), errUnterminated)
		}
	}
	raw := unsafe.Slice((*byte)(p), 2*n)
	out, err := e.codec().NewDecoder().Bytes(raw)
	if err != nil {
		return "", errors.InvalidEncoding(e.Name(), err)
	}
	return string(out), nil
}

// utf8Encoding handles char strings on unix. The bytes are validated rather
// than assumed to be text.
type utf8Encoding struct{}

func (utf8Encoding) Name() string { return "utf-8" }

func (utf8Encoding) Encode(s string) ([]byte, error) {
	if err := checkNUL(s); err != nil {
		return nil, err
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b, nil
}

func (e utf8Encoding) Decode(p unsafe.Pointer) (string, error) {
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
		if n > maxNativeStringUnits {
			return "", errors.InvalidEncoding(e.Name(), errUnterminated)
		}
	}
	raw := unsafe.Slice((*byte)(p), n)
	out, _, err := transform.Bytes(encoding.UTF8Validator, raw)
	if err != nil {
		return "", errors.InvalidEncoding(e.Name(), err)
	}
	return string(out), nil
}

type constError string

func (e constError) Error() string { return string(e) }

const errUnterminated = constError("no terminator within bound")
