package uci

import (
	"errors"
	"strconv"
)

// MaxPermill is the largest valid Permill value.
const MaxPermill = 1000

var (
	// ErrInvalidPermill matches any Permill parse failure.
	ErrInvalidPermill = errors.New("uci: invalid permill")

	// ErrPermillRange is returned when converting an integer outside 0..=1000.
	ErrPermillRange = errors.New("permill value is out of range (0..=1000)")

	// ErrPermillOutOfRange is returned by ParsePermill for well-formed numbers
	// outside 0..=1000, including numbers that overflow.
	ErrPermillOutOfRange = &permillParseError{msg: "permill value is out of range (0..=1000)"}

	// ErrPermillInvalidNumber is returned by ParsePermill for text that is not
	// a decimal number.
	ErrPermillInvalidNumber = &permillParseError{msg: "not a valid number"}
)

type permillParseError struct {
	msg string
}

func (e *permillParseError) Error() string { return e.msg }

func (e *permillParseError) Is(target error) bool { return target == ErrInvalidPermill }

// Permill is an integer in parts-per-thousand, always within 0..=1000.
type Permill uint16

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// NewPermill converts v to a Permill, failing with ErrPermillRange when v is
// outside 0..=1000.
func NewPermill[T integer](v T) (Permill, error) {
	if v < 0 || uint64(v) > MaxPermill {
		return 0, ErrPermillRange
	}
	return Permill(v), nil
}

// ParsePermill parses a decimal permill value.
func ParsePermill(s string) (Permill, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, ErrPermillOutOfRange
		}
		return 0, ErrPermillInvalidNumber
	}
	if n > MaxPermill {
		return 0, ErrPermillOutOfRange
	}
	return Permill(n), nil
}

// String formats the value as a plain decimal.
func (p Permill) String() string {
	return strconv.FormatUint(uint64(p), 10)
}

// Float returns the value as a fraction in [0, 1].
func (p Permill) Float() float64 {
	return float64(p) / MaxPermill
}
