package uci

import (
	"math"
	"strconv"
	"time"
)

func parseUint8(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	return uint8(n), err
}

func parseUint16(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	return uint16(n), err
}

func parseUint32(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	return uint32(n), err
}

func parseUint64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

func parseInt32(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	return int32(n), err
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// parseMillis parses a non-negative millisecond count. Counts that do not
// fit in a time.Duration are a range error.
func parseMillis(s string) (time.Duration, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt64/uint64(time.Millisecond) {
		return 0, &strconv.NumError{Func: "ParseUint", Num: s, Err: strconv.ErrRange}
	}
	return time.Duration(n) * time.Millisecond, nil
}

func formatMillis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}

// reader adapts a text decoder into a token reader.
func reader[T any](kind Kind, parse func(string) (T, error)) func(*tokenStream, FormatOptions) (T, error) {
	return func(s *tokenStream, _ FormatOptions) (T, error) {
		return readAs(s, kind, parse)
	}
}

var (
	readUint8   = reader(KindInvalidInt, parseUint8)
	readUint16  = reader(KindInvalidInt, parseUint16)
	readUint32  = reader(KindInvalidInt, parseUint32)
	readUint64  = reader(KindInvalidInt, parseUint64)
	readMillis  = reader(KindInvalidInt, parseMillis)
	readPermill = reader(KindInvalidPermill, ParsePermill)
	readMove    = reader(KindInvalidMove, ParseMove)
)
