package filegate

import (
	"strconv"
	"strings"
)

// ParseRange parses a Range header against a file of the given size.
//
// It returns ok only for exactly one satisfiable byte range: "a-b", "a-" or
// the suffix form "-n". The end is clamped to the last byte. Empty, malformed,
// unsatisfiable and multi-range headers all return ok == false so the caller
// serves the whole file.
func ParseRange(header string, size int64) (ByteRange, bool) {
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok || size <= 0 {
		return ByteRange{}, false
	}

	spec = strings.TrimSpace(spec)
	if spec == "" || strings.Contains(spec, ",") {
		return ByteRange{}, false
	}

	first, last, ok := strings.Cut(spec, "-")
	if !ok {
		return ByteRange{}, false
	}
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)

	if first == "" {
		n, err := parseOffset(last)
		if err != nil || n == 0 {
			return ByteRange{}, false
		}
		n = min(n, size)
		return ByteRange{Start: size - n, Length: n}, true
	}

	start, err := parseOffset(first)
	if err != nil || start >= size {
		return ByteRange{}, false
	}

	end := size - 1
	if last != "" {
		end, err = parseOffset(last)
		if err != nil || end < start {
			return ByteRange{}, false
		}
		end = min(end, size-1)
	}

	return ByteRange{Start: start, Length: end - start + 1}, true
}

func parseOffset(s string) (int64, error) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(s, 10, 64)
}
