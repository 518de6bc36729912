package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// parseCount converts strings like 64k or 2M into a count. Suffixes are
// decimal since they count advances, not bytes.
func parseCount(countStr string) (uint64, error) {
	countStr = strings.TrimSpace(countStr)
	lastChar := len(countStr) - 1
	multiplier := uint64(1)

	if lastChar > 0 {
		switch unicode.ToLower(rune(countStr[lastChar])) {
		case 'k':
			multiplier = 1_000
			countStr = strings.TrimSpace(countStr[:lastChar])
		case 'm':
			multiplier = 1_000_000
			countStr = strings.TrimSpace(countStr[:lastChar])
		case 'g':
			multiplier = 1_000_000_000
			countStr = strings.TrimSpace(countStr[:lastChar])
		}
	}

	count, err := strconv.ParseUint(countStr, 10, 64)

	if err != nil {
		return 0, fmt.Errorf("cannot parse '%s' as a count", countStr)
	}

	if count > math.MaxUint64/multiplier {
		return 0, fmt.Errorf("count '%s' is too large", countStr)
	}

	return count * multiplier, nil
}

// parseUint32 accepts decimal or 0x-prefixed hex. Seeds are almost always
// written in hex, so a bare value with hex letters is read as hex too.
func parseUint32(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	base := 10

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	} else if strings.ContainsAny(s, "abcdefABCDEF") {
		base = 16
	}

	v, err := strconv.ParseUint(s, base, 32)

	if err != nil {
		return 0, fmt.Errorf("cannot parse '%s' as uint32", s)
	}

	return uint32(v), nil
}

// parseIVRange reads "31", "20-31" or "" (any) into an inclusive range.
func parseIVRange(s string) (uint8, uint8, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return 0, 31, nil
	}

	lo, hi, found := strings.Cut(s, "-")
	if !found {
		hi = lo
	}

	minIV, err := strconv.ParseUint(strings.TrimSpace(lo), 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("cannot parse iv range '%s'", s)
	}

	maxIV, err := strconv.ParseUint(strings.TrimSpace(hi), 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("cannot parse iv range '%s'", s)
	}

	if minIV > maxIV || maxIV > 31 {
		return 0, 0, fmt.Errorf("iv range '%s' must be within 0-31", s)
	}

	return uint8(minIV), uint8(maxIV), nil
}
