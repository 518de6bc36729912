package main

import (
	"runtime/debug"
	"testing"
)

func TestParseCount(t *testing.T) {
	var n uint64
	var err error

	n, err = parseCount("1000")
	ErrorOnError(t, err, "plain")
	ExpectEqual(t, uint64(1000), n)

	n, err = parseCount("64k")
	ErrorOnError(t, err, "k suffix")
	ExpectEqual(t, uint64(64_000), n)

	n, err = parseCount("2M")
	ErrorOnError(t, err, "M suffix")
	ExpectEqual(t, uint64(2_000_000), n)

	n, err = parseCount(" 4 g ")
	ErrorOnError(t, err, "g suffix with spaces")
	ExpectEqual(t, uint64(4_000_000_000), n)

	n, err = parseCount("0")
	ErrorOnError(t, err, "zero")
	ExpectEqual(t, uint64(0), n)

	_, err = parseCount("")
	ErrorOnNoError(t, err, "empty")

	_, err = parseCount("k")
	ErrorOnNoError(t, err, "suffix only")

	_, err = parseCount("12q")
	ErrorOnNoError(t, err, "unknown suffix")

	_, err = parseCount("-5")
	ErrorOnNoError(t, err, "negative")

	n, err = parseCount("18446744073709551615")
	ErrorOnError(t, err, "max uint64")
	ExpectEqual(t, uint64(18446744073709551615), n)

	_, err = parseCount("18446744073709552k")
	ErrorOnNoError(t, err, "overflows with k")

	_, err = parseCount("18446744074g")
	ErrorOnNoError(t, err, "overflows with g")
}

func TestParseUint32(t *testing.T) {
	var n uint32
	var err error

	n, err = parseUint32("0x12345678")
	ErrorOnError(t, err, "0x hex")
	ExpectEqual(t, uint32(0x12345678), n)

	n, err = parseUint32("0XFFFFFFFF")
	ErrorOnError(t, err, "0X hex")
	ExpectEqual(t, uint32(0xFFFFFFFF), n)

	n, err = parseUint32("5A0E0A1B")
	ErrorOnError(t, err, "bare hex")
	ExpectEqual(t, uint32(0x5A0E0A1B), n)

	n, err = parseUint32("1234")
	ErrorOnError(t, err, "decimal")
	ExpectEqual(t, uint32(1234), n)

	_, err = parseUint32("0x100000000")
	ErrorOnNoError(t, err, "overflow")

	_, err = parseUint32("seed")
	ErrorOnNoError(t, err, "garbage")
}

func TestParseIVRange(t *testing.T) {
	for _, tc := range []struct {
		in     string
		lo, hi uint8
	}{
		{"", 0, 31},
		{"*", 0, 31},
		{"31", 31, 31},
		{"0", 0, 0},
		{"20-31", 20, 31},
		{" 5 - 10 ", 5, 10},
	} {
		lo, hi, err := parseIVRange(tc.in)
		ErrorOnError(t, err, tc.in)
		ExpectEqual(t, tc.lo, lo)
		ExpectEqual(t, tc.hi, hi)
	}

	for _, in := range []string{"32", "10-5", "0-32", "a-b", "-", "1-2-3"} {
		_, _, err := parseIVRange(in)
		ErrorOnNoError(t, err, in)
	}
}

func ExpectEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if expected != actual {
		if testing.Verbose() {
			debug.PrintStack()
		}

		t.Errorf("Expected %v (%T), got %v (%T)", expected, expected, actual, actual)
	}
}

func ErrorOnError(t *testing.T, err error, what string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: unexpected error: %s", what, err)
	}
}

func FatalOnError(t *testing.T, err error, what string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: unexpected error: %s", what, err)
	}
}

func ErrorOnNoError(t *testing.T, err error, what string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error", what)
	}
}
