package parser

import (
	"math"
	"strconv"
	"strings"
)

// decodeInt разбирает текст IntLit в модуль значения. Префиксные формы
// (0x, 0b, 0o) допускают '_' по правилам strconv; десятичные - в любом месте.
func decodeInt(text string) (uint64, bool) {
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X', 'b', 'B', 'o', 'O':
			v, err := strconv.ParseUint(text, 0, 64)
			return v, err == nil
		}
	}
	v, err := strconv.ParseUint(strings.ReplaceAll(text, "_", ""), 10, 64)
	return v, err == nil
}

// signedValue переводит модуль в int64. ok=false при переполнении.
func signedValue(mag uint64, negative bool) (int64, bool) {
	switch {
	case negative && mag == uint64(math.MaxInt64)+1:
		return math.MinInt64, true
	case mag > math.MaxInt64:
		return 0, false
	case negative:
		return -int64(mag), true
	default:
		return int64(mag), true
	}
}
