package fetch

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

const hex = "0123456789abcdef"

type member struct {
	key   string
	value gjson.Result
}

// appendCanonical appends the compact encoding of v to dst.
func appendCanonical(dst []byte, v gjson.Result) []byte {
	switch {
	case v.IsObject():
		return appendObject(dst, v)
	case v.IsArray():
		dst = append(dst, '[')
		first := true
		v.ForEach(func(_, elem gjson.Result) bool {
			if !first {
				dst = append(dst, ',')
			}
			first = false
			dst = appendCanonical(dst, elem)
			return true
		})
		return append(dst, ']')
	}
	switch v.Type {
	case gjson.True:
		return append(dst, "true"...)
	case gjson.False:
		return append(dst, "false"...)
	case gjson.Number:
		return appendNumber(dst, v.Float())
	case gjson.String:
		return appendString(dst, v.Str)
	default:
		return append(dst, "null"...)
	}
}

func appendObject(dst []byte, v gjson.Result) []byte {
	var (
		members []member
		index   = map[string]int{}
	)
	v.ForEach(func(key, value gjson.Result) bool {
		if i, ok := index[key.Str]; ok {
			members[i].value = value
			return true
		}
		index[key.Str] = len(members)
		members = append(members, member{key.Str, value})
		return true
	})

	dst = append(dst, '{')
	for i, m := range members {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendString(dst, m.key)
		dst = append(dst, ':')
		dst = appendCanonical(dst, m.value)
	}
	return append(dst, '}')
}

// appendNumber writes f the way ECMAScript's Number::toString does: plain
// decimal between 1e-6 and 1e21, shortest exponent form outside. Values
// that overflow float64 have no JSON form and become null.
func appendNumber(dst []byte, f float64) []byte {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return append(dst, "null"...)
	}
	if f == 0 {
		return append(dst, '0') // also -0
	}
	format := byte('f')
	if abs := math.Abs(f); abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, format, -1, 64)
	if format == 'e' {
		// e-07 becomes e-7
		n := len(dst)
		if n-start >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}

// appendString quotes s, escaping only what JSON requires.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			if r < 0x20 {
				dst = append(dst, '\\', 'u', '0', '0', hex[r>>4], hex[r&0xf])
				continue
			}
			dst = utf8.AppendRune(dst, r)
		}
	}
	return append(dst, '"')
}
