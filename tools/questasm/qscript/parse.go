package qscript

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// stripComments removes // and /* */ comments from src and returns its
// lines. Block comments may span lines; the line count is preserved so
// errors can name source lines. Comment markers inside string literals
// are left alone.
func stripComments(src string) []string {
	var lines []string
	var cur strings.Builder
	inString, inBlock := false, false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\n':
			lines = append(lines, cur.String())
			cur.Reset()
			inString = false
		case inBlock:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				inBlock = false
				i++
				cur.WriteByte(' ')
			}
		case inString:
			cur.WriteByte(c)
			if c == '\\' && i+1 < len(src) && src[i+1] != '\n' {
				i++
				cur.WriteByte(src[i])
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
			cur.WriteByte(c)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i+1 < len(src) && src[i+1] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			inBlock = true
			i++
		default:
			cur.WriteByte(c)
		}
	}
	return append(lines, cur.String())
}

// splitArgs splits an argument list at top-level commas.
func splitArgs(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []string
	depth, start := 0, 0
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == ',' && depth == 0:
			out = append(out, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if inString {
		return nil, fmt.Errorf("unterminated string in %q", s)
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced brackets in %q", s)
	}
	out = append(out, strings.TrimSpace(s[start:]))
	for _, a := range out {
		if a == "" {
			return nil, fmt.Errorf("empty argument in %q", s)
		}
	}
	return out, nil
}

// splitSet splits a parenthesized list such as "(r1, r2)".
func splitSet(s string) ([]string, error) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("expected parenthesized list, got %q", s)
	}
	return splitArgs(s[1 : len(s)-1])
}

var (
	labelDeclRE = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(?:@([0-9]+))?:$`)
	labelNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	// .label NAME[@INDEX] OFFSET declares a slot that does not point into the code.
	outsideLabelRE = regexp.MustCompile(`^(?i:\.label)\s+([A-Za-z_][A-Za-z0-9_]*)(?:@([0-9]+))?\s+(\S+)$`)
	regRE       = regexp.MustCompile(`^r([0-9]+)$`)
	regRangeRE  = regexp.MustCompile(`^r([0-9]+)-r([0-9]+)$`)
	regIndRE    = regexp.MustCompile(`^regs\[r([0-9]+)\]$`)
)

// isLabelName reports whether s can name a label. Register names are
// reserved.
func isLabelName(s string) bool {
	return labelNameRE.MatchString(s) && !regRE.MatchString(s)
}

// parseReg parses "rN".
func parseReg(s string) (uint32, bool) {
	m := regRE.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseUint(m[1], 10, 32)
	return uint32(n), err == nil
}

// parseRegRange parses "rA-rB" into its first register and length.
func parseRegRange(s string) (first uint32, count int, ok bool) {
	m := regRangeRE.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	a, err1 := strconv.ParseUint(m[1], 10, 32)
	b, err2 := strconv.ParseUint(m[2], 10, 32)
	if err1 != nil || err2 != nil || b < a {
		return 0, 0, false
	}
	return uint32(a), int(b-a) + 1, true
}

// isIntLiteral reports whether s looks like an integer literal.
func isIntLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// parseInt parses a decimal, 0x-prefixed hex or negative decimal integer
// that must fit in bits bits, signed or unsigned. The result is the value's
// two's complement truncated to bits.
func parseInt(s string, bits int) (uint32, error) {
	neg := strings.HasPrefix(s, "-")
	t := strings.TrimPrefix(s, "-")
	var u uint64
	var err error
	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X") {
		u, err = strconv.ParseUint(t[2:], 16, 64)
	} else {
		u, err = strconv.ParseUint(t, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	limit := uint64(1) << bits
	if neg {
		if u > limit/2 {
			return 0, fmt.Errorf("integer %s does not fit in %d bits", s, bits)
		}
		return uint32((limit - u) & (limit - 1)), nil
	}
	if u >= limit {
		return 0, fmt.Errorf("integer %s does not fit in %d bits", s, bits)
	}
	return uint32(u), nil
}

// parseFloat parses a decimal float, or raw bits written as 0xXXXXXXXX.
func parseFloat(s string) (uint32, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return parseInt(s, 32)
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q", s)
	}
	return math.Float32bits(float32(f)), nil
}
