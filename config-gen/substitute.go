package main

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const delimiter = '$'

// Substitute 用 table 中的值替换 $name 和 ${name} 占位符。
// $$ 输出 $，未知或格式错误的占位符返回错误。
func Substitute(text string, table Substitutions) (string, error) {
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		j := strings.IndexByte(text[i:], delimiter)
		if j < 0 {
			b.WriteString(text[i:])
			break
		}
		b.WriteString(text[i : i+j])
		start := i + j
		rest := text[start+1:]

		switch {
		case strings.HasPrefix(rest, "$"):
			b.WriteByte(delimiter)
			i = start + 2

		case strings.HasPrefix(rest, "{"):
			n := identifierLen(rest[1:])
			if n == 0 || len(rest) <= n+1 || rest[n+1] != '}' {
				return "", invalidPlaceholder(text, start)
			}
			name := rest[1 : n+1]
			value, ok := table[name]
			if !ok {
				return "", unresolvedPlaceholder(text, start, name)
			}
			b.WriteString(value)
			i = start + n + 3

		default:
			n := identifierLen(rest)
			if n == 0 {
				return "", invalidPlaceholder(text, start)
			}
			name := rest[:n]
			value, ok := table[name]
			if !ok {
				return "", unresolvedPlaceholder(text, start, name)
			}
			b.WriteString(value)
			i = start + n + 1
		}
	}

	return b.String(), nil
}

// identifierLen s 开头标识符的长度，没有则为 0
func identifierLen(s string) int {
	for n := 0; n < len(s); n++ {
		c := s[n]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && n > 0:
		default:
			return n
		}
	}
	return len(s)
}

// position offset 所在的行号和列号（从 1 开始，按字符计）
func position(text string, offset int) (int, int) {
	before := text[:offset]
	line := strings.Count(before, "\n") + 1
	col := utf8.RuneCountInString(before[strings.LastIndexByte(before, '\n')+1:]) + 1
	return line, col
}

func invalidPlaceholder(text string, offset int) error {
	line, col := position(text, offset)
	return fmt.Errorf("%w: 第 %d 行第 %d 列", ErrInvalidPlaceholder, line, col)
}

func unresolvedPlaceholder(text string, offset int, name string) error {
	line, col := position(text, offset)
	return fmt.Errorf("%w %q: 第 %d 行第 %d 列", ErrUnresolvedPlaceholder, name, line, col)
}
