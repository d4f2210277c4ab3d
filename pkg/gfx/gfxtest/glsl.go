package gfxtest

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	mainRe      = regexp.MustCompile(`\bvoid\s+main\s*\(`)
	attributeRe = regexp.MustCompile(`^\s*(?:layout\s*\([^)]*\)\s*)?(?:in|attribute)\s+\w+\s+(\w+)\s*;`)
	varyingInRe = regexp.MustCompile(`^\s*(?:in|varying)\s+\w+\s+(\w+)\s*;`)
	outputRe    = regexp.MustCompile(`^\s*(?:layout\s*\([^)]*\)\s*)?(?:out|varying)\s+\w+\s+(\w+)\s*;`)
)

// CheckSyntax is a crude stand-in for a GLSL front end. It catches what the
// tests need: a missing main, unbalanced braces or parentheses, and a
// statement left without its terminating semicolon. The returned error
// text imitates a driver info log.
func CheckSyntax(src string) error {
	text := stripPreprocessor(src)
	if !mainRe.MatchString(text) {
		return fmt.Errorf("0:1: error: 'main' : function not defined")
	}

	line := 1
	braces, parens := 0, 0
	var last byte
	var segment strings.Builder
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch ch {
		case '\n':
			line++
		case '(':
			parens++
		case ')':
			parens--
			if parens < 0 {
				return fmt.Errorf("0:%d: error: syntax error, unexpected ')'", line)
			}
		case '{', ';':
			if err := checkStatement(segment.String(), line); err != nil {
				return err
			}
			segment.Reset()
			if ch == '{' {
				braces++
			}
		case '}':
			if last != 0 && last != ';' && last != '{' && last != '}' {
				return fmt.Errorf("0:%d: error: syntax error, unexpected '}', expecting ';'", line)
			}
			braces--
			if braces < 0 {
				return fmt.Errorf("0:%d: error: syntax error, unexpected '}'", line)
			}
			segment.Reset()
		}
		if ch != '{' && ch != '}' && ch != ';' {
			segment.WriteByte(ch)
		}
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			last = ch
		}
	}
	if braces != 0 || parens != 0 {
		return fmt.Errorf("0:%d: error: syntax error, unexpected end of file", line)
	}
	if strings.TrimSpace(segment.String()) != "" {
		return fmt.Errorf("0:%d: error: syntax error, unexpected end of file, expecting ';'", line)
	}
	return nil
}

// checkStatement rejects two assignments in one statement, which is what a
// dropped semicolon between two lines looks like.
func checkStatement(stmt string, line int) error {
	assignments := 0
	for i := 0; i < len(stmt); i++ {
		if stmt[i] != '=' {
			continue
		}
		if i+1 < len(stmt) && stmt[i+1] == '=' {
			i++
			continue
		}
		if i > 0 && strings.IndexByte("=!<>+-*/%&|^", stmt[i-1]) >= 0 {
			continue
		}
		assignments++
	}
	if assignments > 1 {
		return fmt.Errorf("0:%d: error: syntax error, unexpected IDENTIFIER, expecting ';'", line)
	}
	return nil
}

func stripPreprocessor(src string) string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "#") {
			lines[i] = ""
			continue
		}
		if idx := strings.Index(l, "//"); idx >= 0 {
			lines[i] = l[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

// Attributes lists the vertex inputs declared at global scope, in order.
func Attributes(src string) []string { return declarations(src, attributeRe) }

// Varyings lists the inputs of a fragment shader.
func Varyings(src string) []string { return declarations(src, varyingInRe) }

// Outputs lists the outputs of a vertex shader.
func Outputs(src string) []string { return declarations(src, outputRe) }

func declarations(src string, re *regexp.Regexp) []string {
	var names []string
	for _, l := range strings.Split(stripPreprocessor(src), "\n") {
		if m := re.FindStringSubmatch(l); m != nil {
			names = append(names, m[1])
		}
	}
	return names
}
