package reshape

import (
	"github.com/dlclark/regexp2"
)

// BacktrackingPattern is a Pattern compiled with a backtracking regular
// expression engine. Unlike the regexp package it supports lookbehind,
// lookahead and backreferences, which makes it possible to reuse patterns
// such as `(?<!sidebar.*)\.title$` written for JavaScript.
type BacktrackingPattern struct {
	re *regexp2.Regexp
}

// Backtracking compiles expr into a BacktrackingPattern.
func Backtracking(expr string) (*BacktrackingPattern, error) {
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, err
	}
	return &BacktrackingPattern{re: re}, nil
}

// MustBacktracking is like Backtracking but panics if expr cannot be parsed.
func MustBacktracking(expr string) *BacktrackingPattern {
	p, err := Backtracking(expr)
	if err != nil {
		panic(`reshape: Backtracking(` + expr + `): ` + err.Error())
	}
	return p
}

// MatchString reports whether s contains a match. A match that exceeds the
// engine's time limit counts as no match.
func (p *BacktrackingPattern) MatchString(s string) bool {
	ok, err := p.re.MatchString(s)
	return err == nil && ok
}

// ReplaceAllString replaces every match in src with repl. Group references
// such as $1 and ${name} are expanded. On failure src is returned unchanged.
func (p *BacktrackingPattern) ReplaceAllString(src, repl string) string {
	out, err := p.re.Replace(src, repl, -1, -1)
	if err != nil {
		return src
	}
	return out
}

func (p *BacktrackingPattern) String() string {
	return p.re.String()
}
