package reshape

import "context"

// Pattern is matched against every path of the source document. A pattern
// matches when it matches any part of the path. *regexp.Regexp satisfies it.
type Pattern interface {
	MatchString(s string) bool
	String() string
}

// Result tells the engine where a matched value goes.
type Result struct {
	// Path is the destination of the value. It is required.
	Path string
	// Data replaces the matched value. When nil, the matched value itself is
	// written. Use Null to write an explicit null.
	Data interface{}
	// OnSet receives the value currently stored at Path and returns the value
	// to write there. It takes precedence over Data.
	OnSet OnSetFunc
}

// OnSetFunc merges a new value into whatever already exists at a destination.
type OnSetFunc func(existing interface{}) (interface{}, error)

type null struct{}

// Null can be used as Result.Data to write a JSON null.
var Null interface{} = null{}

// To returns a result which moves the matched value to path.
func To(path string) *Result {
	return &Result{Path: path}
}

// Transform is called for every path matched by a rule. Returning a nil
// result skips the path.
type Transform func(path string, value interface{}) (*Result, error)

// AsyncTransform is a Transform which receives the context of the
// ReshapeAsync call.
type AsyncTransform func(ctx context.Context, path string, value interface{}) (*Result, error)

// Rule pairs a Pattern with the Transform applied to every path it matches.
type Rule struct {
	Pattern   Pattern
	Transform Transform
}

// AsyncRule is a Rule whose Transform receives the call's context.
type AsyncRule struct {
	Pattern   Pattern
	Transform AsyncTransform
}

// Rules are applied in order.
type Rules []Rule

// AsyncRules are applied in order.
type AsyncRules []AsyncRule

// Async converts the rules for use with ReshapeAsync.
func (rules Rules) Async() AsyncRules {
	result := make(AsyncRules, len(rules))
	for i, rule := range rules {
		transform := rule.Transform
		result[i] = AsyncRule{
			Pattern: rule.Pattern,
			Transform: func(_ context.Context, path string, value interface{}) (*Result, error) {
				return transform(path, value)
			},
		}
	}
	return result
}
