// Package ruleset loads reshape rules declared in YAML or JSON files.
//
// A rule file looks like:
//
//	options:
//	  unset_original: true
//	  strict: false
//	rules:
//	  - pattern: '\.keywords$'
//	    to: meta.keywords
//	  - pattern: '(?<!sidebar.*)\.title$'
//	    syntax: backtracking
//	    rename: .name
//	  - pattern: '\.authors$'
//	    to: article.header.author
//	    select: '$[0]'
//	  - pattern: '\.advertisement\w+$'
//	    to: article.ads
//	    merge: append
//
// Exactly one of "to" (a literal destination) and "rename" (a replacement
// applied to the matched path, with $1 style group references) is required.
// "data" replaces the matched value with a constant and "select" with the
// first result of a JSONPath query against it. "merge" combines the value
// with what is already stored at the destination.
package ruleset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/theory/jsonpath"

	"github.com/sanity-io/reshape"
	"github.com/sanity-io/reshape/internal/tree"
)

// ErrInvalidRule indicates a rule file that cannot be compiled.
var ErrInvalidRule = errors.New("invalid rule")

// Merge strategies.
const (
	MergeAppend       = "append"
	MergeAppendUnique = "append_unique"
	MergeAssign       = "assign"
	MergeFields       = "merge"
	MergeCount        = "count"
)

// Pattern syntaxes.
const (
	SyntaxRE2          = "re2"
	SyntaxBacktracking = "backtracking"
)

type fileSpec struct {
	Options optionsSpec `yaml:"options"`
	Rules   []ruleSpec  `yaml:"rules"`
}

type optionsSpec struct {
	Clone         *bool `yaml:"clone"`
	UnsetOriginal *bool `yaml:"unset_original"`
	Strict        *bool `yaml:"strict"`
}

type ruleSpec struct {
	Pattern string      `yaml:"pattern"`
	Syntax  string      `yaml:"syntax"`
	To      string      `yaml:"to"`
	Rename  string      `yaml:"rename"`
	Data    interface{} `yaml:"data"`
	Select  string      `yaml:"select"`
	All     bool        `yaml:"all"`
	Merge   string      `yaml:"merge"`
	Key     string      `yaml:"key"`
}

// presence records which rules declare a data field, since a null value and
// a missing field decode the same way.
type presence struct {
	Rules []map[string]interface{} `yaml:"rules"`
}

type replacer interface {
	reshape.Pattern
	ReplaceAllString(src, repl string) string
}

type rule struct {
	pattern  replacer
	to       string
	rename   string
	hasData  bool
	data     interface{}
	selector *jsonpath.Path
	all      bool
	merge    string
	key      string
}

// Set is a compiled rule file.
type Set struct {
	options reshape.Options
	rules   reshape.Rules
}

// Load reads and compiles a rule file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse compiles a rule file.
func Parse(data []byte) (*Set, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: failed to decode rules: %v", ErrInvalidRule, err)
	}

	var fields presence
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: failed to decode rules: %v", ErrInvalidRule, err)
	}

	set := &Set{
		options: spec.Options.apply(reshape.DefaultOptions),
		rules:   make(reshape.Rules, 0, len(spec.Rules)),
	}

	for idx, rs := range spec.Rules {
		hasData := false
		if idx < len(fields.Rules) {
			_, hasData = fields.Rules[idx]["data"]
		}

		r, err := compile(rs, hasData)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", ErrInvalidRule, idx, err)
		}

		set.rules = append(set.rules, reshape.Rule{
			Pattern:   r.pattern,
			Transform: r.transform,
		})
	}

	return set, nil
}

// Options returns the options declared by the rule file, on top of
// reshape.DefaultOptions.
func (s *Set) Options() reshape.Options {
	return s.options
}

// Rules returns the compiled rules in declaration order.
func (s *Set) Rules() reshape.Rules {
	return s.rules
}

// Apply reshapes doc with the declared options.
func (s *Set) Apply(ctx context.Context, doc interface{}) (interface{}, error) {
	return s.options.ReshapeAsync(ctx, doc, s.rules.Async())
}

func (spec optionsSpec) apply(options reshape.Options) reshape.Options {
	if spec.Clone != nil {
		options = options.WithClone(*spec.Clone)
	}
	if spec.UnsetOriginal != nil {
		options = options.WithUnsetOriginal(*spec.UnsetOriginal)
	}
	if spec.Strict != nil {
		options = options.WithStrict(*spec.Strict)
	}
	return options
}

func compile(rs ruleSpec, hasData bool) (*rule, error) {
	if rs.Pattern == "" {
		return nil, errors.New(`"pattern" is required`)
	}

	r := &rule{
		to:      rs.To,
		rename:  rs.Rename,
		hasData: hasData,
		data:    rs.Data,
		all:     rs.All,
		merge:   rs.Merge,
		key:     rs.Key,
	}

	switch rs.Syntax {
	case "", SyntaxRE2:
		re, err := regexp.Compile(rs.Pattern)
		if err != nil {
			return nil, err
		}
		r.pattern = re
	case SyntaxBacktracking:
		p, err := reshape.Backtracking(rs.Pattern)
		if err != nil {
			return nil, err
		}
		r.pattern = p
	default:
		return nil, fmt.Errorf("unknown syntax %q", rs.Syntax)
	}

	if (rs.To == "") == (rs.Rename == "") {
		return nil, errors.New(`exactly one of "to" and "rename" is required`)
	}

	if rs.Select != "" {
		if hasData {
			return nil, errors.New(`"data" and "select" are mutually exclusive`)
		}
		selector, err := jsonpath.Parse(rs.Select)
		if err != nil {
			return nil, fmt.Errorf("invalid select %q: %v", rs.Select, err)
		}
		r.selector = selector
	} else if rs.All {
		return nil, errors.New(`"all" requires "select"`)
	}

	switch rs.Merge {
	case "", MergeAppend, MergeAppendUnique, MergeFields, MergeCount:
		if rs.Key != "" {
			return nil, fmt.Errorf(`"key" is only valid with merge %q`, MergeAssign)
		}
	case MergeAssign:
		if rs.Key == "" {
			return nil, fmt.Errorf(`merge %q requires "key"`, MergeAssign)
		}
	default:
		return nil, fmt.Errorf("unknown merge %q", rs.Merge)
	}

	return r, nil
}

func (r *rule) transform(path string, value interface{}) (*reshape.Result, error) {
	dest := r.to
	if r.rename != "" {
		dest = r.pattern.ReplaceAllString(path, r.rename)
	}

	// data stays nil when the matched value is kept as is. merged is the
	// value handed to the merge strategy.
	var data interface{}
	merged := value

	switch {
	case r.hasData:
		merged = tree.Clone(r.data)
		data = orNull(merged)
	case r.selector != nil:
		nodes := r.selector.Select(value)
		if len(nodes) == 0 {
			return nil, nil
		}
		if r.all {
			merged = []interface{}(nodes)
		} else {
			merged = nodes[0]
		}
		data = orNull(merged)
	}

	result := &reshape.Result{Path: dest, Data: data}

	if r.merge == "" {
		return result, nil
	}

	switch r.merge {
	case MergeAppend:
		result.OnSet = reshape.Append(merged)
	case MergeAppendUnique:
		result.OnSet = reshape.AppendUnique(merged)
	case MergeAssign:
		result.OnSet = reshape.Assign(r.key, merged)
	case MergeFields:
		fields, ok := merged.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("merge %q needs an object at %s, got %T", MergeFields, path, merged)
		}
		result.OnSet = reshape.MergeFields(fields)
	case MergeCount:
		result.OnSet = reshape.Count()
	}

	return result, nil
}

func orNull(value interface{}) interface{} {
	if value == nil {
		return reshape.Null
	}
	return value
}
