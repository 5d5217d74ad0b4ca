// Package reshape relocates, renames, merges and recomputes values of a JSON
// document according to an ordered list of rules.
//
// Every rule pairs a Pattern with a Transform. The paths of the source
// document are enumerated once (see Paths), and each rule is then tested
// against that snapshot in order. For every matching path the transform
// decides where the value goes, and the engine writes it into the working
// document, which already contains the writes of earlier rules.
package reshape

import (
	"context"

	"github.com/sanity-io/reshape/internal/tree"
)

// Reshape applies the rules to source using the default options.
func Reshape(source interface{}, rules Rules) (interface{}, error) {
	return DefaultOptions.Reshape(source, rules)
}

// ReshapeAsync applies the rules to source using the default options.
func ReshapeAsync(ctx context.Context, source interface{}, rules AsyncRules) (interface{}, error) {
	return DefaultOptions.ReshapeAsync(ctx, source, rules)
}

// Reshape applies the rules to source. It always fails with a *NoMatchError
// when a rule matches nothing, regardless of WithStrict.
func (options Options) Reshape(source interface{}, rules Rules) (interface{}, error) {
	r := reshaper{
		options: options,
		strict:  true,
	}
	return r.run(context.Background(), source, rules.Async())
}

// ReshapeAsync applies the rules to source, passing ctx to every transform.
// Transforms are called one at a time in rule and path order.
func (options Options) ReshapeAsync(ctx context.Context, source interface{}, rules AsyncRules) (interface{}, error) {
	r := reshaper{
		options: options,
		strict:  options.Strict(),
	}
	return r.run(ctx, source, rules)
}

type indexEntry struct {
	path string
	segs []string
}

// indexFor enumerates the paths of doc once, before any rule runs. Rules
// are matched against this snapshot, never against paths they created.
func indexFor(doc interface{}) ([]indexEntry, error) {
	paths := Paths(doc)
	index := make([]indexEntry, len(paths))
	for i, path := range paths {
		segs, err := tree.Parse(path)
		if err != nil {
			return nil, err
		}
		index[i] = indexEntry{path: path, segs: segs}
	}
	return index, nil
}

type reshaper struct {
	options Options
	strict  bool
	working interface{}
}

func (r *reshaper) run(ctx context.Context, source interface{}, rules AsyncRules) (interface{}, error) {
	if r.options.Clone() {
		r.working = tree.Clone(source)
	} else {
		r.working = source
	}

	index, err := indexFor(r.working)
	if err != nil {
		return nil, err
	}

	for idx, rule := range rules {
		matched := false

		for _, entry := range index {
			if !rule.Pattern.MatchString(entry.path) {
				continue
			}

			ok, err := r.apply(ctx, idx, rule, entry)
			if err != nil {
				return nil, err
			}

			matched = matched || ok
		}

		if !matched {
			if r.options.reporter != nil {
				r.options.reporter.Unmatched(idx, rule.Pattern.String())
			}
			if r.strict {
				return nil, &NoMatchError{Rule: idx, Pattern: rule.Pattern.String()}
			}
		}
	}

	return r.working, nil
}

// apply runs the transform of a rule for one matched path and reports
// whether a result was written.
func (r *reshaper) apply(ctx context.Context, idx int, rule AsyncRule, entry indexEntry) (bool, error) {
	path, segs := entry.path, entry.segs

	current, _ := tree.Get(r.working, segs)

	result, err := rule.Transform(ctx, path, current)
	if err != nil {
		return false, err
	}

	if result == nil {
		if r.options.reporter != nil {
			r.options.reporter.Skipped(idx, path)
		}
		return false, nil
	}

	invalid := func(reason string, err error) error {
		return &ValidationError{
			Rule:        idx,
			Pattern:     rule.Pattern.String(),
			Path:        path,
			Destination: result.Path,
			Reason:      reason,
			Err:         err,
		}
	}

	if result.Path == "" {
		return false, invalid(`"path" must be specified on the transform result`, nil)
	}

	dest, err := tree.Parse(result.Path)
	if err != nil {
		return false, invalid(err.Error(), err)
	}

	if r.options.UnsetOriginal() {
		tree.Unset(r.working, segs)
	}

	data := result.Data
	if data == nil {
		data = current
	}

	if result.OnSet != nil {
		existing, _ := tree.Get(r.working, dest)
		data, err = result.OnSet(existing)
		if err != nil {
			return false, err
		}
	}

	if _, ok := data.(null); ok {
		data = nil
	}

	r.working, err = tree.Set(r.working, dest, data)
	if err != nil {
		return false, invalid(err.Error(), err)
	}

	if r.options.reporter != nil {
		r.options.reporter.Applied(idx, path, result.Path)
	}

	return true, nil
}
