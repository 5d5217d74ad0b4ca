package reshape

// Options configures a reshape call. The zero value is DefaultOptions.
type Options struct {
	skipClone    bool
	keepOriginal bool
	nonStrict    bool
	reporter     Reporter
}

// The default options: work on a clone, unset relocated values and fail on
// rules that match nothing.
var DefaultOptions = Options{}

// WithClone controls whether Reshape works on a deep copy of the source.
// When disabled the source document is modified in place.
func (options Options) WithClone(clone bool) Options {
	options.skipClone = !clone
	return options
}

// WithUnsetOriginal controls whether a matched value is removed from its
// original path before the transform result is written.
func (options Options) WithUnsetOriginal(unset bool) Options {
	options.keepOriginal = !unset
	return options
}

// WithStrict controls whether ReshapeAsync fails on a rule that matched no
// path. Reshape is always strict.
func (options Options) WithStrict(strict bool) Options {
	options.nonStrict = !strict
	return options
}

// WithReporter creates a new option object which reports every applied and
// skipped path to the given reporter.
func (options Options) WithReporter(reporter Reporter) Options {
	options.reporter = reporter
	return options
}

// Clone reports whether the source is deep-copied before rules run.
func (options Options) Clone() bool {
	return !options.skipClone
}

// UnsetOriginal reports whether a matched value is removed from its original
// path before the transform result is written.
func (options Options) UnsetOriginal() bool {
	return !options.keepOriginal
}

// Strict reports whether ReshapeAsync fails on a rule that matched no path.
func (options Options) Strict() bool {
	return !options.nonStrict
}
