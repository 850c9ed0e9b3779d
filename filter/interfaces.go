package filter

import (
	"github.com/s0up4200/twelvedata/twelvedata"
)

// Filter decides whether a bar is kept
type Filter interface {
	// Evaluate reports whether bar matches. Bars that fail to evaluate do not match.
	Evaluate(bar twelvedata.Bar) bool
}

// CompiledFilter is a filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Match evaluates bar and reports evaluation failures
	Match(bar twelvedata.Bar) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}
