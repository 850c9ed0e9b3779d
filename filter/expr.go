package filter

import (
	"fmt"
	"maps"
	"math"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/twelvedata/twelvedata"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Zero bar fields give the checker their types, so unknown names and
	// non-boolean results fail here instead of at run time.
	program, err := expr.Compile(expression,
		expr.Env(newBarEnv(twelvedata.Bar{}).environment(c.helperFuncs)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Position:   -1,
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate evaluates the filter against a bar
func (f *exprFilter) Evaluate(bar twelvedata.Bar) bool {
	ok, err := f.Match(bar)
	return err == nil && ok
}

// Match evaluates the filter against a bar and reports run time failures
func (f *exprFilter) Match(bar twelvedata.Bar) (bool, error) {
	env := newBarEnv(bar)
	result, err := expr.Run(f.program, env.environment(f.helpers))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Datetime:   bar.Datetime,
			Time:       env.Time,
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			Datetime:   bar.Datetime,
			Time:       env.Time,
			Reason:     fmt.Sprintf("expression returned %T, not bool", result),
		}
	}
	return matched, nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// Date helpers
	funcs["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	funcs["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	funcs["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	funcs["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	funcs["parseDate"] = func(s string) time.Time {
		t, _ := twelvedata.Bar{Datetime: s}.Time()
		return t
	}
	funcs["now"] = time.Now

	// Numeric helpers
	funcs["between"] = func(v, lo, hi float64) bool {
		return v >= lo && v <= hi
	}
	funcs["pct"] = func(from, to float64) float64 {
		if from == 0 {
			return math.NaN()
		}
		return (to - from) / from * 100
	}

	return funcs
}

// number returns NaN for absent or unparseable fields so comparisons fail
func number(n twelvedata.Number) float64 {
	f, err := n.Float64()
	if err != nil {
		return math.NaN()
	}
	return f
}

// barEnv holds the variables a filter expression sees for one bar
type barEnv struct {
	Datetime      string
	Time          time.Time
	Open          float64
	High          float64
	Low           float64
	Close         float64
	Volume        float64
	Change        float64
	ChangePercent float64
	Range         float64
}

func newBarEnv(bar twelvedata.Bar) barEnv {
	open, high, low, closePrice := number(bar.Open), number(bar.High), number(bar.Low), number(bar.Close)
	ts, _ := bar.Time()

	return barEnv{
		Datetime:      bar.Datetime,
		Time:          ts,
		Open:          open,
		High:          high,
		Low:           low,
		Close:         closePrice,
		Volume:        number(bar.Volume),
		Change:        closePrice - open,
		ChangePercent: (closePrice - open) / open * 100,
		Range:         high - low,
	}
}

// environment binds the bar variables next to the helper functions
func (e barEnv) environment(helpers map[string]any) map[string]any {
	env := make(map[string]any, len(helpers)+10)
	maps.Copy(env, helpers)

	env["Datetime"] = e.Datetime
	env["Time"] = e.Time
	env["Open"] = e.Open
	env["High"] = e.High
	env["Low"] = e.Low
	env["Close"] = e.Close
	env["Volume"] = e.Volume
	env["Change"] = e.Change
	env["ChangePercent"] = e.ChangePercent
	env["Range"] = e.Range

	return env
}
