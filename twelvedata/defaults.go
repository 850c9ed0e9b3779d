package twelvedata

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Defaults are the library-level parameters sent with every request unless a
// caller default or an explicit setter overrides them.
type Defaults struct {
	OutputSize int    `default:"30" validate:"gte=1,lte=5000"`
	Timezone   string `default:"Exchange" validate:"required"`
	Order      string `default:"desc" validate:"oneof=asc desc ASC DESC"`
	Prepost    bool   `default:"false"`
	DP         int    `default:"5" validate:"gte=0,lte=11"`
}

var validate = validator.New()

// DefaultDefaults returns outputsize=30, timezone=Exchange, order=desc,
// prepost=false and dp=5.
func DefaultDefaults() Defaults {
	var d Defaults
	defaults.MustSet(&d)
	return d
}

// Validate checks the values against the ranges the API accepts.
func (d Defaults) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid defaults: %w", err)
	}
	return nil
}

// Params converts the defaults to a parameter set.
func (d Defaults) Params() Params {
	p := NewParams()
	p.Set(ParamOutputSize, Int(d.OutputSize))
	p.Set(ParamTimezone, String(d.Timezone))
	p.Set(ParamOrder, String(d.Order))
	p.Set(ParamPrepost, Bool(d.Prepost))
	p.Set(ParamDP, Int(d.DP))
	return p
}
