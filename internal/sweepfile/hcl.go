package sweepfile

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/argsweep/internal/space"
)

// hclRoot decodes the top level of a .hcl sweep file.
type hclRoot struct {
	Command   string      `hcl:"command"`
	Strategy  string      `hcl:"strategy"`
	Trials    int         `hcl:"trials,optional"`
	Divisions int         `hcl:"divisions,optional"`
	Repeats   int         `hcl:"repeats,optional"`
	Workers   int         `hcl:"workers,optional"`
	Ranges    []*hclRange `hcl:"range,block"`
}

// hclRange decodes one range block. Min and max stay as expressions so the
// numeric kind (integer vs float) can be inspected through cty rather than
// forced into one Go type.
type hclRange struct {
	Name   string         `hcl:"name,label"`
	Min    hcl.Expression `hcl:"min,optional"`
	Max    hcl.Expression `hcl:"max,optional"`
	Log    bool           `hcl:"log,optional"`
	Values []string       `hcl:"values,optional"`
}

func loadHCL(path string) (*Sweep, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse sweep file %s: %w", path, diags)
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode sweep file %s: %w", path, diags)
	}

	ranges := make([]space.Range, 0, len(root.Ranges))
	for _, rb := range root.Ranges {
		r, err := rb.toRange()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		ranges = append(ranges, r)
	}

	return resolve(path, root.Command, root.Strategy,
		root.Trials, root.Divisions, root.Repeats, root.Workers, ranges)
}

func (rb *hclRange) toRange() (space.Range, error) {
	if len(rb.Values) > 0 {
		if rb.Log {
			return nil, fmt.Errorf("range %q: categorical ranges cannot be log-scaled", rb.Name)
		}
		if exprPresent(rb.Min) || exprPresent(rb.Max) {
			return nil, fmt.Errorf("range %q: values and min/max are mutually exclusive", rb.Name)
		}
		return space.NewCategoricalRange(rb.Name, rb.Values)
	}

	if !exprPresent(rb.Min) || !exprPresent(rb.Max) {
		return nil, fmt.Errorf("range %q: requires either values or both min and max", rb.Name)
	}

	minVal, minInt, err := numberValue(rb.Name, "min", rb.Min)
	if err != nil {
		return nil, err
	}
	maxVal, maxInt, err := numberValue(rb.Name, "max", rb.Max)
	if err != nil {
		return nil, err
	}

	if minInt != nil && maxInt != nil {
		return space.NewIntRange(rb.Name, *minInt, *maxInt, rb.Log)
	}
	return space.NewFloatRange(rb.Name, minVal, maxVal, rb.Log)
}

// exprPresent reports whether an optional expression attribute was set.
func exprPresent(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && !v.IsNull()
}

// numberValue evaluates a bound expression to a float and, when the written
// literal is a whole number, also to an int64.
func numberValue(name, attr string, expr hcl.Expression) (float64, *int64, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, nil, fmt.Errorf("range %q: invalid %s: %w", name, attr, diags)
	}
	if v.Type() != cty.Number {
		return 0, nil, fmt.Errorf("range %q: %s must be a number", name, attr)
	}

	bf := v.AsBigFloat()
	f, _ := bf.Float64()
	if i, acc := bf.Int64(); acc == big.Exact {
		return f, &i, nil
	}
	return f, nil, nil
}
