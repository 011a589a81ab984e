package sweepfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/argsweep/internal/space"
)

// yamlRoot decodes the top level of a .yaml sweep file.
type yamlRoot struct {
	Command   string       `yaml:"command"`
	Strategy  string       `yaml:"strategy"`
	Trials    int          `yaml:"trials"`
	Divisions int          `yaml:"divisions"`
	Repeats   int          `yaml:"repeats"`
	Workers   int          `yaml:"workers"`
	Ranges    []*yamlRange `yaml:"ranges"`
}

// yamlRange decodes one range entry. Min and max stay untyped so integer
// literals keep their kind instead of collapsing to float64.
type yamlRange struct {
	Name   string   `yaml:"name"`
	Min    any      `yaml:"min"`
	Max    any      `yaml:"max"`
	Log    bool     `yaml:"log"`
	Values []string `yaml:"values"`
}

func loadYAML(path string) (*Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep file %s: %w", path, err)
	}

	var root yamlRoot
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse sweep file %s: %w", path, err)
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

func (rb *yamlRange) toRange() (space.Range, error) {
	if rb.Name == "" {
		return nil, fmt.Errorf("every range requires a name")
	}
	if len(rb.Values) > 0 {
		if rb.Log {
			return nil, fmt.Errorf("range %q: categorical ranges cannot be log-scaled", rb.Name)
		}
		if rb.Min != nil || rb.Max != nil {
			return nil, fmt.Errorf("range %q: values and min/max are mutually exclusive", rb.Name)
		}
		return space.NewCategoricalRange(rb.Name, rb.Values)
	}

	if rb.Min == nil || rb.Max == nil {
		return nil, fmt.Errorf("range %q: requires either values or both min and max", rb.Name)
	}

	minVal, minInt, err := yamlNumber(rb.Name, "min", rb.Min)
	if err != nil {
		return nil, err
	}
	maxVal, maxInt, err := yamlNumber(rb.Name, "max", rb.Max)
	if err != nil {
		return nil, err
	}

	if minInt != nil && maxInt != nil {
		return space.NewIntRange(rb.Name, *minInt, *maxInt, rb.Log)
	}
	return space.NewFloatRange(rb.Name, minVal, maxVal, rb.Log)
}

// yamlNumber normalizes the decoder's numeric types: ints stay ints, floats
// stay floats, anything else is rejected.
func yamlNumber(name, attr string, v any) (float64, *int64, error) {
	switch n := v.(type) {
	case int:
		i := int64(n)
		return float64(n), &i, nil
	case int64:
		return float64(n), &n, nil
	case float64:
		return n, nil, nil
	}
	return 0, nil, fmt.Errorf("range %q: %s must be a number, got %T", name, attr, v)
}
