package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vk/argsweep/internal/sampler"
	"github.com/vk/argsweep/internal/space"
)

var templateRe = regexp.MustCompile(`\{([^{}]+)\}`)

// rangeSpec is one raw --name RANGE group before type detection.
type rangeSpec struct {
	name   string
	tokens []string
}

// parseRangeArgs groups the trailing arguments into per-parameter specs.
// Every group starts with a --name flag and collects the values that follow
// it, up to the next flag.
func parseRangeArgs(args []string) ([]rangeSpec, error) {
	var specs []rangeSpec
	for _, arg := range args {
		if strings.HasPrefix(arg, "--") {
			name := strings.TrimPrefix(arg, "--")
			if name == "" {
				return nil, fmt.Errorf("empty parameter name in range arguments")
			}
			specs = append(specs, rangeSpec{name: name})
			continue
		}
		if len(specs) == 0 {
			return nil, fmt.Errorf("unexpected argument %q: range values must follow a --name flag", arg)
		}
		specs[len(specs)-1].tokens = append(specs[len(specs)-1].tokens, arg)
	}
	return specs, nil
}

// buildSpace turns the raw specs into a Space ordered by each parameter's
// first appearance in the command template, and checks that templates and
// ranges match one to one.
func buildSpace(command string, strategy sampler.Strategy, specs []rangeSpec) (*space.Space, error) {
	var templated []string
	seen := map[string]bool{}
	for _, m := range templateRe.FindAllStringSubmatch(command, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			templated = append(templated, m[1])
		}
	}

	if strategy == sampler.Repeat {
		if len(specs) > 0 || len(templated) > 0 {
			return nil, fmt.Errorf("repeat takes a plain command with no templates or ranges")
		}
		return space.New(), nil
	}

	byName := map[string]rangeSpec{}
	for _, spec := range specs {
		if _, dup := byName[spec.name]; dup {
			return nil, fmt.Errorf("parameter %q specified more than once", spec.name)
		}
		byName[spec.name] = spec
	}
	for name := range byName {
		if !seen[name] {
			return nil, fmt.Errorf("range given for %q but the command has no {%s} template", name, name)
		}
	}

	sp := space.New()
	for _, name := range templated {
		spec, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("command templates {%s} but no --%s range was given", name, name)
		}
		r, err := parseRange(spec)
		if err != nil {
			return nil, err
		}
		if err := sp.Add(r); err != nil {
			return nil, err
		}
	}
	return sp, nil
}

// parseRange detects the range type from its value tokens. Two integers make
// an integer range, two numbers a float range (a leading "log" token makes
// either log-scaled), and anything else a categorical list.
func parseRange(spec rangeSpec) (space.Range, error) {
	tokens := spec.tokens
	logScaled := false
	if len(tokens) > 0 && tokens[0] == "log" {
		logScaled = true
		tokens = tokens[1:]
	}

	if len(tokens) == 2 {
		if lo, hi, ok := parseIntPair(tokens[0], tokens[1]); ok {
			return space.NewIntRange(spec.name, lo, hi, logScaled)
		}
		if lo, hi, ok := parseFloatPair(tokens[0], tokens[1]); ok {
			return space.NewFloatRange(spec.name, lo, hi, logScaled)
		}
	}

	if logScaled {
		return nil, fmt.Errorf("parameter %q: log ranges need exactly two numeric bounds", spec.name)
	}
	if len(spec.tokens) < 2 {
		return nil, fmt.Errorf("parameter %q: a range needs two numeric bounds or at least two categories", spec.name)
	}
	return space.NewCategoricalRange(spec.name, spec.tokens)
}

func parseIntPair(a, b string) (lo, hi int64, ok bool) {
	x, errA := strconv.ParseInt(a, 10, 64)
	y, errB := strconv.ParseInt(b, 10, 64)
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	if x > y {
		x, y = y, x
	}
	return x, y, true
}

func parseFloatPair(a, b string) (lo, hi float64, ok bool) {
	x, errA := strconv.ParseFloat(a, 64)
	y, errB := strconv.ParseFloat(b, 64)
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	if x > y {
		x, y = y, x
	}
	return x, y, true
}
