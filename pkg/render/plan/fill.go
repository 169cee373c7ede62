package plan

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphsvg/pkg/attr"
	"github.com/matzehuels/graphsvg/pkg/color"
	"github.com/matzehuels/graphsvg/pkg/errors"
	"github.com/matzehuels/graphsvg/pkg/matrix"
)

// fillRule returns the fill of node i, or false to pass to the next rule.
type fillRule func(i int) (string, bool, error)

// nodeFills holds the inputs of node color resolution for one node set.
type nodeFills struct {
	palette    []string
	labels     attr.Attribute[int]
	scores     attr.Attribute[float64]
	membership mat.Matrix
	fallback   string
	// suffix distinguishes row and column attributes in error messages.
	suffix string
}

// resolve colors n nodes. Rules are tried in order: labels, scores,
// membership, then the constant fallback.
func (f nodeFills) resolve(n int) ([]string, error) {
	if err := color.Validate("color"+f.suffix, f.fallback); err != nil {
		return nil, err
	}

	builders := []func(int) (fillRule, error){
		f.labelRule,
		f.scoreRule,
		f.membershipRule,
	}
	var rules []fillRule
	for _, build := range builders {
		rule, err := build(n)
		if err != nil {
			return nil, err
		}
		if rule != nil {
			rules = append(rules, rule)
		}
	}

	fills := make([]string, n)
	for i := range fills {
		fills[i] = f.fallback
		for _, rule := range rules {
			c, ok, err := rule(i)
			if err != nil {
				return nil, err
			}
			if ok {
				fills[i] = c
				break
			}
		}
	}
	return fills, nil
}

func (f nodeFills) labelRule(n int) (fillRule, error) {
	if f.labels.IsAbsent() {
		return nil, nil
	}
	labels, set, err := f.labels.Resolve("labels"+f.suffix, n, 0)
	if err != nil {
		return nil, err
	}
	return func(i int) (string, bool, error) {
		if !set[i] {
			return "", false, nil
		}
		return color.ForLabel(f.palette, labels[i]), true, nil
	}, nil
}

func (f nodeFills) scoreRule(n int) (fillRule, error) {
	if f.scores.IsAbsent() {
		return nil, nil
	}
	scores, set, err := f.scores.Resolve("scores"+f.suffix, n, 0)
	if err != nil {
		return nil, err
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i, v := range scores {
		if !set[i] {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New(errors.ErrCodeInvalidAttribute, "scores%s: value for node %d is not finite", f.suffix, i)
		}
		lo, hi = min(lo, v), max(hi, v)
	}

	return func(i int) (string, bool, error) {
		if !set[i] {
			return "", false, nil
		}
		t := 0.5
		if hi > lo {
			t = (scores[i] - lo) / (hi - lo)
		}
		return color.Coolwarm(t), true, nil
	}, nil
}

func (f nodeFills) membershipRule(n int) (fillRule, error) {
	m, err := matrix.FromMatrix(f.membership)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "membership%s", f.suffix)
	}
	if m == nil {
		return nil, nil
	}
	rows, k := m.Dims()
	if err := errors.ValidateLength("membership"+f.suffix, rows, n); err != nil {
		return nil, err
	}

	weights := make([]float64, k)
	return func(i int) (string, bool, error) {
		clear(weights)
		cols, w := m.Row(i)
		for e, j := range cols {
			weights[j] = w[e]
		}
		c, ok, err := color.Blend(f.palette, weights)
		if err != nil {
			return "", false, errors.Wrap(errors.ErrCodeInvalidAttribute, err, "membership%s: node %d", f.suffix, i)
		}
		return c, ok, nil
	}, nil
}
