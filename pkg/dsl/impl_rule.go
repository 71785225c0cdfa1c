/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dsl

import (
	"golang.org/x/exp/slices"

	"github.com/voedger/datafix/pkg/dyn"
)

// Nop returns the identity rule: it matches no shape.
func Nop() RewriteRule { return nopRule{} }

// IfSame returns a rule applying fn at every node whose shape structurally
// equals target. The node shape becomes out.
func IfSame(target, out Type, fn func(dyn.Dynamic) (dyn.Dynamic, error)) RewriteRule {
	return ifSameRule{target: target, out: out, fn: fn}
}

// Seq composes rules in order. At a node each rule observes the shape left
// by the previous one, so later fixes match the already migrated shape.
// Zero rules compose to the identity.
func Seq(rules ...RewriteRule) RewriteRule {
	switch len(rules) {
	case 0:
		return Nop()
	case 1:
		return rules[0]
	}
	return seqRule{rules: slices.Clone(rules)}
}

// OrElse tries a, then b; the first match wins.
func OrElse(a, b RewriteRule) RewriteRule { return orElseRule{a: a, b: b} }

// Optimize returns a rule with the same observable behavior and lower
// application cost. Nested sequences are flattened, identity rules dropped,
// adjacent shape-matching steps whose shapes line up are fused into one
// alternative.
func Optimize(rule RewriteRule) RewriteRule {
	switch r := rule.(type) {
	case seqRule:
		return Seq(fuse(flatten(r.rules))...)
	case orElseRule:
		a, b := Optimize(r.a), Optimize(r.b)
		if _, ok := a.(nopRule); ok {
			return b
		}
		if _, ok := b.(nopRule); ok {
			return a
		}
		return OrElse(a, b)
	}
	return rule
}

type nopRule struct{}

func (nopRule) Rewrite(Type) (Rewrite, bool) { return Rewrite{}, false }

type ifSameRule struct {
	target Type
	out    Type
	fn     func(dyn.Dynamic) (dyn.Dynamic, error)
}

func (r ifSameRule) Rewrite(t Type) (Rewrite, bool) {
	if !t.Equal(r.target) {
		return Rewrite{}, false
	}
	return Rewrite{Type: r.out, Fn: r.fn}, true
}

type seqRule struct{ rules []RewriteRule }

func (r seqRule) Rewrite(t Type) (Rewrite, bool) {
	var fns []func(dyn.Dynamic) (dyn.Dynamic, error)
	ct := t
	for _, rule := range r.rules {
		if rw, ok := rule.Rewrite(ct); ok {
			ct = rw.Type
			fns = append(fns, rw.Fn)
		}
	}
	switch len(fns) {
	case 0:
		return Rewrite{}, false
	case 1:
		return Rewrite{Type: ct, Fn: fns[0]}, true
	}
	return Rewrite{
		Type: ct,
		Fn: func(v dyn.Dynamic) (dyn.Dynamic, error) {
			for _, fn := range fns {
				var err error
				if v, err = fn(v); err != nil {
					return v, err
				}
			}
			return v, nil
		},
	}, true
}

type orElseRule struct{ a, b RewriteRule }

func (r orElseRule) Rewrite(t Type) (Rewrite, bool) {
	if rw, ok := r.a.Rewrite(t); ok {
		return rw, true
	}
	return r.b.Rewrite(t)
}

func flatten(rules []RewriteRule) []RewriteRule {
	out := make([]RewriteRule, 0, len(rules))
	for _, r := range rules {
		switch rr := Optimize(r).(type) {
		case nopRule:
		case seqRule:
			out = append(out, rr.rules...)
		default:
			out = append(out, rr)
		}
	}
	return out
}

// fuse merges an adjacent pair of shape-matching steps a-to-b, b-to-c into one
// alternative matching either entry shape. The pair behaves exactly as
// before: entry at a runs both functions, entry at b runs the second one.
func fuse(rules []RewriteRule) []RewriteRule {
	if len(rules) < 2 {
		return rules
	}
	out := []RewriteRule{rules[0]}
	for _, next := range rules[1:] {
		last, lok := out[len(out)-1].(ifSameRule)
		nf, nok := next.(ifSameRule)
		if lok && nok && last.out.Equal(nf.target) && !last.target.Equal(nf.target) {
			out[len(out)-1] = OrElse(IfSame(last.target, nf.out, composeFns(last.fn, nf.fn)), nf)
			continue
		}
		out = append(out, next)
	}
	return out
}

func composeFns(f, g func(dyn.Dynamic) (dyn.Dynamic, error)) func(dyn.Dynamic) (dyn.Dynamic, error) {
	return func(v dyn.Dynamic) (dyn.Dynamic, error) {
		v, err := f(v)
		if err != nil {
			return v, err
		}
		return g(v)
	}
}
