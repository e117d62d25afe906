// Package overlay runs optional operator-authored CEL rules over each
// account's aggregate activity (SPEC_FULL §4), layering extra suspicion or
// legitimacy signals on top of the fixed detector battery in
// internal/detectors. Unlike that battery, these rules are not fixed by the
// specification — they are config-supplied, which is exactly the use case
// osprey's CEL engine (internal/rules) was built for.
package overlay

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types/ref"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// Engine evaluates a fixed set of compiled CEL rules against per-account
// aggregates. It is built once per analysis run from domain.Config.OverlayRules
// and is read-only afterward, so it needs no locking (unlike osprey's
// engine, which supports concurrent hot-reload from a database).
type Engine struct {
	env   *cel.Env
	rules []compiledRule
}

type compiledRule struct {
	name    string
	delta   float64
	program cel.Program
}

// NewEngine compiles every configured rule up front. A rule that fails to
// compile is skipped rather than aborting the run — an operator typo in one
// overlay rule shouldn't take down the whole analysis.
func NewEngine(rules []domain.OverlayRule) (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("account_id", cel.StringType),
		cel.Variable("in_degree", cel.IntType),
		cel.Variable("out_degree", cel.IntType),
		cel.Variable("degree", cel.IntType),
		cel.Variable("tx_count", cel.IntType),
		cel.Variable("total_volume", cel.DoubleType),
		cel.Variable("mean_amount", cel.DoubleType),
		cel.Variable("counterparty_count", cel.IntType),
		cel.CrossTypeNumericComparisons(true),
	)
	if err != nil {
		return nil, fmt.Errorf("overlay: create CEL environment: %w", err)
	}

	e := &Engine{env: env}
	for _, r := range rules {
		ast, issues := env.Compile(r.Expression)
		if issues != nil && issues.Err() != nil {
			continue
		}
		if ast.OutputType() != cel.BoolType {
			continue
		}
		program, err := env.Program(ast)
		if err != nil {
			continue
		}
		e.rules = append(e.rules, compiledRule{name: r.Name, delta: r.Delta, program: program})
	}
	return e, nil
}

// Evaluate runs every compiled rule against every account in the graph and
// returns the fired signals keyed by account id, in rule-declaration order.
func (e *Engine) Evaluate(g *graph.Graph) map[string][]domain.OverlaySignal {
	out := make(map[string][]domain.OverlaySignal)
	if len(e.rules) == 0 {
		return out
	}

	for _, acct := range g.AllAccounts() {
		activation := accountActivation(g, acct)
		for _, r := range e.rules {
			val, _, err := r.program.Eval(activation)
			if err != nil || !isTruthy(val) {
				continue
			}
			out[acct] = append(out[acct], domain.OverlaySignal{Name: r.name, Delta: r.delta})
		}
	}
	return out
}

func accountActivation(g *graph.Graph, acct string) map[string]any {
	out := g.Outgoing(acct)
	in := g.Incoming(acct)

	var totalVolume float64
	for _, t := range out {
		totalVolume += t.Amount
	}
	for _, t := range in {
		totalVolume += t.Amount
	}

	txCount := len(out) + len(in)
	var meanAmount float64
	if txCount > 0 {
		meanAmount = totalVolume / float64(txCount)
	}

	return map[string]any{
		"account_id":         acct,
		"in_degree":          int64(g.InDegree(acct)),
		"out_degree":         int64(g.OutDegree(acct)),
		"degree":             int64(g.Degree(acct)),
		"tx_count":           int64(txCount),
		"total_volume":       totalVolume,
		"mean_amount":        meanAmount,
		"counterparty_count": int64(len(g.Counterparties(acct))),
	}
}

func isTruthy(val ref.Val) bool {
	b, ok := val.Value().(bool)
	return ok && b
}
