package game

import (
	"fmt"
	"math/rand"
	"strings"
)

// ConstraintKind enumerates the rotating placement policies.
type ConstraintKind int

const (
	ConstraintResourceLimit ConstraintKind = iota
	ConstraintAntiAffinity
	ConstraintNodeSelector

	numConstraintKinds = 3
)

// Constraint is one active policy. Role parameterizes anti-affinity.
type Constraint struct {
	Kind ConstraintKind
	Role Role
}

func (c Constraint) String() string {
	switch c.Kind {
	case ConstraintResourceLimit:
		return "resource-limit"
	case ConstraintAntiAffinity:
		return fmt.Sprintf("anti-affinity(%s)", c.Role)
	case ConstraintNodeSelector:
		return "node-selector"
	default:
		return "unknown"
	}
}

// Satisfied reports whether placing pod p on node n complies with the
// policy. Anti-affinity reads the node's pod list before the placement
// is booked: a node already hosting more than two pods of the
// constrained role fails it. Node-selector is an always-satisfied stub.
func (c Constraint) Satisfied(p *Piece, n *Node, rules Rules) bool {
	switch c.Kind {
	case ConstraintResourceLimit:
		return p.Amount.CPU <= rules.LimitCPU && p.Amount.Memory <= rules.LimitMemory
	case ConstraintAntiAffinity:
		if p.Kind.Role != c.Role {
			return true
		}
		return n.PodsOfRole(c.Role) <= 2
	default:
		return true
	}
}

// CountSatisfied counts active policies the pod complies with on the
// target node. The result feeds the placement score; violations never
// block a placement.
func CountSatisfied(cs []Constraint, p *Piece, n *Node, rules Rules) int {
	count := 0
	for _, c := range cs {
		if c.Satisfied(p, n, rules) {
			count++
		}
	}
	return count
}

// rollConstraints draws a fresh active set of zero to two distinct
// kinds. Anti-affinity picks a random role from the catalog.
func rollConstraints(cat *Catalog, rng *rand.Rand) []Constraint {
	n := rng.Intn(numConstraintKinds)
	if n == 0 {
		return nil
	}
	out := make([]Constraint, 0, n)
	for _, k := range rng.Perm(numConstraintKinds)[:n] {
		c := Constraint{Kind: ConstraintKind(k)}
		if c.Kind == ConstraintAntiAffinity {
			c.Role = cat.Pods[rng.Intn(len(cat.Pods))].Role
		}
		out = append(out, c)
	}
	return out
}

func describeConstraints(cs []Constraint) string {
	if len(cs) == 0 {
		return "none"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
