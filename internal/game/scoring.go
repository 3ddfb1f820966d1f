package game

// ScoreBreakdown itemizes one pod placement for the event feed and for
// tests. Total already includes the level multiplier.
type ScoreBreakdown struct {
	Base        int
	Affinity    int
	Headroom    int
	Balance     int
	Constraints int
	Level       int
	Total       int
}

// scorePlacement prices a successful pod placement. Node state is read
// after the pod was consumed; constraintHits was counted against the
// pre-placement pod lists.
func scorePlacement(rules Rules, nodes []*Node, n *Node, p *Piece, constraintHits, level int) ScoreBreakdown {
	sb := ScoreBreakdown{Base: rules.BaseScore, Level: level}
	if p.Kind.PreferredTag != "" && p.Kind.PreferredTag == n.Tag {
		sb.Affinity = rules.AffinityBonus
	}
	maxU, minU, avgU := utilizationSpread(nodes)
	if maxU < rules.HeadroomCutoff {
		sb.Headroom = rules.HeadroomBonus
	}
	if avgU > rules.BalanceMinAvg && maxU-minU < rules.BalanceSpread {
		sb.Balance = rules.BalanceBonus
	}
	sb.Constraints = constraintHits * rules.ConstraintBonus
	sb.Total = (sb.Base + sb.Affinity + sb.Headroom + sb.Balance + sb.Constraints) * level
	return sb
}

// utilizationSpread returns the max, min and mean node utilization.
func utilizationSpread(nodes []*Node) (maxU, minU, avgU float64) {
	if len(nodes) == 0 {
		return 0, 0, 0
	}
	maxU = nodes[0].Utilization()
	minU = maxU
	sum := 0.0
	for _, n := range nodes {
		u := n.Utilization()
		if u > maxU {
			maxU = u
		}
		if u < minU {
			minU = u
		}
		sum += u
	}
	return maxU, minU, sum / float64(len(nodes))
}

// cpuVariance is the population variance of the nodes' cpu usage ratios.
func cpuVariance(nodes []*Node) float64 {
	if len(nodes) == 0 {
		return 0
	}
	sum := 0.0
	for _, n := range nodes {
		sum += n.CPURatio()
	}
	mean := sum / float64(len(nodes))
	v := 0.0
	for _, n := range nodes {
		d := n.CPURatio() - mean
		v += d * d
	}
	return v / float64(len(nodes))
}
