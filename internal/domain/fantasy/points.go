package fantasy

import "github.com/shopspring/decimal"

// SquadPoints is the ledger result for one squad.
type SquadPoints struct {
	TotalPoints       float64
	CaptainPoints     float64
	ViceCaptainPoints float64
	XFactorPoints     float64
}

// PlayerContribution is the per-player split of the ledger formula.
type PlayerContribution struct {
	PlayerID     string
	Role         SquadRole
	OnBench      bool
	Effective    float64
	Base         float64
	Bonus        float64
	Contribution float64
}

type contribution struct {
	role         SquadRole
	onBench      bool
	effective    decimal.Decimal
	base         decimal.Decimal
	bonus        decimal.Decimal
	contribution decimal.Decimal
}

// ComputeSquadPoints applies the points formula to the main squad and adds
// banked points. Bench entries never contribute.
func ComputeSquadPoints(squad Squad, squadSize int) SquadPoints {
	total := decimal.Zero
	byRole := map[SquadRole]decimal.Decimal{}

	for i, entry := range squad.Players {
		if i >= squadSize {
			break
		}
		c := contributionOf(entry, squad.RoleOf(entry.PlayerID), false)
		total = total.Add(c.contribution)
		if c.role != SquadRoleNone {
			byRole[c.role] = byRole[c.role].Add(c.contribution)
		}
	}

	total = total.Add(decimal.NewFromFloat(squad.BankedPoints))

	return SquadPoints{
		TotalPoints:       total.InexactFloat64(),
		CaptainPoints:     byRole[SquadRoleCaptain].InexactFloat64(),
		ViceCaptainPoints: byRole[SquadRoleViceCaptain].InexactFloat64(),
		XFactorPoints:     byRole[SquadRoleXFactor].InexactFloat64(),
	}
}

// PlayerBreakdown returns one contribution row per squad entry in list order.
func PlayerBreakdown(squad Squad, squadSize int) []PlayerContribution {
	out := make([]PlayerContribution, 0, len(squad.Players))
	for i, entry := range squad.Players {
		onBench := i >= squadSize
		c := contributionOf(entry, squad.RoleOf(entry.PlayerID), onBench)
		out = append(out, PlayerContribution{
			PlayerID:     entry.PlayerID,
			Role:         c.role,
			OnBench:      onBench,
			Effective:    c.effective.InexactFloat64(),
			Base:         c.base.InexactFloat64(),
			Bonus:        c.bonus.InexactFloat64(),
			Contribution: c.contribution.InexactFloat64(),
		})
	}
	return out
}

func contributionOf(entry PlayerEntry, role SquadRole, onBench bool) contribution {
	points := decimal.NewFromFloat(entry.Points)
	joined := decimal.NewFromFloat(entry.PointsAtJoining)
	effective := clampZero(points.Sub(joined))

	c := contribution{role: role, onBench: onBench, effective: effective}
	if onBench {
		return c
	}
	if role == SquadRoleNone {
		c.base = effective
		c.contribution = effective
		return c
	}

	assignedAt := joined
	if entry.PointsWhenRoleAssigned != nil {
		assignedAt = decimal.NewFromFloat(*entry.PointsWhenRoleAssigned)
	}
	c.base = clampZero(assignedAt.Sub(joined))
	c.bonus = clampZero(points.Sub(assignedAt))
	c.contribution = c.base.Add(c.bonus.Mul(decimal.NewFromFloat(role.Multiplier())))
	return c
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
