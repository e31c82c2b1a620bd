package domain

import "strings"

// Badge tags awarded by the threshold rules below. CommunityHero sits
// outside the rule set: it is granted by completing a community event.
const (
	BadgeZeroWaste     = "Zero Waste"
	BadgeTransitChamp  = "Transit Champ"
	BadgeLocalShopper  = "Local Shopper"
	BadgeEcoHero       = "Eco Hero"
	BadgeCommunityHero = "Community Hero"
)

// badgeRule is a monotone threshold predicate over a user's full action
// history. Because each rule counts matching actions fresh on every
// evaluation, derivation is idempotent and order-independent.
type badgeRule struct {
	badge     string
	threshold int
	matches   func(EcoAction) bool
}

var badgeRules = []badgeRule{
	{
		badge:     BadgeZeroWaste,
		threshold: 5,
		matches: func(a EcoAction) bool {
			return a.Category == CategoryWaste && a.DisposalMethod == DisposalRecycled
		},
	},
	{
		badge:     BadgeTransitChamp,
		threshold: 5,
		matches: func(a EcoAction) bool {
			return a.Category == CategoryTravel && a.EstimatedSavingsKg > 0
		},
	},
	{
		badge:     BadgeLocalShopper,
		threshold: 3,
		matches: func(a EcoAction) bool {
			return strings.EqualFold(a.Origin, "local")
		},
	},
	{
		badge:     BadgeEcoHero,
		threshold: 10,
		matches:   func(EcoAction) bool { return true },
	},
}

// DeriveBadges returns the union of the existing badge set with every
// badge whose rule is satisfied by actions. Badges are only ever added:
// existing entries keep their order and new awards are appended in fixed
// rule order, so the result is deterministic and duplicate-free.
func DeriveBadges(existing []string, actions []EcoAction) []string {
	out := make([]string, 0, len(existing)+len(badgeRules))
	seen := make(map[string]struct{}, len(existing)+len(badgeRules))
	for _, b := range existing {
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}

	for _, rule := range badgeRules {
		if _, ok := seen[rule.badge]; ok {
			continue
		}
		n := 0
		for _, a := range actions {
			if rule.matches(a) {
				n++
				if n >= rule.threshold {
					break
				}
			}
		}
		if n >= rule.threshold {
			seen[rule.badge] = struct{}{}
			out = append(out, rule.badge)
		}
	}
	return out
}

// NewlyAwarded returns the badges present in after but absent from
// before. Comparison is by membership, so duplicated entries in a
// stored badge list cannot skew the result.
func NewlyAwarded(before, after []string) []string {
	seen := make(map[string]struct{}, len(before))
	for _, b := range before {
		seen[b] = struct{}{}
	}
	var added []string
	for _, b := range after {
		if _, ok := seen[b]; !ok {
			added = append(added, b)
		}
	}
	return added
}

// AddBadge appends badge to the set if not already present.
func AddBadge(existing []string, badge string) []string {
	for _, b := range existing {
		if b == badge {
			return existing
		}
	}
	return append(existing, badge)
}

// ScoreDelta is the incremental eco-score contribution applied when an
// action is created: savings minus cost. The running total is NOT
// clamped, so a user's score can go negative on this path.
func ScoreDelta(a EcoAction) float64 {
	return a.EstimatedSavingsKg - a.CarbonKg
}

// RecomputeScore derives an eco score from scratch over a full action
// history: max(0, sum of savings - sum of carbon). This is the bulk
// recompute formula; it ignores the prior score entirely and clamps at
// zero, so it can diverge from the running total maintained by
// ScoreDelta. The divergence is inherited behaviour, kept deliberately.
func RecomputeScore(actions []EcoAction) float64 {
	var carbon, savings float64
	for _, a := range actions {
		carbon += a.CarbonKg
		savings += a.EstimatedSavingsKg
	}
	if savings-carbon < 0 {
		return 0
	}
	return savings - carbon
}
