package sampler

// Visit identifies one scheduled invocation: one configuration within
// one pass.
type Visit struct {
	// Pass is 1-indexed
	Pass int

	// Config is the configuration name to invoke
	Config string
}

// Reversed reports whether the given pass traverses configurations in
// reverse order. Odd passes run forward, even passes run the exact
// reverse, so any monotonic drift (thermal throttling, cache warm-up,
// scheduler noise) hits first-visited and last-visited configurations
// symmetrically across the run instead of always favoring whichever
// configuration runs first.
func Reversed(pass int) bool {
	return pass%2 == 0
}

// PassOrder returns the configuration traversal order for one pass.
func PassOrder(configs []string, pass int) []string {
	order := make([]string, len(configs))
	if Reversed(pass) {
		for i, c := range configs {
			order[len(configs)-1-i] = c
		}
	} else {
		copy(order, configs)
	}
	return order
}

// Schedule expands a configuration list and pass count into the full
// invocation schedule. Every configuration is visited exactly once per
// pass, so the schedule has len(configs) * passes entries.
func Schedule(configs []string, passes int) []Visit {
	visits := make([]Visit, 0, len(configs)*passes)
	for pass := 1; pass <= passes; pass++ {
		for _, c := range PassOrder(configs, pass) {
			visits = append(visits, Visit{Pass: pass, Config: c})
		}
	}
	return visits
}
