package allocator

// FilterMode selects which speculative-grant filter rule applies when
// switch allocation runs a speculative allocator alongside the
// non-speculative one (spec §4.5, config key filter_spec_grants).
type FilterMode int

const (
	// FilterAnyNonSpecGrants drops every speculative grant if any
	// non-speculative grant exists anywhere this cycle.
	FilterAnyNonSpecGrants FilterMode = iota
	// FilterConflNonSpecReqs drops a speculative grant whose output was
	// also non-speculatively requested this cycle.
	FilterConflNonSpecReqs
	// FilterConflNonSpecGrants drops a speculative grant whose output
	// was also won by a non-speculative grant this cycle.
	FilterConflNonSpecGrants
)

// ParseFilterMode maps the config string values to a FilterMode.
func ParseFilterMode(s string) (FilterMode, bool) {
	switch s {
	case "any_nonspec_gnts":
		return FilterAnyNonSpecGrants, true
	case "confl_nonspec_reqs":
		return FilterConflNonSpecReqs, true
	case "confl_nonspec_gnts":
		return FilterConflNonSpecGrants, true
	default:
		return 0, false
	}
}

// FilterSpeculativeGrants drops speculative (input, output) grants from
// specGrants according to mode, given the non-speculative allocator's
// committed grants (nonSpecGrants, input->output, -1 if unmatched) and
// its pending requests (nonSpecRequested, output->whether any input
// requested it). Returns the surviving speculative grants as
// input->output (-1 if dropped or never granted).
func FilterSpeculativeGrants(mode FilterMode, specGrants, nonSpecGrants []int, nonSpecRequested []bool) []int {
	survivors := append([]int(nil), specGrants...)

	anyNonSpecGrant := false
	for _, out := range nonSpecGrants {
		if out != -1 {
			anyNonSpecGrant = true
			break
		}
	}

	for in, out := range survivors {
		if out == -1 {
			continue
		}
		switch mode {
		case FilterAnyNonSpecGrants:
			if anyNonSpecGrant {
				survivors[in] = -1
			}
		case FilterConflNonSpecReqs:
			if out < len(nonSpecRequested) && nonSpecRequested[out] {
				survivors[in] = -1
			}
		case FilterConflNonSpecGrants:
			for _, grantedOut := range nonSpecGrants {
				if grantedOut == out {
					survivors[in] = -1
					break
				}
			}
		}
	}
	return survivors
}
