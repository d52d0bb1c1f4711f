package rematch

// Test compiles pattern and matches it against input. It never fails:
// a malformed pattern or a non-match both come back false. Matching is
// anchored on both sides — the whole input must be consumed.
func Test(pattern, input string) bool {
	p, err := Compile(pattern)
	if err != nil {
		return false
	}
	return p.Match(input)
}

// Match reports whether input as a whole matches the pattern. Branches are
// tried left to right; each branch starts over from position 0.
func (p *Pattern) Match(input string) bool {
	in := []rune(input)
	for _, br := range p.branches {
		if pos, ok := matchSeq(br, 0, in, 0, p.backtrack); ok && pos == len(in) {
			return true
		}
	}
	return false
}

// matchSeq matches steps[i:] starting at pos and returns the final position.
// On failure the returned position equals the one passed in; callers keep
// their own positions, so there is no state to restore.
func matchSeq(steps []step, i int, in []rune, pos int, bt bool) (int, bool) {
	if i == len(steps) {
		return pos, true
	}
	st := steps[i]
	if st.kind != kStar {
		np, ok := matchOne(st, in, pos)
		if !ok {
			return pos, false
		}
		return matchSeq(steps, i+1, in, np, bt)
	}

	if !bt {
		// Greedy, never retried: consume as many repetitions as possible
		// and commit. If the rest of the sequence then fails, the whole
		// sequence fails even when fewer repetitions would have worked.
		p := pos
		for {
			np, ok := matchOne(*st.sub, in, p)
			if !ok {
				break
			}
			p = np
		}
		return matchSeq(steps, i+1, in, p, bt)
	}

	// Corrected mode: remember every repetition count's end position and
	// retry from the longest down to zero repetitions.
	ends := []int{pos}
	p := pos
	for {
		np, ok := matchOne(*st.sub, in, p)
		if !ok {
			break
		}
		p = np
		ends = append(ends, p)
	}
	for j := len(ends) - 1; j >= 0; j-- {
		if np, ok := matchSeq(steps, i+1, in, ends[j], bt); ok {
			return np, true
		}
	}
	return pos, false
}

// matchOne advances over a single literal or '.' step.
func matchOne(st step, in []rune, pos int) (int, bool) {
	if pos >= len(in) {
		return pos, false
	}
	if st.kind == kAny || in[pos] == st.r {
		return pos + 1, true
	}
	return pos, false
}
