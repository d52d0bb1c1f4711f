// Package rematch implements the toy regular-expression front end of
// tinyInterp.
//
// What: Full-match testing of a pattern against an input string. Supported
// constructs: literal runes, '.' (any one rune), postfix '*' on the
// preceding element, and top-level '|' alternation. No character classes,
// anchors or groups.
// How: The pattern compiles into a list of alternative branches, each a flat
// sequence of match steps. Matching threads an integer position by value
// through the steps; every step returns the new position and a success flag,
// so alternation restores state by simply reusing its saved position.
// Why: Passing positions as values instead of mutating a shared cursor
// removes the aliasing hazards that snapshot/restore backtracking otherwise
// invites.
package rematch

import "fmt"

type stepKind int

const (
	kLiteral stepKind = iota
	kAny
	kStar
)

type step struct {
	kind stepKind
	r    rune  // literal rune, kLiteral only
	sub  *step // repeated element, kStar only
}

// Pattern is a compiled toy regex.
type Pattern struct {
	branches  [][]step
	backtrack bool
}

// Compile parses pattern into its alternative branches. The only malformed
// shapes are a '*' with nothing before it and a doubled '*'. An empty
// pattern (or branch) is valid and matches only the empty input.
func Compile(pattern string) (*Pattern, error) {
	p := &Pattern{}
	var br []step
	for i, r := range pattern {
		switch r {
		case '|':
			p.branches = append(p.branches, br)
			br = nil
		case '*':
			if len(br) == 0 {
				return nil, fmt.Errorf("misplaced '*' at offset %d", i)
			}
			last := br[len(br)-1]
			if last.kind == kStar {
				return nil, fmt.Errorf("doubled '*' at offset %d", i)
			}
			rep := last
			br[len(br)-1] = step{kind: kStar, sub: &rep}
		case '.':
			br = append(br, step{kind: kAny})
		default:
			br = append(br, step{kind: kLiteral, r: r})
		}
	}
	p.branches = append(p.branches, br)
	return p, nil
}

// Backtrack switches '*' between the default greedy mode, which never gives
// repetitions back, and a corrected mode that retries shorter repetition
// counts when the rest of the sequence fails. Returns p for chaining.
func (p *Pattern) Backtrack(on bool) *Pattern {
	p.backtrack = on
	return p
}
