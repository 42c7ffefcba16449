// internal/wordle/prune.go
//
// Candidate pruning: drop every word that could not have produced an
// observed evaluation.

package wordle

import "strings"

// Prune keeps the candidates consistent with ev, the evaluation of guess.
//
// Every position must hold for a candidate to survive:
//   - Correct at i: the candidate has guess[i] at i.
//   - Present at i: the candidate contains guess[i], but not at i.
//   - Absent at i:  the candidate does not have guess[i] at i, and either
//     does not contain guess[i] at all or that letter was already matched
//     as Correct/Present elsewhere in this evaluation.
//
// Candidates of a different length than guess are dropped.
func Prune(ev Evaluation, guess string, candidates CandidateSet) CandidateSet {
	return candidates.Filter(func(cand string) bool {
		return consistent(ev, guess, cand)
	})
}

func consistent(ev Evaluation, guess, cand string) bool {
	if len(cand) != len(guess) || len(ev.Statuses) != len(guess) {
		return false
	}
	for i, st := range ev.Statuses {
		g := guess[i]
		switch st {
		case Correct:
			if cand[i] != g {
				return false
			}
		case Present:
			if cand[i] == g || strings.IndexByte(cand, g) < 0 {
				return false
			}
		default:
			if cand[i] == g {
				return false
			}
			if strings.IndexByte(cand, g) >= 0 && !ev.Corrects.Has(g) && !ev.Presents.Has(g) {
				return false
			}
		}
	}
	return true
}
