package compound

import (
	"math/bits"
	"sort"

	"github.com/turtacn/stilbar/pkg/errors"
)

// Tanimoto computes the Tanimoto coefficient (Jaccard index) between two bit
// vector fingerprints of equal length.  Returns a value in [0, 1].
func Tanimoto(a, b *Fingerprint) (float64, error) {
	if a == nil || b == nil {
		return 0, errors.InvalidParam("fingerprints must be non-nil")
	}
	if a.Length != b.Length {
		return 0, errors.InvalidParam("fingerprints must have the same length")
	}

	intersection := 0
	union := 0
	for i := range a.Bits {
		intersection += bits.OnesCount8(a.Bits[i] & b.Bits[i])
		union += bits.OnesCount8(a.Bits[i] | b.Bits[i])
	}
	if union == 0 {
		return 0, nil
	}
	return float64(intersection) / float64(union), nil
}

// Match is one similarity hit against the library.
type Match struct {
	Compound   *Compound
	Similarity float64
}

// FindSimilar ranks library compounds by Tanimoto similarity to the query
// SMILES, returning matches at or above threshold, best first, capped at
// limit.  Compounds whose SMILES cannot be fingerprinted are skipped.
func FindSimilar(querySMILES string, candidates []*Compound, threshold float64, limit int) ([]Match, error) {
	if threshold < 0 || threshold > 1 {
		return nil, errors.InvalidParam("threshold must be in [0, 1]")
	}
	if limit <= 0 {
		return nil, errors.InvalidParam("limit must be positive")
	}

	query, err := ComputeFingerprint(querySMILES)
	if err != nil {
		return nil, err
	}

	var matches []Match
	for _, c := range candidates {
		fp, err := ComputeFingerprint(c.SMILES)
		if err != nil {
			continue
		}
		score, err := Tanimoto(query, fp)
		if err != nil {
			continue
		}
		if score >= threshold {
			matches = append(matches, Match{Compound: c, Similarity: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Similarity classification thresholds.
const (
	ThresholdIdentical = 0.99
	ThresholdHigh      = 0.85
	ThresholdModerate  = 0.70
	ThresholdLow       = 0.50
)

// ClassifySimilarity returns a label for a similarity score.
func ClassifySimilarity(score float64) string {
	switch {
	case score >= ThresholdIdentical:
		return "identical"
	case score >= ThresholdHigh:
		return "high"
	case score >= ThresholdModerate:
		return "moderate"
	case score >= ThresholdLow:
		return "low"
	default:
		return "dissimilar"
	}
}
