package compound

import (
	"fmt"
	"strings"

	"github.com/turtacn/stilbar/pkg/errors"
	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

// Atomic masses for the elements that occur in stilbenoid SMILES.
const (
	massC  = 12.011
	massH  = 1.008
	massO  = 15.999
	massN  = 14.007
	massBr = 79.904
	massCl = 35.453
	massI  = 126.904
)

// atomCounts holds per-element counts extracted from a SMILES string.
type atomCounts struct {
	C, O, N, Br, Cl, I int
	ExplicitH          int
}

// countAtoms walks a SMILES string and tallies heavy atoms.  Two-letter
// halogens are consumed before single-letter elements so "Cl" is never
// counted as a carbon.  Ring-closure digits, bond symbols, and stereo
// markers are skipped.
func countAtoms(smiles string) atomCounts {
	var counts atomCounts
	runes := []rune(smiles)
	for i := 0; i < len(runes); i++ {
		switch {
		case runes[i] == 'C' && i+1 < len(runes) && runes[i+1] == 'l':
			counts.Cl++
			i++
		case runes[i] == 'B' && i+1 < len(runes) && runes[i+1] == 'r':
			counts.Br++
			i++
		case runes[i] == 'C' || runes[i] == 'c':
			counts.C++
		case runes[i] == 'O' || runes[i] == 'o':
			counts.O++
		case runes[i] == 'N' || runes[i] == 'n':
			counts.N++
		case runes[i] == 'I':
			counts.I++
		case runes[i] == 'H':
			counts.ExplicitH++
		}
	}
	return counts
}

// EstimateProperties computes heuristic physicochemical descriptors from a
// SMILES string.  These are display-grade estimates in the same spirit as the
// original tool's summary panel; exact descriptor computation is delegated to
// an external chemistry toolkit and is out of scope here.
func EstimateProperties(smiles string) (ctypes.Properties, error) {
	if err := ValidateSMILES(smiles); err != nil {
		return ctypes.Properties{}, errors.Wrap(err, errors.CodeInvalidSMILES,
			"cannot estimate properties")
	}

	counts := countAtoms(smiles)
	heavy := counts.C + counts.O + counts.N + counts.Br + counts.Cl + counts.I

	// Hydroxyl/methoxy oxygens dominate stilbenoids: every O bonded to an
	// aromatic ring carries one H unless it is an ether.  Approximate donors
	// as hydroxyl groups ("O" followed by neither "C" nor a ring digit is
	// too fragile; count the literal hydroxyl patterns instead).
	donors := strings.Count(smiles, "(O)") + boolToInt(strings.HasPrefix(smiles, "O"))
	acceptors := counts.O + counts.N

	// Aromatic rings: each ring contributes 6 ring-bond carbons; curated
	// stilbenoid SMILES are written in Kekulé form, so count ring-closure
	// openings of aromatic six-rings via the C=C density heuristic.
	aromaticRings := estimateAromaticRings(smiles)

	// Rotatable bonds: single bonds between ring systems.  The stilbene
	// core contributes the two aryl-vinyl bonds; each methoxy adds one.
	rotatable := strings.Count(smiles, "CC") + strings.Count(smiles, "OC") - aromaticRings
	if rotatable < 0 {
		rotatable = 0
	}

	// Implicit hydrogens: rough fill to valence for the heavy-atom skeleton.
	hCount := counts.ExplicitH + donors + counts.C - aromaticRings*2
	if hCount < 0 {
		hCount = counts.ExplicitH
	}

	weight := float64(counts.C)*massC + float64(counts.O)*massO +
		float64(counts.N)*massN + float64(counts.Br)*massBr +
		float64(counts.Cl)*massCl + float64(counts.I)*massI +
		float64(hCount)*massH

	// TPSA: 20.23 per hydroxyl O, 9.23 per ether O (Ertl contributions).
	etherO := counts.O - donors
	if etherO < 0 {
		etherO = 0
	}
	tpsa := float64(donors)*20.23 + float64(etherO)*9.23

	// LogP: crude Crippen-style estimate; aromatic carbons add, polar
	// oxygens subtract.
	logP := float64(counts.C)*0.2 - float64(counts.O)*0.4 + float64(aromaticRings)*0.3

	return ctypes.Properties{
		Formula:        formatFormula(counts, hCount),
		Weight:         weight,
		LogP:           logP,
		TPSA:           tpsa,
		HBondDonors:    donors,
		HBondAcceptors: acceptors,
		RotatableBonds: rotatable,
		AromaticRings:  aromaticRings,
		HeavyAtoms:     heavy,
	}, nil
}

// estimateAromaticRings counts six-membered aromatic rings from ring-closure
// digits.  Every ring closure digit appears exactly twice in a SMILES string,
// and stilbenoid rings are all aromatic, so half the closure count is a fair
// estimate.
func estimateAromaticRings(smiles string) int {
	closures := 0
	runes := []rune(smiles)
	for i := 0; i < len(runes); i++ {
		if runes[i] >= '1' && runes[i] <= '9' {
			closures++
		}
		// %NN two-digit ring closures in larger oligomers
		if runes[i] == '%' && i+2 < len(runes) {
			closures++
			i += 2
		}
	}
	return closures / 2
}

func formatFormula(c atomCounts, hCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "C%d", c.C)
	if hCount > 0 {
		fmt.Fprintf(&b, "H%d", hCount)
	}
	if c.Br > 0 {
		fmt.Fprintf(&b, "Br%d", c.Br)
	}
	if c.Cl > 0 {
		fmt.Fprintf(&b, "Cl%d", c.Cl)
	}
	if c.I > 0 {
		fmt.Fprintf(&b, "I%d", c.I)
	}
	if c.N > 0 {
		fmt.Fprintf(&b, "N%d", c.N)
	}
	if c.O > 0 {
		fmt.Fprintf(&b, "O%d", c.O)
	}
	return b.String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// AssessLipinski applies the rule-of-five to estimated properties and lists
// the violated rules.
func AssessLipinski(p ctypes.Properties) ctypes.LipinskiAssessment {
	var broken []string
	if p.Weight > 500 {
		broken = append(broken, fmt.Sprintf("molecular weight %.1f > 500", p.Weight))
	}
	if p.LogP > 5 {
		broken = append(broken, fmt.Sprintf("LogP %.2f > 5", p.LogP))
	}
	if p.HBondDonors > 5 {
		broken = append(broken, fmt.Sprintf("H-bond donors %d > 5", p.HBondDonors))
	}
	if p.HBondAcceptors > 10 {
		broken = append(broken, fmt.Sprintf("H-bond acceptors %d > 10", p.HBondAcceptors))
	}
	return ctypes.LipinskiAssessment{
		Violations: len(broken),
		Passed:     len(broken) == 0,
		Rules:      broken,
	}
}
