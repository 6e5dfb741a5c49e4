package conversion

import (
	"fmt"

	"github.com/turtacn/stilbar/internal/domain/notation"
	"github.com/turtacn/stilbar/pkg/errors"
)

// Component-based construction covers the two shapes the notation maps onto
// structures reliably: bare monomer codes and the trans-δ-viniferin
// dihydrofuran family "A|–04x.15y–|B".  Everything else in the notation has
// no principled grammar-to-structure mapping, and construction refuses it
// rather than guessing.

// styryl tails for the A monomer of the dihydrofuran scaffold: the vinyl (or
// dihydro) bridge plus ring A, written with ring-closure index 5.
var styrylTails = map[string]string{
	"T": "/C=C/C5=CC(O)=CC(O)=C5",
	"C": "/C=C\\C5=CC(O)=CC(O)=C5",
	"P": "/C=C/C5=CC(OC)=CC(OC)=C5",
	"X": "/C=C/C5=CC(OC)=CC(O)=C5",
	"H": "CCC5=CC(O)=CC(O)=C5",
	"M": "CCC5=CC=C(OC)C=C5",
}

// arylRings for the B monomer: the pendant resorcinol-type ring on the
// dihydrofuran carbon, written with ring-closure index 3.
var arylRings = map[string]string{
	"H": "C3=CC(O)=CC(O)=C3",
	"T": "C3=CC(O)=CC(O)=C3",
	"C": "C3=CC(O)=CC(O)=C3",
	"P": "C3=CC(OC)=CC(OC)=C3",
	"X": "C3=CC(O)=CC(O)=C3",
	"M": "C3=CC=C(OC)C=C3",
}

// buildFromTemplate attempts component-based construction for a parsed code.
// It returns a CodeNotationUnsupported error for any shape outside the
// covered families.
func buildFromTemplate(code *notation.Code) (string, error) {
	switch {
	case len(code.Units) == 1 && len(code.Linkages) == 0:
		return buildMonomer(code.Units[0])
	case len(code.Units) == 2 && len(code.Linkages) == 1:
		return buildDihydrofuran(code)
	default:
		return "", errors.New(errors.CodeNotationUnsupported,
			"no construction template for oligomers of this shape").
			WithDetail(fmt.Sprintf("code %q: %d units, %d linkages",
				code.Normalized, len(code.Units), len(code.Linkages)))
	}
}

// buildMonomer returns the base SMILES for a single-unit code.  Substituted
// monomers are refused: prefix positions are not mapped onto monomer atoms by
// any known rule.
func buildMonomer(unit notation.Unit) (string, error) {
	if len(unit.Substituents) > 0 {
		return "", errors.New(errors.CodeNotationUnsupported,
			"no construction template for substituted monomers").
			WithDetail(fmt.Sprintf("monomer %s with %d substituents",
				unit.Letter, len(unit.Substituents)))
	}
	m, ok := notation.LookupMonomer(unit.Letter)
	if !ok {
		return "", errors.New(errors.CodeNotationUnknownUnit, "unknown monomer letter").
			WithDetail(unit.Letter)
	}
	return m.SMILES, nil
}

// buildDihydrofuran constructs the trans-δ-viniferin scaffold for codes of
// the family A|–04x.15y–|B: a 2-aryl-3-aryl-2,3-dihydrobenzofuran with the A
// monomer's styryl tail.  Stereo "r" gives the (R,R)-like @/@ pair, "s" the
// @@/@@ pair, and no descriptor the dehydro (benzofuran) form.
func buildDihydrofuran(code *notation.Code) (string, error) {
	link := code.Linkages[0]
	if link.Family != notation.FamilyFuranoid {
		return "", errors.New(errors.CodeNotationUnsupported,
			"no construction template for this linkage family").
			WithDetail(string(link.Family))
	}
	if len(code.Units[0].Substituents) > 0 || len(code.Units[1].Substituents) > 0 {
		return "", errors.New(errors.CodeNotationUnsupported,
			"no construction template for substituted dihydrofuran monomers")
	}
	if len(link.Pairs) != 2 ||
		link.Pairs[0].Left.Num != 0 || link.Pairs[0].Right.Num != 4 ||
		link.Pairs[1].Left.Num != 1 || link.Pairs[1].Right.Num != 5 {
		return "", errors.New(errors.CodeNotationUnsupported,
			"furanoid construction covers only the 04.15 bond pattern").
			WithDetail(link.Raw)
	}

	stereoA := link.Pairs[0].Right.Stereo
	stereoB := link.Pairs[1].Right.Stereo
	if stereoA != stereoB {
		return "", errors.New(errors.CodeNotationUnsupported,
			"furanoid construction requires matching stereodescriptors").
			WithDetail(link.Raw)
	}

	var core string
	switch stereoA {
	case "r", "R":
		core = "[C@H](O2)[C@H]"
	case "s", "S":
		core = "[C@@H](O2)[C@@H]"
	case notation.StereoNone:
		core = "C(O2)=C"
	default:
		return "", errors.New(errors.CodeNotationBadStereo,
			"furanoid construction cannot place an undefined stereocenter").
			WithDetail(link.Raw)
	}

	tail, ok := styrylTails[code.Units[0].Letter]
	if !ok {
		return "", errors.New(errors.CodeNotationUnsupported,
			"no styryl tail for monomer").WithDetail(code.Units[0].Letter)
	}
	aryl, ok := arylRings[code.Units[1].Letter]
	if !ok {
		return "", errors.New(errors.CodeNotationUnsupported,
			"no aryl ring for monomer").WithDetail(code.Units[1].Letter)
	}

	return fmt.Sprintf("OC(C=C1)=CC=C1%s(%s)C4=C2C=CC(%s)=C4", core, aryl, tail), nil
}
