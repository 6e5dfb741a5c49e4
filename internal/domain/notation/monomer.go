package notation

// Monomer is one of the fixed base stilbenoid units a StilBAR code is built
// from.  SMILES is the free monomer structure, used when a code denotes a
// single unmodified unit.
type Monomer struct {
	Letter string
	Name   string
	SMILES string
}

// monomers is the fixed monomer alphabet.  The set is closed: codes using any
// other letter are rejected by the parser.
var monomers = map[string]Monomer{
	"T": {
		Letter: "T",
		Name:   "trans-Resveratrol",
		SMILES: "OC1=CC(O)=CC(/C=C/C2=CC=C(O)C=C2)=C1",
	},
	"H": {
		Letter: "H",
		Name:   "diH-Resveratrol",
		SMILES: "OC1=CC(O)=CC(CCC2=CC=C(O)C=C2)=C1",
	},
	"C": {
		Letter: "C",
		Name:   "cis-Resveratrol",
		SMILES: "OC1=CC(O)=CC(/C=C\\C2=CC=C(O)C=C2)=C1",
	},
	"P": {
		Letter: "P",
		Name:   "diH-Pterostilbene",
		SMILES: "COC1=CC(OC)=CC(CCC2=CC=C(O)C=C2)=C1",
	},
	"M": {
		Letter: "M",
		Name:   "0-Methoxy-diH-Resveratrol",
		SMILES: "OC1=CC(O)=CC(CCC2=CC=C(OC)C=C2)=C1",
	},
	"X": {
		Letter: "X",
		Name:   "8-Methoxy-diH-Resveratrol",
		SMILES: "COC1=CC(O)=CC(CCC2=CC=C(O)C=C2)=C1",
	},
}

// LookupMonomer returns the monomer for a unit letter.
func LookupMonomer(letter string) (Monomer, bool) {
	m, ok := monomers[letter]
	return m, ok
}

// MonomerLetters returns the monomer alphabet in a stable order.
func MonomerLetters() []string {
	return []string{"T", "H", "C", "P", "M", "X"}
}

// SubstituentGroup is a chemical group attached to a monomer by a positional
// prefix, e.g. the "h" in "2hH" or the "Br" in "7BrT".
type SubstituentGroup string

const (
	GroupHydroxy    SubstituentGroup = "h"
	GroupMethoxy    SubstituentGroup = "m"
	GroupIsopropoxy SubstituentGroup = "i"
	GroupBromo      SubstituentGroup = "Br"
	GroupChloro     SubstituentGroup = "Cl"
	GroupIodo       SubstituentGroup = "I"
)

// substituentGroups is ordered longest-first so that "Cl" is matched before a
// bare monomer letter "C" could be considered.
var substituentGroups = []SubstituentGroup{
	GroupBromo, GroupChloro, GroupIodo,
	GroupHydroxy, GroupMethoxy, GroupIsopropoxy,
}
