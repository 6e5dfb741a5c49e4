package compound

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/bits"
	"regexp"

	"github.com/turtacn/stilbar/pkg/errors"
)

// FingerprintBits is the fixed fingerprint length used across the library.
const FingerprintBits = 2048

// fingerprintRadius is the maximum bond distance for atom neighborhoods.
const fingerprintRadius = 2

// Fingerprint is a molecular fingerprint as a packed bit vector: bit i lives
// in byte i/8 at position i%8.
type Fingerprint struct {
	Bits      []byte `json:"bits"`
	Length    int    `json:"length"`
	NumOnBits int    `json:"num_on_bits"`
}

// NewFingerprint constructs a Fingerprint from packed bit data.
func NewFingerprint(data []byte, length int) *Fingerprint {
	onBits := 0
	for _, b := range data {
		onBits += bits.OnesCount8(b)
	}
	return &Fingerprint{Bits: data, Length: length, NumOnBits: onBits}
}

// GetBit returns true if the bit at the given index is set.
func (fp *Fingerprint) GetBit(index int) bool {
	if index < 0 || index >= fp.Length {
		return false
	}
	return (fp.Bits[index/8] & (1 << uint(index%8))) != 0
}

var nonAtomChars = regexp.MustCompile(`[\[\]0-9\-=#/\\()@+%.*]`)

// smilesAtoms extracts the heavy-atom sequence from a SMILES string, keeping
// two-letter halogens whole.  This is deliberately approximate: fingerprints
// built from it are only used for relative similarity ranking within the
// library, never as structure identity.
func smilesAtoms(smiles string) []string {
	cleaned := nonAtomChars.ReplaceAllString(smiles, "")
	var atoms []string
	runes := []rune(cleaned)
	for i := 0; i < len(runes); i++ {
		switch {
		case runes[i] == 'C' && i+1 < len(runes) && runes[i+1] == 'l':
			atoms = append(atoms, "Cl")
			i++
		case runes[i] == 'B' && i+1 < len(runes) && runes[i+1] == 'r':
			atoms = append(atoms, "Br")
			i++
		case runes[i] == 'H':
			// explicit hydrogens carry no fingerprint information
		case (runes[i] >= 'A' && runes[i] <= 'Z') || (runes[i] >= 'a' && runes[i] <= 'z'):
			atoms = append(atoms, string(runes[i]))
		}
	}
	return atoms
}

// ComputeFingerprint builds a hashed circular fingerprint from a SMILES
// string: for every atom, its neighborhood at each radius up to
// fingerprintRadius is hashed into the bit vector.
func ComputeFingerprint(smiles string) (*Fingerprint, error) {
	if err := ValidateSMILES(smiles); err != nil {
		return nil, err
	}

	atoms := smilesAtoms(smiles)
	if len(atoms) == 0 {
		return nil, errors.New(errors.CodeInvalidSMILES, "no atoms found in SMILES")
	}

	data := make([]byte, FingerprintBits/8)
	for i, atom := range atoms {
		for r := 0; r <= fingerprintRadius; r++ {
			env := environment(atoms, i, r)
			idx := int(hashEnvironment(atom, r, env) % uint64(FingerprintBits))
			data[idx/8] |= 1 << uint(idx%8)
		}
	}

	return NewFingerprint(data, FingerprintBits), nil
}

// environment returns the atom symbols within radius r of position i along
// the linearised atom sequence.
func environment(atoms []string, i, r int) string {
	lo := i - r
	if lo < 0 {
		lo = 0
	}
	hi := i + r + 1
	if hi > len(atoms) {
		hi = len(atoms)
	}
	env := ""
	for _, a := range atoms[lo:hi] {
		env += a
	}
	return env
}

func hashEnvironment(atom string, radius int, env string) uint64 {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d:%s", atom, radius, env)))
	return binary.BigEndian.Uint64(sum[:8])
}
