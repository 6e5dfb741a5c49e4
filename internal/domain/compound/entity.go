// Package compound provides the core domain model for the stilbenoid compound
// library: the Compound entity, the repository contract, the in-memory lookup
// index, and heuristic structure analysis (properties, fingerprints,
// similarity).
package compound

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/turtacn/stilbar/internal/domain/notation"
	"github.com/turtacn/stilbar/pkg/errors"
	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

// Compound is one library entry: a named stilbenoid with its SMILES structure
// and, when known, the StilBAR code that encodes it.  A compound without a
// code can still be browsed and searched by structure, it just cannot be hit
// by code lookup.
type Compound struct {
	// Hash is the stable identifier: the first 8 hex characters of the
	// SHA-256 digest over "normalizedCode|name" (name stands in for the
	// code when there is none).
	Hash string `json:"hash"`

	// Seq is the 1-based position in the curated library, used by numeric
	// lookup.  Zero for compounds added after seeding.
	Seq int `json:"seq"`

	Name string `json:"name"`

	// Code is the StilBAR code as authored; may be empty.
	Code string `json:"code"`

	// NormalizedCode is Code after notation.Normalize; the lookup key.
	NormalizedCode string `json:"normalized_code"`

	SMILES string `json:"smiles"`
}

// validSMILESChars is the allowed character set for SMILES notation.  This is
// a structural sanity check, not full SMILES validation.
var validSMILESChars = regexp.MustCompile(`^[A-Za-z0-9@+\-\[\]()=#/\\%.*]+$`)

// HashID computes the stable compound identifier from a normalized code and a
// name.  Codeless compounds hash the name in both positions so that renaming
// one always yields a fresh identifier.
func HashID(normalizedCode, name string) string {
	if normalizedCode == "" {
		normalizedCode = name
	}
	sum := sha256.Sum256([]byte(normalizedCode + "|" + name))
	return hex.EncodeToString(sum[:])[:8]
}

// New constructs a Compound, validating the SMILES and deriving the
// normalized code and hash.  seq may be zero for non-seeded compounds.
func New(seq int, name, code, smiles string) (*Compound, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.InvalidParam("compound name cannot be empty")
	}
	if err := ValidateSMILES(smiles); err != nil {
		return nil, err
	}

	normalized := notation.Normalize(code)
	if normalized != "" {
		if _, err := notation.Parse(normalized); err != nil {
			return nil, errors.Wrap(err, errors.CodeCompoundInvalid,
				"compound carries an unparseable StilBAR code")
		}
	}

	return &Compound{
		Hash:           HashID(normalized, name),
		Seq:            seq,
		Name:           name,
		Code:           code,
		NormalizedCode: normalized,
		SMILES:         smiles,
	}, nil
}

// ValidateSMILES performs basic structural validation of a SMILES string:
// non-empty, allowed character set, balanced brackets.
func ValidateSMILES(smiles string) error {
	smiles = strings.TrimSpace(smiles)
	if smiles == "" {
		return errors.New(errors.CodeInvalidSMILES, "SMILES string cannot be empty")
	}
	if !validSMILESChars.MatchString(smiles) {
		return errors.New(errors.CodeInvalidSMILES, "SMILES contains invalid characters").
			WithDetail(fmt.Sprintf("smiles=%s", smiles))
	}
	return validateBrackets(smiles)
}

// validateBrackets checks that all brackets in the SMILES string are balanced.
func validateBrackets(smiles string) error {
	var stack []rune
	closers := map[rune]rune{
		')': '(',
		']': '[',
	}

	for _, ch := range smiles {
		switch ch {
		case '(', '[':
			stack = append(stack, ch)
		case ')', ']':
			if len(stack) == 0 || stack[len(stack)-1] != closers[ch] {
				return errors.New(errors.CodeInvalidSMILES, "unmatched brackets in SMILES").
					WithDetail(fmt.Sprintf("smiles=%s", smiles))
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) != 0 {
		return errors.New(errors.CodeInvalidSMILES, "unclosed brackets in SMILES").
			WithDetail(fmt.Sprintf("smiles=%s", smiles))
	}
	return nil
}

// HasCode reports whether the compound carries a StilBAR code.
func (c *Compound) HasCode() bool { return c.NormalizedCode != "" }

// ToDTO converts the entity to its transfer representation.
func (c *Compound) ToDTO() ctypes.CompoundDTO {
	return ctypes.CompoundDTO{
		Hash:   c.Hash,
		Seq:    c.Seq,
		Name:   c.Name,
		Code:   c.Code,
		SMILES: c.SMILES,
	}
}

// FromDTO reconstructs an entity from its transfer representation.  The hash
// and normalized code are re-derived rather than trusted.
func FromDTO(dto ctypes.CompoundDTO) *Compound {
	normalized := notation.Normalize(dto.Code)
	return &Compound{
		Hash:           HashID(normalized, dto.Name),
		Seq:            dto.Seq,
		Name:           dto.Name,
		Code:           dto.Code,
		NormalizedCode: normalized,
		SMILES:         dto.SMILES,
	}
}
