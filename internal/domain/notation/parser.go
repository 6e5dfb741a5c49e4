package notation

import (
	"fmt"
	"strings"

	"github.com/turtacn/stilbar/pkg/errors"
)

// Stereo is a stereodescriptor attached to a carbon position or substituent:
// relative r/s, absolute R/S, "*" for an undefined stereocenter, or empty.
type Stereo string

// StereoNone marks a position without a stereodescriptor.
const StereoNone Stereo = ""

// StereoUndefined marks an explicitly undefined stereocenter ("*").
const StereoUndefined Stereo = "*"

func isStereoRune(r rune) bool {
	switch r {
	case 'r', 's', 'R', 'S', '*':
		return true
	}
	return false
}

// Position is one end of an inter-monomer bond: a carbon position digit with
// an optional stereodescriptor.  Position 0 denotes an oxygen attachment.
type Position struct {
	Num    int
	Stereo Stereo
}

// BondPair is a single bond between a position on the left monomer and a
// position on the right monomer, e.g. "4r8" = C4(r) to C8.
type BondPair struct {
	Left  Position
	Right Position
}

// LinkageFamily identifies the delimiter family of a linkage block, which
// determines the bond chemistry between two monomer units.
type LinkageFamily string

const (
	// FamilyFuranoid is the "|–…–|" block: an oxygen-containing (furanoid or
	// ether plus C–C) linkage, as in the viniferin dihydrofuran scaffold.
	FamilyFuranoid LinkageFamily = "furanoid"
	// FamilyCarbon covers "=…=" and "|=…=|" blocks: direct C–C single bonds.
	FamilyCarbon LinkageFamily = "carbon"
	// FamilyFused is the "≡…≡" block: a fused all-carbon ring junction.
	FamilyFused LinkageFamily = "fused"
	// FamilySingle is a bare "–NN–" block: one C–C single bond.
	FamilySingle LinkageFamily = "single"
	// FamilyEther is the "|0N|" block: a single pure ether bridge; the 0
	// position is the oxygen.
	FamilyEther LinkageFamily = "ether"
)

// Linkage is one parsed linkage block between two adjacent monomer units.
type Linkage struct {
	Family LinkageFamily
	Pairs  []BondPair
	Raw    string
}

// Substituent is a positional modification of a monomer declared as a prefix,
// e.g. "2h" (2-hydroxy), "7Br" (7-bromo), "5Rh" (5-hydroxy, R-configured).
type Substituent struct {
	Position int
	Stereo   Stereo
	Group    SubstituentGroup
}

// Unit is one monomer occurrence in a code, with any substituent prefixes.
type Unit struct {
	Letter       string
	Substituents []Substituent
}

// Code is the parse result of a StilBAR code: n monomer units joined by n-1
// linkage blocks, in input order.
type Code struct {
	Raw        string
	Normalized string
	Units      []Unit
	Linkages   []Linkage
}

type scanner struct {
	runes []rune
	pos   int
}

func (s *scanner) done() bool { return s.pos >= len(s.runes) }

func (s *scanner) peek() rune {
	if s.done() {
		return 0
	}
	return s.runes[s.pos]
}

func (s *scanner) peekAt(offset int) rune {
	if s.pos+offset >= len(s.runes) {
		return 0
	}
	return s.runes[s.pos+offset]
}

func (s *scanner) next() rune {
	r := s.peek()
	s.pos++
	return r
}

// readUntil consumes runes up to (but not including) the first occurrence of
// the delimiter sequence, then consumes the delimiter itself.
func (s *scanner) readUntil(delim ...rune) (string, bool) {
	start := s.pos
	for i := s.pos; i+len(delim) <= len(s.runes); i++ {
		match := true
		for j, d := range delim {
			if s.runes[i+j] != d {
				match = false
				break
			}
		}
		if match {
			content := string(s.runes[start:i])
			s.pos = i + len(delim)
			return content, true
		}
	}
	return "", false
}

// Parse parses a StilBAR code into its monomer units and linkage blocks.
// The input is normalized first, so spacing and dash style do not matter.
// Parse validates structure only: it makes no claim that every parseable code
// has a constructible SMILES.
func Parse(raw string) (*Code, error) {
	normalized := Normalize(raw)
	if normalized == "" {
		return nil, errors.New(errors.CodeNotationEmpty, "empty StilBAR code")
	}

	s := &scanner{runes: []rune(normalized)}
	code := &Code{Raw: raw, Normalized: normalized}

	for {
		unit, err := parseUnit(s, normalized)
		if err != nil {
			return nil, err
		}
		code.Units = append(code.Units, *unit)

		if s.done() {
			break
		}

		linkage, err := parseLinkage(s, normalized)
		if err != nil {
			return nil, err
		}
		code.Linkages = append(code.Linkages, *linkage)

		if s.done() {
			return nil, errors.New(errors.CodeNotationSyntax,
				"StilBAR code ends with a linkage").
				WithDetail(fmt.Sprintf("code %q", normalized))
		}
	}

	return code, nil
}

// parseUnit reads substituent prefixes (digit, optional stereodescriptor,
// group) followed by a monomer letter.
func parseUnit(s *scanner, code string) (*Unit, error) {
	unit := &Unit{}

	for isDigit(s.peek()) {
		pos := int(s.next() - '0')
		stereo := StereoNone
		if isStereoRune(s.peek()) {
			stereo = Stereo(s.next())
		}
		group, ok := matchGroup(s)
		if !ok {
			return nil, errors.New(errors.CodeNotationSyntax,
				"substituent prefix missing group").
				WithDetail(fmt.Sprintf("position %d in %q", pos, code))
		}
		unit.Substituents = append(unit.Substituents, Substituent{
			Position: pos,
			Stereo:   stereo,
			Group:    group,
		})
	}

	letter := s.next()
	if letter == 0 {
		return nil, errors.New(errors.CodeNotationSyntax,
			"expected monomer letter").
			WithDetail(fmt.Sprintf("code %q", code))
	}
	if _, ok := LookupMonomer(string(letter)); !ok {
		return nil, errors.New(errors.CodeNotationUnknownUnit,
			"unknown monomer letter").
			WithDetail(fmt.Sprintf("letter %q in %q", string(letter), code))
	}
	unit.Letter = string(letter)
	return unit, nil
}

// matchGroup matches a substituent group at the scanner position, longest
// token first so "Cl" wins over the monomer letter "C".
func matchGroup(s *scanner) (SubstituentGroup, bool) {
	for _, g := range substituentGroups {
		token := []rune(string(g))
		match := true
		for i, r := range token {
			if s.peekAt(i) != r {
				match = false
				break
			}
		}
		if match {
			s.pos += len(token)
			return g, true
		}
	}
	return "", false
}

func parseLinkage(s *scanner, code string) (*Linkage, error) {
	start := s.pos
	badLinkage := func(msg string) error {
		return errors.New(errors.CodeNotationBadLinkage, msg).
			WithDetail(fmt.Sprintf("at offset %d in %q", start, code))
	}

	var (
		family  LinkageFamily
		content string
		ok      bool
	)

	switch r := s.peek(); {
	case r == '|' && s.peekAt(1) == '–':
		s.pos += 2
		family = FamilyFuranoid
		content, ok = s.readUntil('–', '|')
		if !ok {
			return nil, badLinkage("unterminated |–…–| linkage block")
		}
	case r == '|' && s.peekAt(1) == '=':
		s.pos += 2
		family = FamilyCarbon
		content, ok = s.readUntil('=', '|')
		if !ok {
			return nil, badLinkage("unterminated |=…=| linkage block")
		}
	case r == '|' && isDigit(s.peekAt(1)):
		s.pos++
		family = FamilyEther
		content, ok = s.readUntil('|')
		if !ok {
			return nil, badLinkage("unterminated |0N| ether block")
		}
	case r == '=':
		s.pos++
		family = FamilyCarbon
		content, ok = s.readUntil('=')
		if !ok {
			return nil, badLinkage("unterminated =…= linkage block")
		}
	case r == '≡':
		s.pos++
		family = FamilyFused
		content, ok = s.readUntil('≡')
		if !ok {
			return nil, badLinkage("unterminated ≡…≡ linkage block")
		}
	case r == '–':
		s.pos++
		family = FamilySingle
		content, ok = s.readUntil('–')
		if !ok {
			return nil, badLinkage("unterminated –NN– linkage block")
		}
	default:
		return nil, badLinkage(fmt.Sprintf("unexpected character %q after monomer", string(r)))
	}

	pairs, err := parseBondPairs(content, code)
	if err != nil {
		return nil, err
	}
	if family == FamilyEther && pairs[0].Left.Num != 0 {
		return nil, errors.New(errors.CodeNotationBadLinkage,
			"ether block must start at the oxygen position 0").
			WithDetail(fmt.Sprintf("block %q in %q", content, code))
	}

	return &Linkage{Family: family, Pairs: pairs, Raw: content}, nil
}

// parseBondPairs parses the "."-separated bond pairs inside a linkage block.
// Each pair is exactly two positions, each a digit with an optional
// stereodescriptor (e.g. "4r8", "5r5s", "74r", "05S").
func parseBondPairs(content, code string) ([]BondPair, error) {
	if content == "" {
		return nil, errors.New(errors.CodeNotationBadLinkage, "empty linkage block").
			WithDetail(fmt.Sprintf("code %q", code))
	}

	var pairs []BondPair
	for _, part := range strings.Split(content, ".") {
		runes := []rune(part)
		i := 0
		readPosition := func() (Position, error) {
			if i >= len(runes) || !isDigit(runes[i]) {
				return Position{}, errors.New(errors.CodeNotationBadLinkage,
					"bond pair must be two carbon positions").
					WithDetail(fmt.Sprintf("pair %q in %q", part, code))
			}
			p := Position{Num: int(runes[i] - '0')}
			i++
			if i < len(runes) && isStereoRune(runes[i]) {
				p.Stereo = Stereo(runes[i])
				i++
			}
			return p, nil
		}

		left, err := readPosition()
		if err != nil {
			return nil, err
		}
		right, err := readPosition()
		if err != nil {
			return nil, err
		}
		if i != len(runes) {
			return nil, errors.New(errors.CodeNotationBadLinkage,
				"trailing characters in bond pair").
				WithDetail(fmt.Sprintf("pair %q in %q", part, code))
		}
		pairs = append(pairs, BondPair{Left: left, Right: right})
	}
	return pairs, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
