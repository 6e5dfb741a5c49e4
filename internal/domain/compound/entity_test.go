package compound

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/stilbar/pkg/errors"
)

func TestNew(t *testing.T) {
	c, err := New(8, "trans-δ-Viniferin", "T|-04r.15r-|H",
		"OC(C=C1)=CC=C1[C@H](O2)[C@H](C3=CC(O)=CC(O)=C3)C4=C2C=CC(/C=C/C5=CC(O)=CC(O)=C5)=C4")
	require.NoError(t, err)

	assert.Equal(t, "T|–04r.15r–|H", c.NormalizedCode, "hyphens normalize to en dashes")
	assert.Equal(t, "T|-04r.15r-|H", c.Code, "authored code is preserved")
	assert.Len(t, c.Hash, 8)
	assert.True(t, c.HasCode())
	assert.Equal(t, 8, c.Seq)
}

func TestNew_WithoutCode(t *testing.T) {
	c, err := New(0, "unnamed structure", "", "OC1=CC(O)=CC(CCC2=CC=C(O)C=C2)=C1")
	require.NoError(t, err)
	assert.False(t, c.HasCode())
	assert.Len(t, c.Hash, 8)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		cname    string
		code     string
		smiles   string
		wantCode errors.ErrorCode
	}{
		{"empty name", "", "H", "OC1=CC=CC=C1", errors.CodeInvalidParam},
		{"empty smiles", "x", "H", "", errors.CodeInvalidSMILES},
		{"bad smiles chars", "x", "H", "OC1{}", errors.CodeInvalidSMILES},
		{"unbalanced brackets", "x", "H", "OC1=CC(O=CC=C1", errors.CodeInvalidSMILES},
		{"unparseable code", "x", "Q|–04–|Z", "OC1=CC=CC=C1", errors.CodeCompoundInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(0, tt.cname, tt.code, tt.smiles)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
		})
	}
}

func TestHashID_StableAndDistinct(t *testing.T) {
	a := HashID("H–77–H", "compound A")
	assert.Equal(t, a, HashID("H–77–H", "compound A"))
	assert.NotEqual(t, a, HashID("H–77–H", "compound B"))
	assert.NotEqual(t, a, HashID("H–17–H", "compound A"))
	assert.Len(t, a, 8)
}

func TestHashID_CodelessFallsBackToName(t *testing.T) {
	// Without a code the name fills both hash positions, so a codeless
	// compound and one whose code equals its name collide by construction.
	assert.Equal(t, HashID("ampelopsin B", "ampelopsin B"), HashID("", "ampelopsin B"))
	assert.NotEqual(t, HashID("", "ampelopsin B"), HashID("", "ampelopsin F"))
}

func TestValidateSMILES(t *testing.T) {
	assert.NoError(t, ValidateSMILES("OC1=CC(O)=CC(/C=C/C2=CC=C(O)C=C2)=C1"))
	assert.NoError(t, ValidateSMILES("[H][C@@]1([C@@H](C2=C3C=C(C=C2O)O)C(C=C4)=CC=C4O)C5=C([C@H]([C@@]13[H])C(C=C6)=CC=C6O)C(O)=CC(O)=C5"))
	assert.Error(t, ValidateSMILES(""))
	assert.Error(t, ValidateSMILES("C(C"))
	assert.Error(t, ValidateSMILES("C)C"))
	assert.Error(t, ValidateSMILES("C[O"))
}

func TestDTORoundTrip(t *testing.T) {
	c, err := New(3, "x", "H–17–H", "OC1=CC=C(CCC2=CC(O)=CC(O)=C2)C=C1C3=C(CCC4=CC=C(O)C=C4)C=C(O)C=C3O")
	require.NoError(t, err)

	back := FromDTO(c.ToDTO())
	assert.Equal(t, c.Hash, back.Hash)
	assert.Equal(t, c.NormalizedCode, back.NormalizedCode)
	assert.Equal(t, c.SMILES, back.SMILES)
}
