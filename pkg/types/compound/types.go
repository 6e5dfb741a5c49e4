// Package compound defines the data transfer objects exchanged between the
// compound library, the conversion service, and the HTTP/CLI surfaces.
package compound

// ConversionMethod identifies which strategy produced a SMILES string.
type ConversionMethod string

const (
	// MethodLookup is an exact match of the normalized code against the
	// curated library index.
	MethodLookup ConversionMethod = "lookup"

	// MethodLookupRaw is an exact match of the cleaned but un-normalized
	// input (spaces stripped, dashes left as typed).
	MethodLookupRaw ConversionMethod = "lookup_raw"

	// MethodNumber resolves an all-digit input as a 1-based compound
	// sequence number.
	MethodNumber ConversionMethod = "number"

	// MethodTemplate is the component-based construction fallback, covering
	// only a handful of linkage shapes.
	MethodTemplate ConversionMethod = "template"
)

// String returns the string representation of the conversion method.
func (m ConversionMethod) String() string { return string(m) }

// CompoundDTO is the wire representation of a library compound.
type CompoundDTO struct {
	Hash   string `json:"hash"`
	Seq    int    `json:"seq"`
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
	SMILES string `json:"smiles"`
}

// ConversionResult is the outcome of a single StilBAR → SMILES conversion.
type ConversionResult struct {
	Code       string           `json:"code"`
	Normalized string           `json:"normalized"`
	SMILES     string           `json:"smiles"`
	Method     ConversionMethod `json:"method"`
	Confidence float64          `json:"confidence"`
	Compound   *CompoundDTO     `json:"compound,omitempty"`
}

// BatchItemStatus is the per-code outcome in a batch conversion.
type BatchItemStatus string

const (
	BatchItemSuccess BatchItemStatus = "success"
	BatchItemFailed  BatchItemStatus = "failed"
)

// BatchItem is one row of a batch conversion result.
type BatchItem struct {
	Code       string           `json:"code"`
	SMILES     string           `json:"smiles,omitempty"`
	Method     ConversionMethod `json:"method,omitempty"`
	Confidence float64          `json:"confidence"`
	Status     BatchItemStatus  `json:"status"`
	Error      string           `json:"error,omitempty"`
}

// BatchSummary aggregates a batch conversion run.
type BatchSummary struct {
	Total       int     `json:"total"`
	Succeeded   int     `json:"succeeded"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"success_rate"`
}

// BatchResult is the complete outcome of a batch conversion.
type BatchResult struct {
	JobID     string       `json:"job_id,omitempty"`
	Items     []BatchItem  `json:"items"`
	Summary   BatchSummary `json:"summary"`
	ExportURL string       `json:"export_url,omitempty"`
}

// BatchJobState tracks an asynchronous batch conversion job.
type BatchJobState string

const (
	BatchJobQueued    BatchJobState = "queued"
	BatchJobRunning   BatchJobState = "running"
	BatchJobCompleted BatchJobState = "completed"
	BatchJobFailed    BatchJobState = "failed"
)

// LibraryStats summarizes the compound library, mirroring the stats the
// original curators tracked: total rows, rows with a StilBAR code, and rows
// without one.
type LibraryStats struct {
	Total       int `json:"total"`
	WithCode    int `json:"with_code"`
	WithoutCode int `json:"without_code"`
}

// Properties holds heuristic physicochemical descriptor estimates for a
// SMILES string.  Exact descriptor computation is delegated to an external
// chemistry toolkit; these estimates exist so the library view can rank and
// filter without that dependency.
type Properties struct {
	Formula        string  `json:"formula"`
	Weight         float64 `json:"weight"`
	LogP           float64 `json:"log_p"`
	TPSA           float64 `json:"tpsa"`
	HBondDonors    int     `json:"h_bond_donors"`
	HBondAcceptors int     `json:"h_bond_acceptors"`
	RotatableBonds int     `json:"rotatable_bonds"`
	AromaticRings  int     `json:"aromatic_rings"`
	HeavyAtoms     int     `json:"heavy_atoms"`
}

// LipinskiAssessment reports rule-of-five compliance for a molecule.
type LipinskiAssessment struct {
	Violations int      `json:"violations"`
	Passed     bool     `json:"passed"`
	Rules      []string `json:"rules"`
}

// SimilarityMatch is one hit from a library similarity search.
type SimilarityMatch struct {
	Compound   CompoundDTO `json:"compound"`
	Similarity float64     `json:"similarity"`
}
