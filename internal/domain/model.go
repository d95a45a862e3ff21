package domain

// Status classifies one row of a draw diff.
type Status string

const (
	StatusEqual    Status = "EQUAL"
	StatusModified Status = "MODIFIED"
	StatusAdded    Status = "ADDED"
	StatusDeleted  Status = "DELETED"
)

// Confidence describes how trustworthy the alignment behind a row is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// AlignMode names the strategy used to pair draws across two captures.
type AlignMode string

const (
	AlignModeLCS        AlignMode = "lcs"
	AlignModePositional AlignMode = "positional"
)

// Compared field names, in the order they are reported.
const (
	FieldTriangles  = "triangles"
	FieldInstances  = "instances"
	FieldShaderHash = "shader_hash"
	FieldTopology   = "topology"
)

// DrawRecord is one draw or dispatch call extracted from a capture.
// EID is only unique within its own capture.
type DrawRecord struct {
	EID        int64  `json:"eid"`
	Marker     string `json:"marker"`
	ShaderHash string `json:"shader_hash"`
	Topology   string `json:"topology"`
	Triangles  int64  `json:"triangles"`
	Instances  int64  `json:"instances"`
	Pass       string `json:"pass"`
}

// Key returns the alignment key of the record without its occurrence index.
func (r DrawRecord) Key() MatchKey {
	return MatchKey{Marker: r.Marker, ShaderHash: r.ShaderHash, Topology: r.Topology}
}

// MatchKey identifies a draw for alignment. Occurrence counts earlier draws in
// the same capture with the same marker, shader hash and topology.
type MatchKey struct {
	Marker     string
	ShaderHash string
	Topology   string
	Occurrence int
}

// Less orders keys field by field. Used to break LCS ties independently of
// which capture a key came from.
func (k MatchKey) Less(o MatchKey) bool {
	if k.Marker != o.Marker {
		return k.Marker < o.Marker
	}
	if k.ShaderHash != o.ShaderHash {
		return k.ShaderHash < o.ShaderHash
	}
	if k.Topology != o.Topology {
		return k.Topology < o.Topology
	}
	return k.Occurrence < o.Occurrence
}

// AlignedPair links a draw in capture A to a draw in capture B.
// At most one side is nil.
type AlignedPair struct {
	A          *DrawRecord
	B          *DrawRecord
	Confidence Confidence
}

// DrawDiffRow is the comparison result for one aligned pair. Pointer fields are
// nil for the side that does not exist.
type DrawDiffRow struct {
	Status      Status     `json:"status"`
	EIDA        *int64     `json:"eid_a"`
	EIDB        *int64     `json:"eid_b"`
	MarkerA     *string    `json:"marker_a"`
	MarkerB     *string    `json:"marker_b"`
	TrianglesA  *int64     `json:"triangles_a"`
	TrianglesB  *int64     `json:"triangles_b"`
	InstancesA  *int64     `json:"instances_a"`
	InstancesB  *int64     `json:"instances_b"`
	ShaderHashA *string    `json:"shader_hash_a"`
	ShaderHashB *string    `json:"shader_hash_b"`
	TopologyA   *string    `json:"topology_a"`
	TopologyB   *string    `json:"topology_b"`
	Pass        string     `json:"pass"`
	Changed     []string   `json:"changed"`
	Confidence  Confidence `json:"confidence"`
}

// Marker returns the A-side marker, or the B-side one for added draws.
func (r DrawDiffRow) Marker() string {
	if r.MarkerA != nil {
		return *r.MarkerA
	}
	if r.MarkerB != nil {
		return *r.MarkerB
	}
	return ""
}

// DrawDiffResult is the full output of a draw diff.
type DrawDiffResult struct {
	Mode AlignMode     `json:"mode"`
	Rows []DrawDiffRow `json:"rows"`
}

// Counts tallies rows by status.
type Counts struct {
	Equal    int `json:"equal"`
	Modified int `json:"modified"`
	Added    int `json:"added"`
	Deleted  int `json:"deleted"`
}

// Add counts one row with the given status.
func (c *Counts) Add(s Status) {
	switch s {
	case StatusEqual:
		c.Equal++
	case StatusModified:
		c.Modified++
	case StatusAdded:
		c.Added++
	case StatusDeleted:
		c.Deleted++
	}
}

func (c Counts) Total() int { return c.Equal + c.Modified + c.Added + c.Deleted }

// Changed reports the number of non-EQUAL rows.
func (c Counts) Changed() int { return c.Modified + c.Added + c.Deleted }

// PassCounts holds the counts of rows belonging to one render pass.
type PassCounts struct {
	Pass   string `json:"pass"`
	Counts Counts `json:"counts"`
}

// Summary aggregates a draw diff.
type Summary struct {
	Mode   AlignMode    `json:"mode"`
	Counts Counts       `json:"counts"`
	ByPass []PassCounts `json:"by_pass"`
}

// Identical reports whether every row is EQUAL.
func (s Summary) Identical() bool { return s.Counts.Changed() == 0 }
