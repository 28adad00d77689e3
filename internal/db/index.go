package db

// StorageType selects the key type an FT index is built over.
type StorageType string

// Supported storage types.
const (
	StorageHash StorageType = "HASH"
)

// IndexFieldType enumerates FT schema field types.
type IndexFieldType string

// Supported field types.
const (
	IndexFieldText    IndexFieldType = "TEXT"
	IndexFieldTag     IndexFieldType = "TAG"
	IndexFieldNumeric IndexFieldType = "NUMERIC"
	IndexFieldVector  IndexFieldType = "VECTOR"
)

// VectorAlgo enumerates vector index algorithms.
type VectorAlgo string

// Supported vector algorithms.
const (
	VectorFlat VectorAlgo = "FLAT"
	VectorHNSW VectorAlgo = "HNSW"
)

// VectorDistance enumerates vector distance metrics.
type VectorDistance string

// Supported distance metrics.
const (
	DistanceCosine VectorDistance = "COSINE"
	DistanceL2     VectorDistance = "L2"
)

// IndexDefinition describes an FT index to create.
type IndexDefinition struct {
	Name        string
	StorageType StorageType
	Prefixes    []string
	Fields      []IndexField
}

// IndexField describes a single schema field.
type IndexField struct {
	Name  string
	Alias string
	Type  IndexFieldType

	// TEXT options.
	TextWeight float64
	NoStem     bool

	// TAG options.
	TagSeparator     string
	TagCaseSensitive bool

	// VECTOR options.
	VectorAlgo        VectorAlgo
	VectorDim         int
	VectorDistance    VectorDistance
	VectorM           int
	VectorEFConstruct int
}
