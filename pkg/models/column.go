package models

// ColumnSpec is one emitted column of a record schema. Glue and parquet
// schemas share the same column list, so one spec carries both type names.
type ColumnSpec struct {
	Name        string `json:"name"`
	GlueType    string `json:"glue_type"`
	ParquetType string `json:"parquet_type"`
	// UTF8 tells that the parquet physical type carries a UTF8
	// converted-type annotation.
	UTF8     bool   `json:"utf8,omitempty"`
	Optional bool   `json:"optional,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// PartitionKeyKind tags one entry of a partition key specification.
type PartitionKeyKind int

const (
	// PartitionKeyYear is the year segment of a date index field.
	PartitionKeyYear PartitionKeyKind = iota + 1
	// PartitionKeyMonth is the month segment of a date index field.
	PartitionKeyMonth
	// PartitionKeyDay is the day segment of a date index field.
	PartitionKeyDay
	// PartitionKeyField is an index-flagged field used as-is.
	PartitionKeyField
)

// PartitionKey is one entry of the ordered partition key specification.
// Source holds the emitted name of the originating field. For date segments
// Source is the date index field, for plain index entries it equals Name.
type PartitionKey struct {
	Kind   PartitionKeyKind `json:"kind"`
	Name   string           `json:"name"`
	Source string           `json:"source"`
}

// IsDatePart returns true for year/month/day entries.
func (x PartitionKey) IsDatePart() bool {
	return x.Kind == PartitionKeyYear || x.Kind == PartitionKeyMonth || x.Kind == PartitionKeyDay
}

// PartitionKeySpec is the ordered partition key list of one record type.
// It is computed once per type and read concurrently at runtime.
type PartitionKeySpec []PartitionKey

// DateIndexSource returns the emitted name of the date index field, or ""
// if the spec has no date segments.
func (x PartitionKeySpec) DateIndexSource() string {
	for _, p := range x {
		if p.Kind == PartitionKeyYear {
			return p.Source
		}
	}
	return ""
}

// PartitionValue is one rendered "name=value" pair of a storage path.
type PartitionValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TableSchema is the immutable generation result of one record type. Only
// the artifacts selected by OutputOptions are filled.
type TableSchema struct {
	TableName     string           `json:"table_name"`
	GlueSchema    string           `json:"glue_schema,omitempty"`
	ParquetSchema string           `json:"parquet_schema,omitempty"`
	Columns       []ColumnSpec     `json:"columns"`
	PartitionKeys PartitionKeySpec `json:"partition_keys,omitempty"`
}
