package writer

// Export for testing
var (
	ColumnValue = columnValue
	TimeToINT96 = timeToINT96
)
