package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile      = "file"
	FieldFileID    = "file_id"
	FieldLineID    = "line_id"
	FieldMovement  = "movement_id"
	FieldIdentity  = "identity"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldCount     = "count"
	FieldPage      = "page"
	FieldVersion   = "version"
	FieldTerm      = "term"
	FieldCategory  = "category"
	FieldDuration  = "duration_ms"
)
