package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldExpenseID   = "expense_id"
	FieldCategoryKey = "category_key"
	FieldCurrency    = "currency"
	FieldCount       = "count"
	FieldDeleteMode  = "delete_mode"
	FieldFilename    = "filename"
	FieldRevision    = "revision"
)

// Components defines standard component names.
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentLedger    = "ledger"
	ComponentCodec     = "csv_codec"
	ComponentCache     = "cache"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
	ComponentTrace     = "trace"
)

// Operations defines standard operation names.
const (
	OpAdd       = "add"
	OpEdit      = "edit"
	OpDelete    = "delete"
	OpBatchEdit = "batch_edit"
	OpSelect    = "select"
	OpExport    = "export"
	OpImport    = "import"
	OpRender    = "render"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
