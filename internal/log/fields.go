package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldAccount   = "account"
	FieldRecipient = "recipient"
	FieldRange     = "range"
	FieldRows      = "rows"
	FieldSubject   = "subject"
	FieldMode      = "mode"
	FieldPort      = "port"
	FieldTemplate  = "template"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentConfig    = "config"
	ComponentSheets    = "sheets"
	ComponentReport    = "report"
	ComponentRender    = "render"
	ComponentMail      = "mail"
	ComponentHoroscope = "horoscope"
	ComponentHistory   = "history"
	ComponentDebug     = "debug"
)
