package cnst

const (
	AppName = "booking"
	// CommandName is the root cobra command
	CommandName = "apiserver"
)

// Default configuration paths
const (
	DefaultAPIServerConfigPath = "apiserver.yaml"
)

// Request headers
const (
	// XLang selects the response language
	XLang = "X-Lang"
	// XUserID and XUsername carry the client portal identity
	XUserID   = "X-User-Id"
	XUsername = "X-Username"
	XTraceID  = "X-Trace-Id"

	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
)

// Languages
const (
	LangEN      = "en"
	LangES      = "es"
	LangDefault = LangEN
)

// SupportedLangs are the languages shipped under configs/i18n
var SupportedLangs = []string{LangEN, LangES}

// gin context keys
const (
	CtxKeyClaims   = "claims"
	CtxKeyIdentity = "identity"
	CtxKeyTraceID  = "trace_id"
)
