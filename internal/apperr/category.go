package apperr

import "strings"

// Category is the coarse domain classification of an error
type Category string

const (
	CategoryDatabase       Category = "Database"
	CategoryMigration      Category = "Migration"
	CategoryIO             Category = "IO"
	CategoryConfig         Category = "Config"
	CategoryIconGeneration Category = "IconGeneration"
	CategoryImage          Category = "Image"
	CategoryFileNotFound   Category = "FileNotFound"
	CategoryUnknown        Category = "Unknown"
	CategoryKeyring        Category = "Keyring"
	CategoryKeyGeneration  Category = "KeyGeneration"
	CategoryProject        Category = "Project"
	CategoryIcon           Category = "Icon"
	CategoryConnection     Category = "Connection"
	CategoryValidation     Category = "Validation"
	CategoryAuth           Category = "Auth"
	CategoryEncryption     Category = "Encryption"
)

// Categories lists every category in declaration order
var Categories = []Category{
	CategoryDatabase,
	CategoryMigration,
	CategoryIO,
	CategoryConfig,
	CategoryIconGeneration,
	CategoryImage,
	CategoryFileNotFound,
	CategoryUnknown,
	CategoryKeyring,
	CategoryKeyGeneration,
	CategoryProject,
	CategoryIcon,
	CategoryConnection,
	CategoryValidation,
	CategoryAuth,
	CategoryEncryption,
}

// categoryIndex maps the folded spelling (lowercase, no underscores) to the
// canonical value so both "KeyGeneration" and "KEY_GENERATION" resolve.
var categoryIndex = func() map[string]Category {
	idx := make(map[string]Category, len(Categories))
	for _, c := range Categories {
		idx[fold(string(c))] = c
	}
	return idx
}()

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the defined categories
func (c Category) Valid() bool {
	canonical, ok := categoryIndex[fold(string(c))]
	return ok && canonical == c
}

// ParseCategory resolves a category from its canonical or backend spelling.
func ParseCategory(s string) (Category, bool) {
	c, ok := categoryIndex[fold(s)]
	return c, ok
}

// Severity is the urgency tier of an error; it drives presentation, not category
type Severity string

const (
	SeverityInfo     Severity = "Info"
	SeverityWarning  Severity = "Warning"
	SeverityError    Severity = "Error"
	SeverityCritical Severity = "Critical"
)

// Severities lists every severity from least to most urgent
var Severities = []Severity{SeverityInfo, SeverityWarning, SeverityError, SeverityCritical}

// String returns the string representation of Severity
func (s Severity) String() string {
	return string(s)
}

// Valid reports whether s is one of the defined severities
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return true
	}
	return false
}

// ParseSeverity resolves a severity case-insensitively.
func ParseSeverity(s string) (Severity, bool) {
	for _, sev := range Severities {
		if strings.EqualFold(string(sev), strings.TrimSpace(s)) {
			return sev, true
		}
	}
	return "", false
}

// Subcategories the UI branches on. The backend sends others; they pass through as free-form strings.
const (
	SubAccessDenied       = "AccessDenied"
	SubKeyNotFound        = "KeyNotFound"
	SubKeyringUnavailable = "KeyringUnavailable"
	SubInvalidKey         = "InvalidKey"

	SubGenerationFailed = "GenerationFailed"
	SubStorageFailed    = "StorageFailed"
	SubInvalidKeyLength = "InvalidKeyLength"

	SubNotFound      = "NotFound"
	SubInvalidName   = "InvalidName"
	SubInvalidPath   = "InvalidPath"
	SubAlreadyExists = "AlreadyExists"

	SubConnectionFailed = "ConnectionFailed"
	SubTimeout          = "Timeout"
	SubRefused          = "Refused"
	SubProtocolError    = "ProtocolError"

	SubHookUsage     = "HookUsage"
	SubInvalidFormat = "InvalidFormat"
)

func fold(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
}
