package toast

import (
	"time"

	"github.com/google/uuid"

	"github.com/deweydb/dewey/internal/apperr"
)

// Localization keys for notification titles and actions
const (
	KeyTitleEncryptionKey  = "toast_title_encryption_key"
	KeyTitleFileNotFound   = "toast_title_file_not_found"
	KeyTitleDatabase       = "toast_title_database"
	KeyTitleFileSystem     = "toast_title_file_system"
	KeyTitleConfiguration  = "toast_title_configuration"
	KeyTitleImage          = "toast_title_image"
	KeyTitleProject        = "toast_title_project"
	KeyTitleProjectMissing = "toast_title_project_not_found"
	KeyTitleConnection     = "toast_title_connection"
	KeyTitleValidation     = "toast_title_validation"
	KeyTitleAuth           = "toast_title_auth"
	KeyTitleEncryption     = "toast_title_encryption"
	KeyTitleDefault        = "toast_title_default"
	KeyActionSetUp         = "toast_action_set_up"
)

// DefaultOnboardingPath is where the key-setup action navigates
const DefaultOnboardingPath = "/onboarding"

type title struct {
	key      string
	text     string
	setupKey bool // offers the "Set Up" action
}

var categoryTitles = map[apperr.Category]title{
	apperr.CategoryKeyring:        {KeyTitleEncryptionKey, "Encryption Key Error", true},
	apperr.CategoryKeyGeneration:  {KeyTitleEncryptionKey, "Encryption Key Error", true},
	apperr.CategoryFileNotFound:   {KeyTitleFileNotFound, "File Not Found", false},
	apperr.CategoryDatabase:       {KeyTitleDatabase, "Database Error", false},
	apperr.CategoryMigration:      {KeyTitleDatabase, "Database Error", false},
	apperr.CategoryIO:             {KeyTitleFileSystem, "File System Error", false},
	apperr.CategoryConfig:         {KeyTitleConfiguration, "Configuration Error", false},
	apperr.CategoryIconGeneration: {KeyTitleImage, "Image Processing Error", false},
	apperr.CategoryImage:          {KeyTitleImage, "Image Processing Error", false},
	apperr.CategoryIcon:           {KeyTitleImage, "Image Processing Error", false},
	apperr.CategoryProject:        {KeyTitleProject, "Project Error", false},
	apperr.CategoryConnection:     {KeyTitleConnection, "Connection Error", false},
	apperr.CategoryValidation:     {KeyTitleValidation, "Validation Error", false},
	apperr.CategoryAuth:           {KeyTitleAuth, "Authentication Error", false},
	apperr.CategoryEncryption:     {KeyTitleEncryption, "Encryption Error", false},
}

type categorySub struct {
	category    apperr.Category
	subcategory string
}

// subcategoryTitles take precedence over categoryTitles
var subcategoryTitles = map[categorySub]title{
	{apperr.CategoryProject, apperr.SubNotFound}: {KeyTitleProjectMissing, "Project Not Found", false},
}

var defaultTitle = title{KeyTitleDefault, "Error", false}

var severityDurations = map[apperr.Severity]time.Duration{
	apperr.SeverityCritical: 10 * time.Second,
	apperr.SeverityError:    5 * time.Second,
	apperr.SeverityWarning:  3 * time.Second,
	apperr.SeverityInfo:     2 * time.Second,
}

const defaultDuration = 5 * time.Second

var severityVariants = map[apperr.Severity]Variant{
	apperr.SeverityInfo:     VariantInfo,
	apperr.SeverityWarning:  VariantWarning,
	apperr.SeverityError:    VariantError,
	apperr.SeverityCritical: VariantError,
}

// Policy derives the presentation of a canonical error
type Policy struct {
	// Translate resolves a localization key; nil keeps the English text.
	Translate func(key, fallback string) string

	// Navigator receives the key-setup navigation; nil disables the action.
	Navigator Navigator

	// OnboardingPath defaults to DefaultOnboardingPath.
	OnboardingPath string
}

// Duration returns how long a notification of the given severity stays visible
func Duration(s apperr.Severity) time.Duration {
	if d, ok := severityDurations[s]; ok {
		return d
	}
	return defaultDuration
}

// VariantFor returns the display channel of the given severity
func VariantFor(s apperr.Severity) Variant {
	if v, ok := severityVariants[s]; ok {
		return v
	}
	return VariantError
}

// Title returns the English title and its localization key for a category and optional subcategory
func Title(c apperr.Category, subcategory string) (key, text string) {
	t := lookupTitle(c, subcategory)
	return t.key, t.text
}

func lookupTitle(c apperr.Category, subcategory string) title {
	if subcategory != "" {
		if t, ok := subcategoryTitles[categorySub{c, subcategory}]; ok {
			return t
		}
	}
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return defaultTitle
}

// Build converts a canonical error into a notification
func (p Policy) Build(e *apperr.Error) Notification {
	t := lookupTitle(e.Category, e.Subcategory)
	n := Notification{
		ID:          uuid.New(),
		Title:       p.translate(t.key, t.text),
		Description: e.Message,
		Variant:     VariantFor(e.Severity),
		Duration:    Duration(e.Severity),
	}
	if t.setupKey && p.Navigator != nil {
		target := p.OnboardingPath
		if target == "" {
			target = DefaultOnboardingPath
		}
		nav := p.Navigator
		n.Action = &Action{
			Label:   p.translate(KeyActionSetUp, "Set Up"),
			OnClick: func() { nav.Navigate(target, false) },
		}
	}
	return n
}

func (p Policy) translate(key, fallback string) string {
	if p.Translate == nil {
		return fallback
	}
	if s := p.Translate(key, fallback); s != "" {
		return s
	}
	return fallback
}
