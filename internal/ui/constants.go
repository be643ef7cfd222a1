package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconClose = "×"
	IconKey   = "🔑"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Window sizing
const (
	WindowWidth  float32 = 1000
	WindowHeight float32 = 680

	AuthCardWidth float32 = 360
	DialogWidth   float32 = 520
	DialogHeight  float32 = 460
)

// Toast notification sizing
const (
	ToastWidth  float32 = 320
	ToastHeight float32 = 96
	ToastMargin float32 = 20
	ToastGap    float32 = 8
)
