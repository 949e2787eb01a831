package ui

// LoadingLabel replaces a button's label while its action runs
const LoadingLabel = "Loading..."

// Button is the state of a clickable control
type Button struct {
	Label    string
	Disabled bool

	originalLabel string
}

// SetButtonLoading swaps the label for LoadingLabel and disables the button,
// or restores the saved label and re-enables it. A nil button is ignored.
func SetButtonLoading(b *Button, loading bool) {
	if b == nil {
		return
	}
	if loading {
		b.originalLabel = b.Label
		b.Label = LoadingLabel
		b.Disabled = true
		return
	}
	if b.originalLabel != "" {
		b.Label = b.originalLabel
	}
	b.Disabled = false
}
