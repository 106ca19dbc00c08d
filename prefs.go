package tipbox

import "strconv"

// Preferences holds UI flags that live next to the editor state.
type Preferences struct {
	storage Storage
}

// NewPreferences wraps a storage.
func NewPreferences(storage Storage) *Preferences {
	return &Preferences{storage: storage}
}

// DarkMode reads the dark-mode flag. Missing or malformed values are false.
func (p *Preferences) DarkMode() bool {
	raw, ok, err := p.storage.Get(KeyDarkMode)
	if err != nil || !ok {
		return false
	}
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

// SetDarkMode writes the dark-mode flag.
func (p *Preferences) SetDarkMode(on bool) error {
	return p.storage.Set(KeyDarkMode, strconv.FormatBool(on))
}

// ToggleDarkMode flips the flag and returns the new value.
func (p *Preferences) ToggleDarkMode() (bool, error) {
	on := !p.DarkMode()
	return on, p.SetDarkMode(on)
}
