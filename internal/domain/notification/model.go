package notification

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Preferences are the per-user notification switches.
type Preferences struct {
	EmailReminders    bool `json:"emailReminders"`
	EmailScoreUpdates bool `json:"emailScoreUpdates"`
	PushReminders     bool `json:"pushReminders"`
	PushScoreUpdates  bool `json:"pushScoreUpdates"`
}

// DefaultPreferences has every channel enabled, as new accounts do.
func DefaultPreferences() Preferences {
	return Preferences{
		EmailReminders:    true,
		EmailScoreUpdates: true,
		PushReminders:     true,
		PushScoreUpdates:  true,
	}
}

// Channel is a delivery channel a test notification can be sent on.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

// TestRequest is the body of a test notification.
type TestRequest struct {
	Type Channel `json:"type" validate:"required,oneof=email push"`
}

// Keys lists the preference names accepted by Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for key := range setters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var setters = map[string]func(*Preferences, bool){
	"emailReminders":    func(p *Preferences, v bool) { p.EmailReminders = v },
	"emailScoreUpdates": func(p *Preferences, v bool) { p.EmailScoreUpdates = v },
	"pushReminders":     func(p *Preferences, v bool) { p.PushReminders = v },
	"pushScoreUpdates":  func(p *Preferences, v bool) { p.PushScoreUpdates = v },
}

// Set applies one "key=bool" assignment.
func (p *Preferences) Set(assignment string) error {
	key, raw, ok := strings.Cut(assignment, "=")
	if !ok {
		return fmt.Errorf("expected key=bool, got %q", assignment)
	}
	setter, found := setters[strings.TrimSpace(key)]
	if !found {
		return fmt.Errorf("unknown preference %q, want one of %s", key, strings.Join(Keys(), ", "))
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("preference %s: %q is not a boolean", key, raw)
	}
	setter(p, value)
	return nil
}
