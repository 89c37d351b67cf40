// Package navigation models the portal's section/action state machine with
// locale independent identifiers.
package navigation

import "github.com/AnshRaj112/heritage-backend/internal/locale"

type Section string

const (
	Home    Section = "home"
	Stories Section = "stories"
	Places  Section = "places"
)

type Action string

const (
	Submit Action = "submit"
	Read   Action = "read"
)

// Sections lists the selectable sections in display order.
var Sections = []Section{Home, Stories, Places}

// Actions lists the actions available inside a non-Home section.
var Actions = []Action{Submit, Read}

// State is the current position in the shell. Action is empty for Home.
type State struct {
	Section Section
	Action  Action
}

// Parse resolves raw path values to a State. Unknown sections fall back to
// Home and unknown actions to Submit.
func Parse(section, action string) State {
	s := Section(section)
	switch s {
	case Stories, Places:
	default:
		return State{Section: Home}
	}
	a := Action(action)
	switch a {
	case Submit, Read:
	default:
		a = Submit
	}
	return State{Section: s, Action: a}
}

// Valid reports whether section and action name a known state exactly.
func Valid(section, action string) bool {
	st := Parse(section, action)
	return string(st.Section) == section && string(st.Action) == action
}

// Path returns the canonical URL of the state.
func (s State) Path() string {
	if s.Section == Home || s.Section == "" {
		return "/"
	}
	return "/" + string(s.Section) + "/" + string(s.Action)
}

// Select moves to another section. Choosing a non-Home section keeps the
// current action when there is one.
func (s State) Select(section Section) State {
	if section == Home {
		return State{Section: Home}
	}
	action := s.Action
	if action == "" {
		action = Submit
	}
	return Parse(string(section), string(action))
}

// Choose switches the action inside the current section. It has no effect on Home.
func (s State) Choose(action Action) State {
	if s.Section == Home || s.Section == "" {
		return State{Section: Home}
	}
	return Parse(string(s.Section), string(action))
}

// Label returns the display label of a section.
func (s Section) Label(l locale.Locale) string {
	switch s {
	case Stories:
		return locale.Text(l, locale.KeySectionStories)
	case Places:
		return locale.Text(l, locale.KeySectionPlaces)
	}
	return locale.Text(l, locale.KeySectionHome)
}

// Label returns the display label of an action.
func (a Action) Label(l locale.Locale) string {
	if a == Read {
		return locale.Text(l, locale.KeyActionRead)
	}
	return locale.Text(l, locale.KeyActionSubmit)
}
