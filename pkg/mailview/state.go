// Package mailview holds the email list state and renders it into a view model.
package mailview

import "github.com/tmviewer/tmviewer/pkg/testmail"

// Body names one of the two email body representations.  It selects both the detail tab and
// the body handed to the clipboard.
type Body string

const (
	BodyHTML Body = "html"
	BodyText Body = "text"
)

// ParseBody returns the Body named by s.
func ParseBody(s string) (Body, bool) {
	switch Body(s) {
	case BodyHTML, BodyText:
		return Body(s), true
	}
	return "", false
}

// ListState is the last fetched page of emails plus the accordion state.  At most one item is
// expanded at a time.  The zero value is an empty, fully collapsed list.  ListState is not safe
// for concurrent use.
type ListState struct {
	items       []testmail.Email
	expanded    int
	hasExpanded bool
	tab         Body
}

// NewListState returns an empty list.
func NewListState() *ListState {
	return &ListState{}
}

// Replace swaps in a new page of emails and collapses everything.  Server order is kept.
func (s *ListState) Replace(items []testmail.Email) {
	if items == nil {
		items = []testmail.Email{}
	}
	s.items = items
	s.collapse()
}

// Toggle collapses index if it is expanded, otherwise expands it, collapsing any other item.
// Out of range indexes are ignored.
func (s *ListState) Toggle(index int) {
	if index < 0 || index >= len(s.items) {
		return
	}
	if s.hasExpanded && s.expanded == index {
		s.collapse()
		return
	}
	s.expanded = index
	s.hasExpanded = true
	s.tab = BodyHTML
}

// SetTab selects the detail tab of the expanded item.  It does nothing for any other index.
func (s *ListState) SetTab(index int, tab Body) {
	if !s.hasExpanded || s.expanded != index {
		return
	}
	if _, ok := ParseBody(string(tab)); !ok {
		return
	}
	s.tab = tab
}

func (s *ListState) collapse() {
	s.expanded = 0
	s.hasExpanded = false
	s.tab = ""
}

// Items returns the current page of emails.  The slice must not be modified.
func (s *ListState) Items() []testmail.Email {
	return s.items
}

// Len returns the number of emails held.
func (s *ListState) Len() int {
	return len(s.items)
}

// Item returns the email at index.
func (s *ListState) Item(index int) (testmail.Email, bool) {
	if index < 0 || index >= len(s.items) {
		return testmail.Email{}, false
	}
	return s.items[index], true
}

// Expanded returns the index of the expanded item, if any.
func (s *ListState) Expanded() (int, bool) {
	return s.expanded, s.hasExpanded
}

// Tab returns the active detail tab of the expanded item, or "" when nothing is expanded.
func (s *ListState) Tab() Body {
	return s.tab
}
