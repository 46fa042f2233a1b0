// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package gdsfilter provides the search/filter predicate shared by the
// channels, command-send, and events commands.
package gdsfilter

import "strings"

// Filter restricts which channels, commands, or events are of interest.
//
// The zero value matches everything. Each populated field must match;
// within the IDs and Components fields, any one element matching suffices.
type Filter struct {
	// IDs are numeric IDs to match.
	IDs []uint32
	// Components are component names to match ("<component>" in "<component>.<name>").
	Components []string
	// Search is a substring that must appear in the item's printed text.
	Search string
}

// IsEmpty reports whether the filter matches everything.
func (f Filter) IsEmpty() bool {
	return len(f.IDs) == 0 && len(f.Components) == 0 && f.Search == ""
}

// Matches reports whether an item with the given ID, full name, and printed
// text passes the filter. The component is the part of the full name before
// the first dot.
func (f Filter) Matches(id uint32, fullName string, text string) bool {
	if len(f.IDs) > 0 && !containsID(f.IDs, id) {
		return false
	}
	if len(f.Components) > 0 && !containsComponent(f.Components, fullName) {
		return false
	}
	if f.Search != "" && !strings.Contains(text, f.Search) {
		return false
	}
	return true
}

// *** PRIVATE ***

func containsID(ids []uint32, id uint32) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func containsComponent(components []string, fullName string) bool {
	component, _, _ := strings.Cut(fullName, ".")
	for _, candidate := range components {
		if candidate == component {
			return true
		}
	}
	return false
}
