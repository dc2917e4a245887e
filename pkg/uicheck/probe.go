package uicheck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMatch is returned when no selector in a chain matches.
var ErrNoMatch = errors.New("no element matched")

// FirstMatch tries selectors in order and returns the first element found
// together with the selector that matched it.
func FirstMatch(page Page, selectors []string) (Element, string, error) {
	for _, sel := range selectors {
		el, err := page.QuerySelector(sel)
		if err != nil {
			return nil, "", fmt.Errorf("query %s: %w", sel, err)
		}
		if el != nil {
			return el, sel, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrNoMatch, strings.Join(selectors, ", "))
}

// CountMatches counts the elements matching any of selectors. The chain is
// queried as one selector list, so an element matched twice counts once.
func CountMatches(page Page, selectors []string) (int, error) {
	list := strings.Join(selectors, ", ")
	els, err := page.QuerySelectorAll(list)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", list, err)
	}
	return len(els), nil
}
