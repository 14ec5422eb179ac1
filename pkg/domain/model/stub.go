package model

import "strings"

// IsStub reports whether a category list marks the page as a stub.
// A category qualifies when it contains "stub", or both "article" and "quality",
// case-insensitively. This is a substring heuristic, not a taxonomy lookup.
func IsStub(categories []string) bool {
	for _, category := range categories {
		c := strings.ToLower(category)
		if strings.Contains(c, "stub") {
			return true
		}
		if strings.Contains(c, "article") && strings.Contains(c, "quality") {
			return true
		}
	}
	return false
}

// DefaultStubCategories is the category list served when none is configured
func DefaultStubCategories() []string {
	return []string{
		"Category:Stub categories",
		"Category:Geography stubs",
		"Category:History stubs",
		"Category:Science stubs",
		"Category:Technology stubs",
		"Category:Arts stubs",
		"Category:Biography stubs",
		"Category:Philosophy stubs",
		"Category:Politics stubs",
		"Category:Society stubs",
		"Category:Sports stubs",
	}
}
