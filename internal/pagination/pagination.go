// Package pagination holds the page math shared by both listing collections.
package pagination

// PageSize bounds records per rendered page.
const PageSize = 3

// TotalPages returns ceil(count / size); zero records mean zero pages.
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Clamp resets an out-of-range requested page to page 1.
// The reset to 1 (rather than the nearest valid page) is deliberate:
// a stale page button after deletions lands the user back at the start.
func Clamp(requested, total int) int {
	if requested < 1 || requested > total {
		return 1
	}
	return requested
}

// Offset converts a 1-based page number into a row offset.
func Offset(page, size int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * size
}
