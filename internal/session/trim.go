package session

// Trim keeps the newest max entries of items in their original order.
// The result never shares a backing array with items once trimming happens.
func Trim[T any](items []T, max int) []T {
	if max <= 0 {
		return nil
	}
	if len(items) <= max {
		return items
	}
	return append([]T(nil), items[len(items)-max:]...)
}
