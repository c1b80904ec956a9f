package mlx

import "strings"

// FailureKind buckets engine failures into user-facing categories.
type FailureKind int

const (
	FailureGeneric FailureKind = iota
	FailureNotFound
	FailureNetwork
	FailureDiskSpace
)

// ClassifyFailure maps raw engine error text onto a FailureKind. The engine
// only yields unstructured text, so this stays a substring heuristic, kept
// in one place so callers share a single mapping.
func ClassifyFailure(msg string) FailureKind {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "404") || strings.Contains(lower, "not found"):
		return FailureNotFound
	case strings.Contains(lower, "connection") || strings.Contains(lower, "network"):
		return FailureNetwork
	case strings.Contains(lower, "disk") || strings.Contains(lower, "space"):
		return FailureDiskSpace
	default:
		return FailureGeneric
	}
}
