package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// IsValidID reports whether s is a structurally valid 24-hex-character entity
// identifier. Handlers call this on every identifier taken from a path segment
// or request body before any store lookup, so malformed input surfaces as a
// client error rather than a store error.
func IsValidID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}
