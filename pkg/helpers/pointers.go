// Package helpers provides common utility functions used across the project.
package helpers

// PtrOf creates a pointer to any value type.
//
// Input: T value of any type
// Output: *T pointer to the value
// Behavior: Generic helper for creating pointers to any type, useful for optional config fields
//
// Example:
//
//	config.Temperature = helpers.PtrOf(float32(0.7)) // *float32
//	config.BatchSize = helpers.PtrOf(500)            // *int
func PtrOf[T any](t T) *T { return &t }
