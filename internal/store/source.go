// Package store defines the result envelope shared by the resilient
// repositories. Every read or write reports where it actually settled, so
// callers can make durability decisions without inspecting errors.
package store

// Source tells which store served an operation.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Result pairs a value with the store that produced it.
type Result[T any] struct {
	Value  T
	Source Source
}

func Remote[T any](v T) Result[T] { return Result[T]{Value: v, Source: SourceRemote} }
func Local[T any](v T) Result[T]  { return Result[T]{Value: v, Source: SourceLocal} }
