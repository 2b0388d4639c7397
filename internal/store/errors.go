package store

import "errors"

var (
	// ErrSelectionRequired is returned by Start, Stop and AddSession
	// when no actor and/or category is currently selected. The UI keeps
	// the relevant controls disabled, but the store enforces the
	// precondition on its own.
	ErrSelectionRequired = errors.New("an actor and a category must be selected")

	// ErrProtectedCategory is returned by RemoveCategory for the
	// built-in default categories.
	ErrProtectedCategory = errors.New("default categories cannot be removed")
)
