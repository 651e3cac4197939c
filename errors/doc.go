/*
Package errors provides semantic error types for the TableRepo library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper
functions.

Common Errors:

	var (
	    ErrNotFound      = errors.New("record not found")
	    ErrAlreadyExists = errors.New("record already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	    ErrConflict      = errors.New("version conflict")
	)

Usage:

	err := repo.Update(ctx, record)
	if err != nil {
	    if errors.IsConflict(err) {
	        // Re-read the record and retry with the fresh version tag
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewValidationError("tableName", "must not be empty")
	err := errors.NewConflictError("update", "P1/R1")

Note that a point read of a nonexistent identity is not an error: the
repository returns nil, nil. ErrNotFound exists for callers and mocks that
need to signal absence explicitly.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
