// Package errors provides structured error types for better observability
// and programmatic error handling across the audit pipeline.
//
// Every failure the pipeline surfaces carries one of a small set of codes:
// NOT_FOUND for missing files and directories, PARSE_ERROR for malformed
// snapshot or model content, INVALID_STATE for model operations invoked
// before fit, and INVALID_INPUT for feature tables of the wrong shape.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeParse,
//	    "invalid snapshot content",
//	    cause,
//	    map[string]any{"path": path},
//	)
//
//	if errors.IsCode(err, errors.ErrCodeNotFound) {
//	    // ...
//	}
package errors
