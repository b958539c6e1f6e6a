// Package errors provides structured error types used across Flavor Buddy.
//
// Every failure that can reach a caller carries a closed ErrorCode so the
// response layer can map it to a status without inspecting messages:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeStorage,
//	    "failed to scan candidates",
//	    cause,
//	    map[string]any{
//	        "collection": "foods",
//	    },
//	)
//
// CodeOf extracts the code from any error chain and falls back to
// ErrCodeInternal for plain errors.
package errors
