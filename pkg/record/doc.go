// Package record defines the schemaless records kept in the store and the
// typed views the suggestion engine works on.
//
// A Record is a flat map keyed by attribute name with an "id" field. Two
// views are derived from it:
//
//   - Candidate: a food whose attributes are truthy/falsy flags
//   - Preference: a user whose attributes are integer weights
//
// Records written by older clients may carry the identifier under
// "identifier"; Normalize folds it into "id".
package record
