// Package model defines the intermediate representation shared by the
// extraction, classification and synthesis stages.
//
// An Application is built once per conversion run from a compose document.
// The classifier returns annotated copies instead of mutating its input, and
// detected patterns and manifest sets are derived per run.
package model
