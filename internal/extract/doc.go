// Package extract turns a raw compose document into a model.Application.
//
// Only the top-level services mapping is mandatory. Every other field is read
// defensively: a missing or mistyped optional value falls back to a
// documented default rather than failing the run. The exceptions are port and
// volume strings whose shape violates their grammar, which abort extraction
// with a FieldParseError.
package extract
