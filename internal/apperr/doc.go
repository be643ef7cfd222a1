package apperr

// Package apperr defines the canonical error record surfaced to the UI: a
// category, a severity, a non-empty message, and optional subcategory and
// context. Normalize turns any failure value produced by the backend boundary,
// form validation or OAuth calls into that record.
