// Package normalisers turns raw document bodies into paragraphs, one
// implementation per format. Connectors pick a normaliser by MIME type
// through a Registry.
package normalisers
