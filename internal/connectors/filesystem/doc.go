// Package filesystem reads a local directory tree as a document store.
//
// Directories are folders and text, markdown and HTML files are
// documents. Identifiers are absolute paths with symlinks resolved, so a
// link back to an ancestor is recognised as an already visited folder.
// Hidden files and directories are ignored.
package filesystem
