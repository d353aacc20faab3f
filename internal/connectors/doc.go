// Package connectors groups the DocumentStore implementations the index
// builder reads from. Each subpackage covers one backend:
//
//   - filesystem: a local directory tree
//   - github: a directory tree in a GitHub repository
//   - google/drive: a Google Drive folder tree of Google Docs
//
// cmd/kbbot picks one from the index.backend setting.
package connectors
