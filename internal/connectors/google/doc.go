// Package google provides shared infrastructure for the Google Drive
// document store.
//
// This package contains:
//   - Client options for service account, authorized-user or default
//     credentials
//   - Service factories for the Drive and Docs APIs
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//   - OAuth helpers that turn a user login into an authorized-user
//     credentials file
//
// # OAuth2 Scopes
//
// The Drive store only reads:
//   - https://www.googleapis.com/auth/drive.readonly
//   - https://www.googleapis.com/auth/documents.readonly
package google
