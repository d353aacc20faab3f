// Package github reads a directory tree of a GitHub repository as a
// document store.
//
// Directories are folders and markdown or text files are documents.
// Identifiers are repository paths without a leading slash; the repository
// root is "/". Documents link to their blob page on github.com.
//
// # Authentication
//
// Public repositories can be read without a token, within GitHub's limit
// of 60 requests per hour. A personal access token raises the limit to
// 5,000 per hour and is required for private repositories.
//
// # Rate Limiting
//
// Requests are throttled proactively with a token bucket, and the
// X-RateLimit-Remaining and X-RateLimit-Reset headers are tracked so that
// a build waits for the reset instead of failing once the quota runs low.
package github
