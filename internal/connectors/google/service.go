package google

import (
	"context"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Scopes requested by the Drive document store.
var Scopes = []string{
	drive.DriveReadonlyScope,
	docs.DocumentsReadonlyScope,
}

// ClientOptions returns options authenticating with credentialsFile, a
// service account or authorized-user JSON file. An empty path falls back to
// Application Default Credentials.
func ClientOptions(credentialsFile string) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(Scopes...)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	return opts
}

// NewDriveService creates a Google Drive API service.
func NewDriveService(ctx context.Context, opts ...option.ClientOption) (*drive.Service, error) {
	return drive.NewService(ctx, opts...)
}

// NewDocsService creates a Google Docs API service.
func NewDocsService(ctx context.Context, opts ...option.ClientOption) (*docs.Service, error) {
	return docs.NewService(ctx, opts...)
}
