// Package assets serves the game client's static files from object storage.
//
// The login and signup pages the game client loads are published to an
// S3/MinIO bucket by the frontend pipeline; this feature streams them
// through the API host so the client only needs one origin.
//
// # HTTP Endpoints
//
//   - GET /assets/* : streams the requested object, 404 when absent.
package assets
