// Package http exposes the landing page services over net/http.
//
// Routes mount under the configured base path (default none):
//   - Landing pages: /landing-pages, /landing-pages/{id}
//   - Content: /landing-pages/{id}/content, /landing-pages/{id}/generate
//   - Output: /landing-pages/{id}/preview, /landing-pages/{id}/export,
//     /landing-pages/{id}/publish, /landing-pages/{id}/archive
//   - Assets: /assets/{bucket}
//   - WordPress: /wordpress/test
//   - Editing sessions: /sessions, /sessions/{id}, /sessions/{id}/operations,
//     /sessions/{id}/preview, /sessions/{id}/save
//
// Public pages (/p/{slug}) and stored objects
// (/storage/v1/object/public/{bucket}/{path...}) always mount at the root.
package http
