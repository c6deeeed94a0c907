// Package http exposes the panel manager and layout sessions over REST.
//
// Mutating endpoints answer with the resulting panel snapshot. Operations
// on unknown panel ids are no-ops and still return 200 with the unchanged
// snapshot; only single-item reads report 404.
package http
