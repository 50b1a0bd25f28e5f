// Package models defines the typed payload contracts of the column API and
// the entities held by the client-side cache.
//
// Every list or detail payload implements Validate so the request pipeline
// can reject malformed responses at the transport boundary instead of
// merging half-filled records into the cache.
package models
