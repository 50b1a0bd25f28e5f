// Package services contains the remote operations of the column client.
//
// Every operation first asks the cache whether the data is already there and
// returns without touching the network when it is. Otherwise it goes through
// the request orchestrator, which owns the loading/error signal, and merges
// the typed response into the store.
package services
