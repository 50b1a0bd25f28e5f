// Package client bootstraps the local persistence of the column client: it
// opens the sqlite file, applies the embedded goose migrations and wires the
// repositories that live on top of it (today, only the metadata store that
// keeps the session token).
package client
