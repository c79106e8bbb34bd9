// Package client contains the transport side of the packadmin console.
//
// # Overview
//
// The package provides:
//  1. The Client interface: one method per remote endpoint the console
//     consumes (list reads, pack creation, item/image/sale mutations and
//     the credential-guarded deletes).
//  2. HTTPClient, a REST/JSON implementation. Every request carries an
//     X-Request-ID header and, when configured, a bearer session token.
//     Pack creation and image uploads are sent as multipart forms.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     mutation journal, using SQLite and embedded goose migrations.
//
// # Error Handling
//
// Failures are classified with sentinel errors matched via errors.Is:
// ErrFetch for reads, ErrOperationFailed for writes, ErrCredentialRejected
// for a 401 on a guarded delete, and ErrUnavailable when no response was
// received. *StatusError and *RejectedError carry the details.
//
// All operations accept context.Context and honor cancellation. HTTPClient
// additionally bounds each request by its configured timeout.
package client
