// Package staff manages staff accounts and their PIN credentials.
//
// It is both the staff entity store and the credential store consulted by
// the HTTP admin gate: PINs are hashed with SHA-256 and looked up by hash,
// with a uniqueness constraint guaranteeing at most one account per hash.
package staff
