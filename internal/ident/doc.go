// Package ident allocates collision-avoiding entity identifiers.
//
// Identifiers are a namespace prefix plus a fixed-width random numeric
// suffix ("category482913"). Allocation is optimistic: the allocator
// proposes candidates and probes the store, but only the storage layer's
// uniqueness constraint makes the result hard-unique. Create paths catch
// the constraint violation and re-allocate.
package ident
