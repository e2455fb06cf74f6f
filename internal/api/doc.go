// Package api provides the HTTP REST API and WebSocket server for the
// POS back office.
//
// It exposes staff and catalog CRUD to admin clients, a PIN check
// endpoint for the register, and a WebSocket feed that fans committed
// change events out to every connected terminal. All mutating routes
// sit behind the admin PIN gate.
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
package api
