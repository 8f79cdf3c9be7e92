// Package cli provides the interactive stockkeeper terminal client.
//
// It wires the auth controller, settings and inventory services to a REPL.
// Typical flow: register, log in (answering the SMS code challenge when
// two-factor is on), then manage items with add, list, inc and dec. Stock
// alerts fire from inc, dec and edit according to the alert settings.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
