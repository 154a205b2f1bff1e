// Package batch implements a table editor that stages one action per row
// and saves them all in a single request.
//
// Rows shown by the editor never change until the server has accepted a
// save. What happens to them afterwards is decided by a Policy: committed
// rows can be dropped, patched in place, or replaced by a fresh copy of
// the list from the server.
package batch
