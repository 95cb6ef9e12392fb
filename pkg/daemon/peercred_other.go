//go:build !linux

package daemon

import "net"

// checkPeerOwner is a no-op where SO_PEERCRED is unavailable; the 0600
// socket mode still restricts access to the owner.
func checkPeerOwner(conn net.Conn) error {
	return nil
}
