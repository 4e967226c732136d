package common

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrDatabaseUnavailable = errors.New("database unavailable")
)

// IsConnectivity reports whether err looks like the database could not be
// reached, as opposed to a query or constraint failure.
func IsConnectivity(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}
