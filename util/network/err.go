package network

import (
	"net"
	"syscall"

	"github.com/cockroachdb/errors"
)

// ErrType represents network error type
type ErrType string

const (
	Nil ErrType = "Nil"

	// no such host
	NoSuchHost ErrType = "No such host"

	// connection refused
	Refused ErrType = "Connection refused"

	// context deadline exceeded (Client.Timeout exceeded while awaiting headers)
	Timeout ErrType = "Timeout"

	Unknown ErrType = "Unknown"
)

// GetErrType returns network error type of <err> or any error it wraps
func GetErrType(err error) ErrType {
	if err == nil {
		return Nil
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return NoSuchHost
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return Refused
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Timeout
	}
	return Unknown
}
