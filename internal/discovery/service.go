package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Service represents a feed service discovered on the network
type Service struct {
	// Instance is the advertised instance name (e.g., "lobby")
	Instance string

	// Hostname is the mDNS hostname (e.g., "feedhost.local.")
	Hostname string

	// IP is the preferred address, IPv4 when available
	IP string

	// Port is the HTTP port
	Port int

	// Path is the screen list endpoint from the TXT record, if any
	Path string

	// Metadata contains the remaining TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the service was seen
	DiscoveredAt time.Time
}

// String returns a human-readable representation of the service
func (s *Service) String() string {
	return fmt.Sprintf("Feed %s (%s) at %s", s.Instance, s.Hostname, net.JoinHostPort(s.IP, strconv.Itoa(s.Port)))
}

// BaseURL returns the HTTP base URL of the service
func (s *Service) BaseURL() string {
	return "http://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
