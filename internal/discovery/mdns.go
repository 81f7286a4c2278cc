package discovery

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/controlroom/internal/logging"
)

const (
	// ServiceType is the mDNS service type of feed services
	ServiceType = "_controlroom-feed._tcp"

	// ServiceDomain is the mDNS domain
	ServiceDomain = "local."

	// DefaultScanTimeout is the default browse duration
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is assumed when an entry carries no port
	DefaultPort = 80

	// pathKey is the TXT key holding the endpoint path
	pathKey = "path"
)

// Scanner handles mDNS feed discovery
type Scanner struct {
	// Timeout is the maximum time to browse
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan browses for the full timeout and returns every feed service seen
func (s *Scanner) Scan(ctx context.Context) ([]*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	done := make(chan struct{})
	services := make([]*Service, 0)

	go func() {
		defer close(done)
		seen := make(map[string]bool)
		for entry := range entries {
			svc := parseServiceEntry(entry)
			if svc == nil || seen[svc.BaseURL()] {
				continue
			}
			seen[svc.BaseURL()] = true
			services = append(services, svc)
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	// the resolver closes entries once ctx is done
	select {
	case <-done:
	case <-time.After(time.Second):
	}

	logging.Debug("mDNS scan finished", zap.Int("services", len(services)))
	return services, nil
}

// First returns the first feed service found within the timeout
func (s *Scanner) First(ctx context.Context) (*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Service, 1)

	go func() {
		for entry := range entries {
			if svc := parseServiceEntry(entry); svc != nil {
				found <- svc
				cancel()
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case svc := <-found:
		logging.Info("Feed service discovered", zap.String("service", svc.String()))
		return svc, nil
	case <-ctx.Done():
		// found may have raced with the timeout
		select {
		case svc := <-found:
			return svc, nil
		default:
		}
		return nil, fmt.Errorf("no feed service found within %s", s.Timeout)
	}
}

// parseServiceEntry converts a zeroconf entry to a Service.
// Returns nil if the entry has no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Service {
	if entry == nil {
		return nil
	}

	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}
	path := metadata[pathKey]
	delete(metadata, pathKey)

	return &Service{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Path:         path,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// Advertisement is a registered mDNS service
type Advertisement struct {
	server *zeroconf.Server
}

// Advertise registers a feed service under instance on port. path is
// published in the TXT record so displays can find the endpoint.
func Advertise(instance string, port int, path string, extra ...string) (*Advertisement, error) {
	if instance == "" {
		return nil, fmt.Errorf("instance name is required")
	}
	txt := append([]string{pathKey + "=" + path}, extra...)

	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	logging.Info("Feed service advertised",
		zap.String("instance", instance),
		zap.Int("port", port),
		zap.String("path", path),
	)
	return &Advertisement{server: server}, nil
}

// Shutdown withdraws the advertisement
func (a *Advertisement) Shutdown() {
	if a != nil && a.server != nil {
		a.server.Shutdown()
	}
}

// PortOf extracts the numeric port from a listen address like ":8080"
func PortOf(addr net.Addr) int {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}
