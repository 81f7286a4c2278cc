// Package discovery finds feed services on the local network over mDNS and
// advertises the demo feed so displays can find it without configuration.
//
// Feed services register as "_controlroom-feed._tcp" in the "local." domain.
// The TXT record "path" carries the screen list endpoint; other TXT entries
// are kept as metadata.
//
//	scanner := discovery.NewScanner()
//	svc, err := scanner.First(ctx)
//	if err != nil {
//	    // fall back to a configured URL
//	}
//	client := feed.NewClient(svc.BaseURL())
//
// Advertise is the other half, used by "feed serve":
//
//	ad, err := discovery.Advertise("lobby", 8080, "/screens")
//	defer ad.Shutdown()
package discovery
