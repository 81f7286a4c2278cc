// Package feed talks to the service that lists which screens are active.
//
// The feed is a plain HTTP GET returning a JSON object with a "result" array:
//
//	{"result": [
//	    {"id": 1, "name": "Traffic", "active": true},
//	    {"stt": 2, "tenManHinh": "Weather", "isActive": 1}
//	]}
//
// Several spellings are accepted for each field; see Decode. Inactive items
// are filtered out, the rest are sorted by id and the map screen is added
// when missing (screen.Normalize). A malformed item is dropped on its own
// and never fails the snapshot.
//
// # Client
//
// Client.Fetch retries failures that look transient (timeouts, refused
// connections, 5xx) with a linearly growing delay:
//
//	client := feed.NewClient("http://10.0.0.5:8080")
//	client.SetRetry(3, time.Second)
//	result, err := client.Fetch(ctx)
//
// Errors are *FeedError values; use IsUnavailable, IsTimeout, IsParseError
// and friends rather than comparing types. The display treats any error as
// an empty screen list.
//
// # Poller
//
// Poller runs Fetch after a start delay and then on a fixed interval. Polls
// are sequential, so results arrive in the order they were requested.
//
// # Demo server
//
// Server serves a YAML screens file in the same wire format and reloads it
// when it changes on disk:
//
//	screens:
//	  - id: 1
//	    name: Traffic
//	    active: true
//
// It backs the "feed serve" command and the package tests.
package feed
