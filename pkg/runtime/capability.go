package runtime

import (
	"fmt"
	"strings"
)

// Capability is an extra Linux capability granted to the container process.
type Capability int

const (
	NetRaw Capability = iota + 1
	NetAdmin
)

// Capabilities lists every supported capability.
var Capabilities = []Capability{NetRaw, NetAdmin}

// String returns the runtime's --cap-add token.
func (c Capability) String() string {
	switch c {
	case NetRaw:
		return "NET_RAW"
	case NetAdmin:
		return "NET_ADMIN"
	default:
		return fmt.Sprintf("Capability(%d)", int(c))
	}
}

// ParseCapability accepts the runtime token (NET_RAW) or its CLI spelling (net-raw).
func ParseCapability(s string) (Capability, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for _, c := range Capabilities {
		if c.String() == normalized {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown capability %q (expected one of: net-raw, net-admin)", s)
}

// ParseCapabilities parses each value in order.
func ParseCapabilities(values []string) ([]Capability, error) {
	caps := make([]Capability, 0, len(values))
	for _, v := range values {
		c, err := ParseCapability(v)
		if err != nil {
			return nil, err
		}
		caps = append(caps, c)
	}
	return caps, nil
}
