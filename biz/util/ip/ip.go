package ip

import (
	"encoding/hex"
	"net"
	"sync"
)

const unknownHex = "00000000"

var (
	hexOnce sync.Once
	hexAddr string
)

// IPv4Hex returns the first non-loopback ipv4 address of the host as 8 hex digits, resolved once.
func IPv4Hex() string {
	hexOnce.Do(func() {
		hexAddr = lookupIPv4Hex()
	})
	return hexAddr
}

func lookupIPv4Hex() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return unknownHex
	}
	for _, addr := range addrs {
		if ipNet, ok := addr.(*net.IPNet); ok && !ipNet.IP.IsLoopback() {
			if ipv4 := ipNet.IP.To4(); ipv4 != nil {
				return hex.EncodeToString(ipv4)
			}
		}
	}
	return unknownHex
}
