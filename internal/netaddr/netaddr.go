package netaddr

import "net"

// Loopback is returned when no other IPv4 address is configured.
const Loopback = "127.0.0.1"

// LocalIPv4 returns the first non-loopback IPv4 address of an interface that
// is up, or Loopback.
func LocalIPv4() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return Loopback
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		if ip, ok := firstIPv4(addrs); ok {
			return ip
		}
	}
	return Loopback
}

func firstIPv4(addrs []net.Addr) (string, bool) {
	for _, a := range addrs {
		var ip net.IP
		switch v := a.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip == nil || ip.IsLoopback() {
			continue
		}
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), true
		}
	}
	return "", false
}
