package utils

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"
)

// IsPortOpen checks if a specific TCP port on a target host is open.
func IsPortOpen(target string, port int, timeout time.Duration) (bool, error) {
	address := fmt.Sprintf("%s:%d", target, port)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return false, err
	}

	conn.Close()
	return true, nil
}

// IsIPv4Addr checks if a string is a valid IPv4 address.
func IsIPv4Addr(s string) bool {
	ip := net.ParseIP(s)
	if ip == nil {
		return false
	}
	return ip.To4() != nil
}

// IsIPv6Addr checks if a string is a valid IPv6 address.
func IsIPv6Addr(s string) bool {
	ip := net.ParseIP(s)
	if ip == nil {
		return false
	}
	return ip.To4() == nil && ip.To16() != nil
}

// IsIPv4CIDR checks if a string is a valid IPv4 CIDR notation.
func IsIPv4CIDR(s string) bool {
	_, ipnet, err := net.ParseCIDR(s)
	if err != nil {
		return false
	}
	return ipnet.IP.To4() != nil
}

// ExpandCIDR expands a CIDR notation to a list of IP addresses. Network and
// broadcast addresses are dropped for networks larger than /31.
func ExpandCIDR(cidr string) ([]string, error) {
	ip, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, err
	}

	var ips []string
	for ip := ip.Mask(ipnet.Mask); ipnet.Contains(ip); incIP(ip) {
		ips = append(ips, ip.String())
	}

	if len(ips) > 2 {
		return ips[1 : len(ips)-1], nil
	}
	return ips, nil
}

// incIP increments an IP address by one.
func incIP(ip net.IP) {
	for j := len(ip) - 1; j >= 0; j-- {
		ip[j]++
		if ip[j] > 0 {
			break
		}
	}
}

// IsFQDN checks if a string appears to be a fully qualified domain name.
func IsFQDN(s string) bool {
	if len(s) == 0 || len(s) > 255 {
		return false
	}

	if strings.ContainsAny(s, " \t\n\r") {
		return false
	}

	if !strings.Contains(s, ".") {
		return false
	}

	// Should not be an IP address
	if IsIPv4Addr(s) || IsIPv6Addr(s) {
		return false
	}

	return true
}
