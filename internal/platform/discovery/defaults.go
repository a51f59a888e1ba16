// Package discovery centralizes internal service-discovery conventions.
package discovery

import (
	"strconv"
	"strings"
)

const (
	// ServiceQuote is the quote gRPC service identity.
	ServiceQuote = "quote"
	// ServiceJaeger is the jaeger HTTP service identity.
	ServiceJaeger = "jaeger"
)

var grpcPorts = map[string]int{
	ServiceQuote: 8090,
}

var httpPorts = map[string]int{
	ServiceJaeger: 16686,
}

// DefaultGRPCAddr returns the canonical in-network gRPC address for a service.
func DefaultGRPCAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), grpcPorts)
}

// DefaultHTTPAddr returns the canonical in-network HTTP address for a service.
func DefaultHTTPAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), httpPorts)
}

// DefaultGRPCListenAddr returns the all-interfaces listen address for a
// service's conventional gRPC port.
func DefaultGRPCListenAddr(service string) string {
	port, ok := grpcPorts[strings.TrimSpace(service)]
	if !ok || port <= 0 {
		return ""
	}
	return ":" + strconv.Itoa(port)
}

// OrDefaultGRPCAddr returns value when set, otherwise the service convention.
func OrDefaultGRPCAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultGRPCAddr(service)
}

// OrDefaultGRPCListenAddr returns value when set, otherwise the service's
// conventional listen address.
func OrDefaultGRPCListenAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultGRPCListenAddr(service)
}

func defaultAddr(service string, ports map[string]int) string {
	port, ok := ports[service]
	if !ok || port <= 0 {
		return ""
	}
	return service + ":" + strconv.Itoa(port)
}
