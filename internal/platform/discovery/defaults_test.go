package discovery

import "testing"

func TestDefaultGRPCAddr(t *testing.T) {
	if got := DefaultGRPCAddr(ServiceQuote); got != "quote:8090" {
		t.Fatalf("DefaultGRPCAddr(%q) = %q, want %q", ServiceQuote, got, "quote:8090")
	}
	if got := DefaultGRPCAddr("unknown"); got != "" {
		t.Fatalf("DefaultGRPCAddr(unknown) = %q, want empty", got)
	}
}

func TestDefaultHTTPAddr(t *testing.T) {
	if got := DefaultHTTPAddr(ServiceJaeger); got != "jaeger:16686" {
		t.Fatalf("DefaultHTTPAddr(%q) = %q, want %q", ServiceJaeger, got, "jaeger:16686")
	}
}

func TestOrDefaultGRPCAddr(t *testing.T) {
	if got := OrDefaultGRPCAddr(" custom:9000 ", ServiceQuote); got != "custom:9000" {
		t.Fatalf("expected explicit grpc addr to win, got %q", got)
	}
	if got := OrDefaultGRPCAddr("", ServiceQuote); got != "quote:8090" {
		t.Fatalf("expected default grpc addr, got %q", got)
	}
}

func TestOrDefaultGRPCListenAddr(t *testing.T) {
	if got := OrDefaultGRPCListenAddr("127.0.0.1:9100", ServiceQuote); got != "127.0.0.1:9100" {
		t.Fatalf("expected explicit listen addr to win, got %q", got)
	}
	if got := OrDefaultGRPCListenAddr("  ", ServiceQuote); got != ":8090" {
		t.Fatalf("expected default listen addr, got %q", got)
	}
	if got := DefaultGRPCListenAddr("unknown"); got != "" {
		t.Fatalf("DefaultGRPCListenAddr(unknown) = %q, want empty", got)
	}
}
