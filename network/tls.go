package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

var (
	tlsClient     *http.Client
	tlsClientOnce sync.Once
)

// TLSClient returns a client whose TLS handshake mimics Chrome 120.
// Requests go over HTTP/2 first and fall back to HTTP/1.1 when h2 cannot be negotiated.
func TLSClient() *http.Client {
	tlsClientOnce.Do(func() {
		tlsClient = &http.Client{
			Timeout: requestTimeout,
			Transport: &fallbackTransport{
				h2: &http2.Transport{
					DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
						return dialChrome(ctx, network, addr, nil)
					},
				},
				h1: &http.Transport{
					DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
						return dialChrome(ctx, network, addr, []string{"http/1.1"})
					},
				},
			},
		}
	})
	return tlsClient
}

// fallbackTransport retries a failed h2 round trip over h1.
// Only bodiless requests are retried, which covers every page download.
type fallbackTransport struct {
	h2 http.RoundTripper
	h1 http.RoundTripper
}

func (t *fallbackTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return Client.Transport.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil || req.Body != nil {
		return resp, err
	}

	return t.h1.RoundTrip(req.Clone(req.Context()))
}

// dialChrome opens a TCP connection and performs a uTLS handshake with the Chrome 120 ClientHello.
// nextProtos overrides the advertised ALPN protocols when non-nil.
func dialChrome(ctx context.Context, network, addr string, nextProtos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: nextProtos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
