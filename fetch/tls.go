package fetch

import (
	"context"
	"fmt"
	"net"
	"time"

	utls "github.com/refraction-networking/utls"
)

// chromeDialer opens HTTPS connections that present Chrome's ClientHello.
// It is installed as http.Transport.DialTLSContext when the fetch config
// asks for a browser TLS fingerprint.
type chromeDialer struct {
	dialer *net.Dialer
	base   *utls.Config
}

// newChromeDialer bounds the TCP connect by timeout. base supplies trust
// roots and any other TLS settings; ServerName defaults to the dialled host.
func newChromeDialer(timeout time.Duration, base *utls.Config) *chromeDialer {
	if base == nil {
		base = &utls.Config{}
	}
	return &chromeDialer{
		dialer: &net.Dialer{Timeout: timeout},
		base:   base,
	}
}

// chromeH1Spec returns a fresh Chrome spec with ALPN narrowed to http/1.1.
// http.Transport cannot run h2 over a utls connection. A spec is built per
// connection so no extension state is shared between handshakes.
func chromeH1Spec() (*utls.ClientHelloSpec, error) {
	spec, err := utls.UTLSIdToSpec(utls.HelloChrome_Auto)
	if err != nil {
		return nil, err
	}
	for _, ext := range spec.Extensions {
		if alpn, ok := ext.(*utls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
		}
	}
	return &spec, nil
}

func (d *chromeDialer) DialTLSContext(ctx context.Context, network, addr string) (net.Conn, error) {
	spec, err := chromeH1Spec()
	if err != nil {
		return nil, fmt.Errorf("fetch: chrome hello: %w", err)
	}

	raw, err := d.dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	cfg := d.base.Clone()
	if cfg.ServerName == "" {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			raw.Close()
			return nil, err
		}
		cfg.ServerName = host
	}

	conn := utls.UClient(raw, cfg, utls.HelloCustom)
	if err := conn.ApplyPreset(spec); err != nil {
		raw.Close()
		return nil, fmt.Errorf("fetch: apply tls spec: %w", err)
	}
	if err := conn.HandshakeContext(ctx); err != nil {
		raw.Close()
		return nil, err
	}
	return conn, nil
}
