package response

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/net/proxy"
)

// TransportOptions configure how connections to the target are made.
type TransportOptions struct {
	Insecure bool
	Network  string // "tcp", "tcp4" or "tcp6"
	Proxy    string
}

// AddTransportFlags adds flags for all transport options to fs.
func AddTransportFlags(fs *pflag.FlagSet, opts *TransportOptions) {
	fs.BoolVarP(&opts.Insecure, "insecure", "k", false, "disable TLS certificate verification")
	fs.StringVar(&opts.Proxy, "proxy", "", "send requests through the proxy at `url` (http, https or socks5)")
}

// NewTransport creates a new transport for the client to use.
func NewTransport(opts TransportOptions) (*http.Transport, error) {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	network := opts.Network
	if network == "" {
		network = "tcp"
	}

	// for timeouts, see
	// https://blog.cloudflare.com/the-complete-guide-to-golang-net-http-timeouts/
	tr := &http.Transport{
		DialContext: func(ctx context.Context, _, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       15 * time.Second,
		MaxIdleConnsPerHost:   1,
	}

	if opts.Insecure {
		// #nosec G402
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	if opts.Proxy == "" {
		return tr, nil
	}

	proxyURL, err := url.Parse(opts.Proxy)
	if err != nil {
		return nil, fmt.Errorf("parse proxy URL: %w", err)
	}

	switch proxyURL.Scheme {
	case "http", "https":
		tr.Proxy = http.ProxyURL(proxyURL)
	case "socks5":
		d, err := proxy.FromURL(proxyURL, dialer)
		if err != nil {
			return nil, fmt.Errorf("socks5 proxy: %w", err)
		}

		cd, ok := d.(proxy.ContextDialer)
		if !ok {
			return nil, errors.New("socks5 proxy dialer does not support contexts")
		}

		tr.DialContext = func(ctx context.Context, _, addr string) (net.Conn, error) {
			return cd.DialContext(ctx, network, addr)
		}
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", proxyURL.Scheme)
	}

	return tr, nil
}
