// Package network holds the HTTP clients used to reach metadata sites.
package network

import (
	"net/http"
	"time"
)

const (
	requestTimeout = time.Minute
	headerTimeout  = 30 * time.Second
	// crawls talk to one or two hosts
	idlePerHost = 16
)

// Client downloads pages over the standard library TLS stack.
var Client = &http.Client{
	Timeout:   requestTimeout,
	Transport: pooledTransport(),
}

func pooledTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = idlePerHost
	t.IdleConnTimeout = headerTimeout
	t.ResponseHeaderTimeout = headerTimeout
	return t
}
