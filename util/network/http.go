package network

import (
	"crypto/tls"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/utahta/go-openuri"
)

// NewHttpClient returns new HTTP client.
//
// <timeout> is a time limit for requests made by returned client.
func NewHttpClient(timeout time.Duration) *http.Client {
	tlsCfg := &tls.Config{
		InsecureSkipVerify: true,
	}
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: tlsCfg,
		},
	}
	return client
}

// Open returns reader of local file or URL at <path>. URLs are fetched with <client>.
func Open(client *http.Client, path string) (io.ReadCloser, error) {
	rc, err := openuri.Open(path, openuri.WithHTTPClient(client))
	if err != nil {
		return nil, errors.Wrapf(err, "Open %v", path)
	}
	return rc, nil
}
