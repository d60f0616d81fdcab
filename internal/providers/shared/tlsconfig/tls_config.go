// Package tlsconfig turns the transport TLS settings into a *tls.Config.
package tlsconfig

import (
	"crypto/tls"
	"crypto/x509"
	"strings"

	"github.com/spf13/afero"

	"github.com/crmarques/restrecord/config"
	"github.com/crmarques/restrecord/faults"
)

// Build returns nil when settings is nil. PEM files are read through fs.
func Build(fs afero.Fs, settings *config.TLS) (*tls.Config, error) {
	if settings == nil {
		return nil, nil
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: settings.InsecureSkipVerify,
	}

	if caFile := strings.TrimSpace(settings.CACertFile); caFile != "" {
		caBytes, err := afero.ReadFile(fs, caFile)
		if err != nil {
			return nil, validationError("transport.tls.ca-cert-file could not be read", err)
		}

		pool := x509.NewCertPool()
		if ok := pool.AppendCertsFromPEM(caBytes); !ok {
			return nil, validationError("transport.tls.ca-cert-file is not valid PEM", nil)
		}
		tlsConfig.RootCAs = pool
	}

	clientCertFile := strings.TrimSpace(settings.ClientCertFile)
	clientKeyFile := strings.TrimSpace(settings.ClientKeyFile)
	if (clientCertFile == "") != (clientKeyFile == "") {
		return nil, validationError("transport.tls requires both client-cert-file and client-key-file", nil)
	}
	if clientCertFile == "" {
		return tlsConfig, nil
	}

	certPEM, err := afero.ReadFile(fs, clientCertFile)
	if err != nil {
		return nil, validationError("transport.tls.client-cert-file could not be read", err)
	}
	keyPEM, err := afero.ReadFile(fs, clientKeyFile)
	if err != nil {
		return nil, validationError("transport.tls.client-key-file could not be read", err)
	}
	certificate, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, validationError("transport.tls client certificate pair is invalid", err)
	}
	tlsConfig.Certificates = []tls.Certificate{certificate}

	return tlsConfig, nil
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}
