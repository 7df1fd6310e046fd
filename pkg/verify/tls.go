package verify

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// usesTLS reports whether any certificate setting was provided.
func (o ClientOptions) usesTLS() bool {
	return o.CertFile != "" || o.KeyFile != "" || o.CAFile != ""
}

// missingTLSFiles names the certificate settings that are still empty.
func (o ClientOptions) missingTLSFiles() []string {
	var missing []string
	for _, setting := range []struct{ name, value string }{
		{"cert_file", o.CertFile},
		{"key_file", o.KeyFile},
		{"ca_file", o.CAFile},
	} {
		if setting.value == "" {
			missing = append(missing, setting.name)
		}
	}
	return missing
}

// GetTLSConfig builds the mutual TLS configuration used to reach a server that
// requires client certificates. CertFile, KeyFile and CAFile must all be set.
//
//	config, err := verify.GetTLSConfig(opts)
//	if err != nil {
//		return err
//	}
func GetTLSConfig(opts ClientOptions) (*tls.Config, error) {
	if missing := opts.missingTLSFiles(); len(missing) > 0 {
		return nil, errors.Errorf("incomplete TLS settings, missing %s", strings.Join(missing, ", "))
	}

	pair, err := tls.LoadX509KeyPair(opts.CertFile, opts.KeyFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load client certificate %s", opts.CertFile)
	}

	pem, err := os.ReadFile(opts.CAFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read CA bundle %s", opts.CAFile)
	}

	roots := x509.NewCertPool()
	if !roots.AppendCertsFromPEM(pem) {
		return nil, errors.Errorf("CA bundle %s contains no certificates", opts.CAFile)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{pair},
		RootCAs:      roots,
		MinVersion:   tls.VersionTLS12,
	}, nil
}
