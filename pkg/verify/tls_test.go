package verify_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pseudomuto/sqlign/pkg/consts"
	"github.com/pseudomuto/sqlign/pkg/verify"
	"github.com/stretchr/testify/require"
)

// writeCertificate writes a self-signed certificate and its key to dir and
// returns their paths.
func writeCertificate(t *testing.T, dir string) (string, string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "sqlign test"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	certFile := filepath.Join(dir, "tls.crt")
	keyFile := filepath.Join(dir, "tls.key")
	require.NoError(t, os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), consts.ModeFile))
	require.NoError(t, os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), consts.ModeFile))

	return certFile, keyFile
}

func TestGetTLSConfig(t *testing.T) {
	tmpDir := t.TempDir()
	certFile, keyFile := writeCertificate(t, tmpDir)

	t.Run("success", func(t *testing.T) {
		config, err := verify.GetTLSConfig(verify.ClientOptions{
			CertFile: certFile,
			KeyFile:  keyFile,
			CAFile:   certFile,
		})
		require.NoError(t, err)
		require.Len(t, config.Certificates, 1)
		require.NotNil(t, config.RootCAs)
		require.Equal(t, uint16(tls.VersionTLS12), config.MinVersion)
	})

	t.Run("missing key pair", func(t *testing.T) {
		_, err := verify.GetTLSConfig(verify.ClientOptions{
			CertFile: filepath.Join(tmpDir, "missing.crt"),
			KeyFile:  keyFile,
			CAFile:   certFile,
		})
		require.ErrorContains(t, err, "failed to load client certificate")
	})

	t.Run("missing CA", func(t *testing.T) {
		_, err := verify.GetTLSConfig(verify.ClientOptions{
			CertFile: certFile,
			KeyFile:  keyFile,
			CAFile:   filepath.Join(tmpDir, "missing-ca.crt"),
		})
		require.ErrorContains(t, err, "failed to read CA bundle")
	})

	t.Run("CA without certificates", func(t *testing.T) {
		_, err := verify.GetTLSConfig(verify.ClientOptions{
			CertFile: certFile,
			KeyFile:  keyFile,
			CAFile:   keyFile,
		})
		require.ErrorContains(t, err, "contains no certificates")
	})

	t.Run("incomplete settings", func(t *testing.T) {
		tests := []struct {
			name    string
			opts    verify.ClientOptions
			missing string
		}{
			{"cert only", verify.ClientOptions{CertFile: certFile}, "missing key_file, ca_file"},
			{"no CA", verify.ClientOptions{CertFile: certFile, KeyFile: keyFile}, "missing ca_file"},
			{"CA only", verify.ClientOptions{CAFile: certFile}, "missing cert_file, key_file"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := verify.GetTLSConfig(tt.opts)
				require.ErrorContains(t, err, "incomplete TLS settings, "+tt.missing)
			})
		}
	})
}
