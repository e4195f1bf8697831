package rede

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/crypto/pkcs12"
)

// DefaultTimeout é o timeout do cliente HTTP criado pelo SDK
const DefaultTimeout = 30 * time.Second

// NewHTTPClient cria um cliente HTTP com TLS 1.2 como versão mínima.
// tlsConfig pode ser nil; timeout zero usa DefaultTimeout.
func NewHTTPClient(tlsConfig *tls.Config, timeout time.Duration) *http.Client {
	if tlsConfig == nil {
		tlsConfig = &tls.Config{}
	}
	if tlsConfig.MinVersion < tls.VersionTLS12 {
		tlsConfig.MinVersion = tls.VersionTLS12
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			TLSClientConfig:     tlsConfig,
			TLSHandshakeTimeout: 10 * time.Second,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// LoadClientCertificate carrega um certificado .p12 para mTLS, usado quando a
// conexão com a Rede passa por um proxy/gateway que exige certificado de cliente
func LoadClientCertificate(certPath, password string) (*tls.Config, error) {
	certData, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler certificado: %w", err)
	}

	privateKey, certificate, err := pkcs12.Decode(certData, password)
	if err != nil {
		return nil, fmt.Errorf("erro ao decodificar certificado PKCS12: %w", err)
	}

	tlsCert := tls.Certificate{
		Certificate: [][]byte{certificate.Raw},
		PrivateKey:  privateKey,
		Leaf:        certificate,
	}

	return &tls.Config{
		Certificates: []tls.Certificate{tlsCert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// checkTLS falha se o transporte foi configurado com versão máxima abaixo de TLS 1.2.
// RoundTrippers customizados não são inspecionados.
func checkTLS(hc *http.Client) error {
	rt := hc.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}

	transport, ok := rt.(*http.Transport)
	if !ok || transport.TLSClientConfig == nil {
		return nil
	}

	maxVersion := transport.TLSClientConfig.MaxVersion
	if maxVersion != 0 && maxVersion < tls.VersionTLS12 {
		return ErrTLSUnsupported
	}
	return nil
}
