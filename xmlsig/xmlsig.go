// Package xmlsig signs and verifies XML documents with enveloped XML digital signatures,
// RSA-SHA256 over SHA-256 digests of the c14n 1.1 canonical form.
package xmlsig

import (
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/beevik/etree"
	dsig "github.com/russellhaering/goxmldsig"
)

// Algorithms of the generated signatures.
const (
	SignatureMethod        = dsig.RSASHA256SignatureMethod
	DigestMethod           = "http://www.w3.org/2001/04/xmlenc#sha256"
	CanonicalizationMethod = string(dsig.CanonicalXML11AlgorithmId)
)

var (
	// ErrInvalidCertificate is returned for PEM data that holds no usable certificate.
	ErrInvalidCertificate = errors.New("invalid certificate")
	// ErrUnexpectedAlgorithm is returned by Verify for signatures that Sign would not produce.
	ErrUnexpectedAlgorithm = errors.New("unexpected signature algorithm")
)

// Signer signs XML trees with one RSA key. A Signer is safe for concurrent use.
type Signer struct {
	keyStore dsig.TLSCertKeyStore
}

// NewSigner returns a signer for the given PEM encoded private key and certificate.
func NewSigner(keyPEM []byte, certPEM []byte) (*Signer, error) {
	pair, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, fmt.Errorf("cannot load signing key pair: %w", err)
	}
	if _, ok := pair.PrivateKey.(*rsa.PrivateKey); !ok {
		return nil, fmt.Errorf("signing key must be an RSA key, got %T", pair.PrivateKey)
	}
	return &Signer{keyStore: dsig.TLSCertKeyStore(pair)}, nil
}

func (s *Signer) context() (*dsig.SigningContext, error) {
	result := dsig.NewDefaultSigningContext(s.keyStore)
	result.Canonicalizer = dsig.MakeC14N11Canonicalizer()
	if err := result.SetSignatureMethod(SignatureMethod); err != nil {
		return nil, err
	}
	return result, nil
}

// Sign returns a copy of the root with an enveloped ds:Signature appended as its last child.
// The signature references the whole document.
func (s *Signer) Sign(root *etree.Element) (*etree.Element, error) {
	ctx, err := s.context()
	if err != nil {
		return nil, fmt.Errorf("cannot create signing context: %w", err)
	}
	signed, err := ctx.SignEnveloped(root)
	if err != nil {
		return nil, fmt.Errorf("cannot sign %s: %w", root.Tag, err)
	}

	// SignEnveloped appends the signature without linking it to its parent.
	last := len(signed.Child) - 1
	signature := signed.Child[last]
	signed.RemoveChildAt(last)
	signed.AddChild(signature)
	return signed, nil
}

// Verify checks that the root carries a valid enveloped signature made with the key of the
// given PEM encoded certificate. The signature may be nested anywhere below the root and must
// use the algorithms of Sign.
func Verify(root *etree.Element, certPEM []byte) error {
	cert, err := ParseCertificate(certPEM)
	if err != nil {
		return err
	}
	if err := checkAlgorithms(root); err != nil {
		return err
	}
	ctx := dsig.NewDefaultValidationContext(&dsig.MemoryX509CertificateStore{
		Roots: []*x509.Certificate{cert},
	})
	if _, err := ctx.Validate(root); err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}
	return nil
}

func checkAlgorithms(root *etree.Element) error {
	signedInfo := root.FindElement("//Signature/SignedInfo")
	if signedInfo == nil {
		// reported by the validation
		return nil
	}
	expected := map[string]string{
		"CanonicalizationMethod": CanonicalizationMethod,
		"SignatureMethod":        SignatureMethod,
		"Reference/DigestMethod": DigestMethod,
	}
	for path, algorithm := range expected {
		for _, el := range signedInfo.FindElements(path) {
			if actual := el.SelectAttrValue("Algorithm", ""); actual != algorithm {
				return fmt.Errorf("%w: %s %q", ErrUnexpectedAlgorithm, el.Tag, actual)
			}
		}
	}
	return nil
}

// ParseCertificate returns the first certificate of the PEM data.
func ParseCertificate(certPEM []byte) (*x509.Certificate, error) {
	for {
		var block *pem.Block
		block, certPEM = pem.Decode(certPEM)
		if block == nil {
			return nil, ErrInvalidCertificate
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCertificate, err)
		}
		return cert, nil
	}
}
