package jwt

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// Keypair es la clave de firma activa del servicio. Sin rotación multi-clave:
// el kid viaja en el header para poder introducirla más adelante sin romper
// tokens emitidos.
type Keypair struct {
	KID     string
	Private ed25519.PrivateKey
	Public  ed25519.PublicKey
}

func kidFor(pub ed25519.PublicKey) string {
	sum := sha256.Sum256(pub)
	return base64.RawURLEncoding.EncodeToString(sum[:8])
}

// LoadOrGenerateKey resuelve la clave de firma:
//  1. path no vacío y el archivo existe ⇒ PEM PKCS#8 ed25519
//  2. path no vacío y no existe ⇒ genera y persiste (bootstrap de dev)
//  3. path vacío ⇒ clave efímera (tests; los tokens mueren con el proceso)
func LoadOrGenerateKey(path string) (*Keypair, error) {
	if path == "" {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, err
		}
		return &Keypair{KID: kidFor(pub), Private: priv, Public: pub}, nil
	}

	b, err := os.ReadFile(path)
	if err == nil {
		return parsePEM(b)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, err
	}
	out := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return nil, err
	}
	return &Keypair{KID: kidFor(pub), Private: priv, Public: pub}, nil
}

func parsePEM(b []byte) (*Keypair, error) {
	blk, _ := pem.Decode(b)
	if blk == nil {
		return nil, errors.New("jwt: PEM inválido")
	}
	k, err := x509.ParsePKCS8PrivateKey(blk.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwt: parse PKCS#8: %w", err)
	}
	priv, ok := k.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("jwt: la clave no es ed25519")
	}
	pub := priv.Public().(ed25519.PublicKey)
	return &Keypair{KID: kidFor(pub), Private: priv, Public: pub}, nil
}
