package sealing

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"github.com/Dstack-TEE/dstack/sdk/go/tappd"

	"github.com/NethermindEth/arenastate/pkg/arenastate/debug"
)

const (
	sealingKeyPath    = "/arenastate/sealing"
	sealingKeySubject = "arenastate-env"
)

type KeyDeriver interface {
	DeriveKeyWithSubject(ctx context.Context, path string, subject string) (*tappd.DeriveKeyResponse, error)
}

// Sealer keeps instantiated env files encrypted at rest under a key derived
// by the dstack tappd service.
type Sealer struct {
	deriver KeyDeriver
}

func NewSealer(dstackTappdEndpoint string) *Sealer {
	return &Sealer{deriver: tappd.NewTappdClient(tappd.WithEndpoint(dstackTappdEndpoint))}
}

func NewSealerWithDeriver(deriver KeyDeriver) *Sealer {
	return &Sealer{deriver: deriver}
}

func WriteSealedFile(ctx context.Context, dstackTappdEndpoint, filePath string, data []byte) error {
	return NewSealer(dstackTappdEndpoint).WriteFile(ctx, filePath, data)
}

func ReadSealedFile(ctx context.Context, dstackTappdEndpoint, filePath string) ([]byte, error) {
	return NewSealer(dstackTappdEndpoint).ReadFile(ctx, filePath)
}

func (s *Sealer) WriteFile(ctx context.Context, filePath string, data []byte) error {
	if debug.IsDebugPlainSeal() {
		return writeFilePlain(filePath, data)
	}

	key, err := s.sealingKey(ctx)
	if err != nil {
		return err
	}

	ciphertext, err := seal(key, data)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filePath, ciphertext, 0600); err != nil {
		return fmt.Errorf("failed to write sealed file: %v", err)
	}

	return nil
}

func (s *Sealer) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	if debug.IsDebugPlainSeal() {
		return readFilePlain(filePath)
	}

	key, err := s.sealingKey(ctx)
	if err != nil {
		return nil, err
	}

	ciphertext, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sealed file: %v", err)
	}

	return open(key, ciphertext)
}

func (s *Sealer) sealingKey(ctx context.Context) ([]byte, error) {
	resp, err := s.deriver.DeriveKeyWithSubject(ctx, sealingKeyPath, sealingKeySubject)
	if err != nil {
		return nil, fmt.Errorf("failed to derive sealing key: %v", err)
	}

	key, err := resp.ToBytes(32)
	if err != nil {
		return nil, fmt.Errorf("failed to convert sealing key to bytes: %v", err)
	}

	return key, nil
}

func writeFilePlain(filePath string, data []byte) error {
	return os.WriteFile(filePath, data, 0600)
}

func readFilePlain(filePath string) ([]byte, error) {
	return os.ReadFile(filePath)
}

func seal(key, data []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to create nonce: %v", err)
	}

	return gcm.Seal(nonce, nonce, data, nil), nil
}

func open(key, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt data: %v", err)
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %v", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %v", err)
	}

	return gcm, nil
}
