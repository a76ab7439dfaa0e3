package database

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"io"

	"habitmap/internal/util"
)

const exportSaltSize = 16

type encryptedExport struct {
	Encrypted bool   `json:"encrypted"`
	Salt      string `json:"salt"`
	Nonce     string `json:"nonce"`
	Data      string `json:"data"`
}

func encryptData(payload []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, exportSaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, wrapErr(EntityExport, "encrypt", 0, err)
	}
	key, err := util.DeriveKey(passphrase, salt)
	if err != nil {
		return nil, wrapErr(EntityExport, "encrypt", 0, err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, wrapErr(EntityExport, "encrypt", 0, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, wrapErr(EntityExport, "encrypt", 0, err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, wrapErr(EntityExport, "encrypt", 0, err)
	}
	wrapped := encryptedExport{
		Encrypted: true,
		Salt:      base64.StdEncoding.EncodeToString(salt),
		Nonce:     base64.StdEncoding.EncodeToString(nonce),
		Data:      base64.StdEncoding.EncodeToString(gcm.Seal(nil, nonce, payload, nil)),
	}
	out, err := json.MarshalIndent(wrapped, "", "  ")
	if err != nil {
		return nil, wrapErr(EntityExport, "encrypt", 0, err)
	}
	return out, nil
}

// maybeDecrypt returns the plaintext payload. Unencrypted exports pass
// through untouched; encrypted ones require the matching passphrase.
func maybeDecrypt(data []byte, passphrase string) ([]byte, error) {
	var wrapped encryptedExport
	if err := json.Unmarshal(data, &wrapped); err != nil || !wrapped.Encrypted {
		return data, nil
	}
	salt, err := base64.StdEncoding.DecodeString(wrapped.Salt)
	if err != nil {
		return nil, wrapErr(EntityExport, "decrypt", 0, err)
	}
	nonce, err := base64.StdEncoding.DecodeString(wrapped.Nonce)
	if err != nil {
		return nil, wrapErr(EntityExport, "decrypt", 0, err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(wrapped.Data)
	if err != nil {
		return nil, wrapErr(EntityExport, "decrypt", 0, err)
	}
	key, err := util.DeriveKey(passphrase, salt)
	if err != nil {
		return nil, wrapErr(EntityExport, "decrypt", 0, err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, wrapErr(EntityExport, "decrypt", 0, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, wrapErr(EntityExport, "decrypt", 0, err)
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, wrapErr(EntityExport, "decrypt", 0, ErrWrongPassphrase)
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, wrapErr(EntityExport, "decrypt", 0, ErrWrongPassphrase)
	}
	return plaintext, nil
}
