// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"sort"

	"github.com/toeirei/sshkeys/core/keyerr"
)

// CipherNone marks an unencrypted private section.
const CipherNone = "none"

// DefaultCipher is what ssh-keygen picks for new keys.
const DefaultCipher = "aes256-ctr"

// UnencryptedBlockSize is the padding block for CipherNone.
const UnencryptedBlockSize = 8

type mode int

const (
	modeCTR mode = iota
	modeCBC
)

// Cipher describes one entry of the cipher table.
type Cipher struct {
	Name      string
	KeyLen    int
	IVLen     int
	BlockSize int

	mode     mode
	newBlock func(key []byte) (cipher.Block, error)
}

var ciphers = map[string]*Cipher{
	"aes128-ctr": {Name: "aes128-ctr", KeyLen: 16, IVLen: aes.BlockSize, BlockSize: aes.BlockSize, mode: modeCTR, newBlock: aes.NewCipher},
	"aes192-ctr": {Name: "aes192-ctr", KeyLen: 24, IVLen: aes.BlockSize, BlockSize: aes.BlockSize, mode: modeCTR, newBlock: aes.NewCipher},
	"aes256-ctr": {Name: "aes256-ctr", KeyLen: 32, IVLen: aes.BlockSize, BlockSize: aes.BlockSize, mode: modeCTR, newBlock: aes.NewCipher},
	"aes128-cbc": {Name: "aes128-cbc", KeyLen: 16, IVLen: aes.BlockSize, BlockSize: aes.BlockSize, mode: modeCBC, newBlock: aes.NewCipher},
	"aes192-cbc": {Name: "aes192-cbc", KeyLen: 24, IVLen: aes.BlockSize, BlockSize: aes.BlockSize, mode: modeCBC, newBlock: aes.NewCipher},
	"aes256-cbc": {Name: "aes256-cbc", KeyLen: 32, IVLen: aes.BlockSize, BlockSize: aes.BlockSize, mode: modeCBC, newBlock: aes.NewCipher},
	"3des-cbc":   {Name: "3des-cbc", KeyLen: 24, IVLen: des.BlockSize, BlockSize: des.BlockSize, mode: modeCBC, newBlock: des.NewTripleDESCipher},
}

// LookupCipher returns the table entry for name.
func LookupCipher(name string) (*Cipher, error) {
	c, ok := ciphers[name]
	if !ok {
		return nil, keyerr.New(keyerr.UnsupportedCipher, "encryption.LookupCipher", "cipher %q", name)
	}
	return c, nil
}

// CipherNames lists the supported cipher names, sorted.
func CipherNames() []string {
	names := make([]string, 0, len(ciphers))
	for n := range ciphers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// BlockSizeOf is the padding block size for a cipher name, including none.
func BlockSizeOf(name string) (int, error) {
	if name == CipherNone {
		return UnencryptedBlockSize, nil
	}
	c, err := LookupCipher(name)
	if err != nil {
		return 0, err
	}
	return c.BlockSize, nil
}

func (c *Cipher) stream(key, iv []byte, decrypt bool, in []byte) ([]byte, error) {
	if len(key) != c.KeyLen || len(iv) != c.IVLen {
		return nil, keyerr.New(keyerr.BackendFailure, "encryption."+c.Name, "key/iv length %d/%d, want %d/%d", len(key), len(iv), c.KeyLen, c.IVLen)
	}
	if len(in)%c.BlockSize != 0 {
		return nil, keyerr.New(keyerr.MalformedEncoding, "encryption."+c.Name, "input length %d is not a multiple of %d", len(in), c.BlockSize)
	}
	block, err := c.newBlock(key)
	if err != nil {
		return nil, keyerr.Wrap(keyerr.BackendFailure, "encryption."+c.Name, err)
	}
	out := make([]byte, len(in))
	switch c.mode {
	case modeCTR:
		cipher.NewCTR(block, iv).XORKeyStream(out, in)
	case modeCBC:
		if decrypt {
			cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, in)
		} else {
			cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, in)
		}
	}
	return out, nil
}

// Encrypt enciphers plaintext, whose length must be a multiple of BlockSize.
func (c *Cipher) Encrypt(key, iv, plaintext []byte) ([]byte, error) {
	return c.stream(key, iv, false, plaintext)
}

// Decrypt deciphers ciphertext, whose length must be a multiple of BlockSize.
func (c *Cipher) Decrypt(key, iv, ciphertext []byte) ([]byte, error) {
	return c.stream(key, iv, true, ciphertext)
}
