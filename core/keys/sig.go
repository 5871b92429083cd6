// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package keys

import "math/big"

// joinScalars writes r and s as two big-endian fields of width bytes each.
func joinScalars(r, s *big.Int, width int) []byte {
	out := make([]byte, 2*width)
	r.FillBytes(out[:width])
	s.FillBytes(out[width:])
	return out
}

func splitScalars(sig []byte) (r, s *big.Int) {
	half := len(sig) / 2
	return new(big.Int).SetBytes(sig[:half]), new(big.Int).SetBytes(sig[half:])
}
