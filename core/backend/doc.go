// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backend is the narrow call-through to the arithmetic, curve, hash
// and random-number primitives of the Go crypto packages. Inputs and outputs
// are raw key fields; nothing here keeps state, so every function is safe to
// call concurrently.
package backend
