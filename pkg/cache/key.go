// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// KeyGenerator generates cache keys.
type KeyGenerator struct {
	prefix string
}

// NewKeyGenerator creates a key generator. An empty prefix produces unprefixed keys.
func NewKeyGenerator(prefix string) *KeyGenerator {
	return &KeyGenerator{
		prefix: prefix,
	}
}

// Generate hashes inputs into a fixed-length key.
// Inputs are NUL-separated so ("ab", "c") and ("a", "bc") differ.
func (kg *KeyGenerator) Generate(inputs ...string) string {
	h := sha256.New()
	for i, input := range inputs {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(input))
	}
	return kg.join(hex.EncodeToString(h.Sum(nil)))
}

// Namespaced builds a readable key such as "user:1".
func (kg *KeyGenerator) Namespaced(namespace, id string) string {
	return kg.join(namespace + ":" + id)
}

func (kg *KeyGenerator) join(key string) string {
	if kg.prefix == "" {
		return key
	}
	return strings.Join([]string{kg.prefix, key}, ":")
}
