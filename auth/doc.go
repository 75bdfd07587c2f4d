// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation and IP hashing utilities.

# Random IDs

GenerateID creates random hex identifiers of a given byte length:

	pollID, err := auth.GenerateID(16) // 32 hex chars

Used for poll, option, and ledger entry IDs.

# IP Hashing

HashIP produces a salted one-way hash of a client IP:

	hash := auth.HashIP(ip, cfg.IPHashSalt)

The vote ledger stores only this hash, never the raw address. HMAC-SHA256
truncated to 64 bits is enough for fraud review and deduplication without
being reversible to an address.
*/
package auth
