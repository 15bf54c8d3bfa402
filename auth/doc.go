// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth derives and checks stored voter secrets.

Secrets are never persisted as given. HashSecret runs HMAC-SHA256 keyed with
the server's secret salt and returns URL-safe base64 without padding:

	hash := auth.HashSecret(secret, cfg.SecretSalt)
	err := auth.VerifySecret(secret, hash, cfg.SecretSalt)

VerifySecret compares with hmac.Equal, so timing does not reveal how much of
the secret matched.
*/
package auth
