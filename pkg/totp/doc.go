// Package totp implements the building blocks of time-based one-time password
// enrollment: secret generation, provisioning URIs, code validation and
// optional encryption of secrets at rest.
//
// Secrets are short random strings over a lowercase alphanumeric alphabet.
// The raw characters are the HMAC key. Authenticator apps receive the secret
// base32-encoded (see package base32) inside an otpauth URI.
//
// Code computation is delegated to github.com/pquerna/otp. Validator adds the
// drift window policy: the current window and Skew windows on either side are
// all computed and compared in constant time.
//
// # Usage
//
//	secret, err := totp.GenerateSecret(totp.DefaultSecretLength)
//	if err != nil {
//		return err
//	}
//	encoded := base32.EncodeString(secret)
//
//	uri, err := totp.ProvisioningURI(totp.URIParams{
//		Issuer:      "Acme",
//		AccountName: "alice@example.com",
//		Secret:      encoded,
//	})
//
//	ok, err := totp.NewValidator(30, 1).Validate(encoded, "123456")
//
// # Encryption at rest
//
// NewSealer returns an AES-256-GCM sealer when TOTP_ENCRYPTION_KEY holds a
// base64 encoded 32 byte key. The cmd directory contains a generator for
// such keys.
//
// # Error Handling
//
// Errors are package-level sentinels, joined with the underlying cause via
// errors.Join. Use errors.Is to classify them.
package totp
