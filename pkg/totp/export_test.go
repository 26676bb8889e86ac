package totp

// GenerateSecretFrom exposes the reader-injected generator to tests.
var GenerateSecretFrom = generateSecret
