package totp

// Config holds TOTP settings loaded from the environment.
type Config struct {
	Issuer        string `env:"TOTP_ISSUER" envDefault:"Enhanced Security"`
	SecretLength  int    `env:"TOTP_SECRET_LENGTH" envDefault:"10"`
	Period        uint   `env:"TOTP_PERIOD" envDefault:"30"`
	Skew          uint   `env:"TOTP_SKEW" envDefault:"1"`
	EncryptionKey string `env:"TOTP_ENCRYPTION_KEY"`              // base64 AES-256 key; secrets are stored in clear when empty
	QRMode        string `env:"TOTP_QR_MODE" envDefault:"remote"` // remote|inline
	QRRendererURL string `env:"TOTP_QR_RENDERER_URL" envDefault:"https://chart.googleapis.com/chart?chs=166x166&chld=L|0&cht=qr&chl="`
	QRSize        int    `env:"TOTP_QR_SIZE" envDefault:"166"`
}

// Validator builds a Validator from the configured period and skew.
func (c Config) Validator() Validator {
	return NewValidator(c.Period, c.Skew)
}
