package secrets

import "github.com/dmitrymomot/botguard/pkg/environment"

// DefaultSalt is the application-wide salt used by existing deployments.
// It is shared by every installation, so two deployments configured with the
// same ENCRYPTION_KEY derive the same key. Set ENCRYPTION_SALT to a value
// unique to the installation for new deployments; changing it makes values
// encrypted under the old salt unreadable.
const DefaultSalt = "goofish-bot-salt"

// Config holds encryption settings. Populate with config.Load.
type Config struct {
	Env         environment.Environment `env:"APP_ENV" envDefault:"development"`
	Secret      string                  `env:"ENCRYPTION_KEY"`                                // Passphrase the encryption key is derived from.
	Salt        string                  `env:"ENCRYPTION_SALT" envDefault:"goofish-bot-salt"` // Key derivation salt, see DefaultSalt.
	DecryptMode DecryptMode             `env:"DECRYPT_MODE" envDefault:"lenient"`             // lenient or strict, see DecryptMode.
}
