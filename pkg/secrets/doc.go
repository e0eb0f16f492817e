// Package secrets protects credentials (marketplace cookies, API keys) at
// rest with AES-256-GCM.
//
// # Architecture
//
//  1. Keyring derives a 32-byte key from ENCRYPTION_KEY with scrypt
//     (N=16384, r=8, p=1) and the application salt, once per process.
//     Without a secret it fails with ErrMissingSecret, except in development
//     where a documented insecure key is used and a warning is logged.
//  2. Codec seals strings with a fresh random 16-byte IV and a 16-byte tag
//     and renders them as "<ivHex>:<tagHex>:<ciphertextHex>".
//  3. Values that are not envelopes are legacy plaintext: Decrypt returns them
//     untouched so unmigrated rows keep working next to encrypted ones.
//
// # Usage
//
//	keys := secrets.NewKeyring(cfg, secrets.WithKeyringLogger(log))
//	if err := keys.Check(); err != nil {
//	    return err // ErrMissingSecret stops startup
//	}
//	codec := secrets.NewCodec(keys, secrets.WithDecryptMode(cfg.DecryptMode))
//
//	stored, err := codec.Encrypt(cookie)
//	if err != nil {
//	    return err
//	}
//	cookie, err = codec.Decrypt(stored)
//
// # Error Handling
//
// Encrypt never swallows errors; they wrap ErrEncryptionFailed (and
// ErrMissingSecret when the key is unavailable). Decrypt is lenient by
// default: an envelope that fails authentication is logged and returned as
// stored. Strict mode returns ErrDecryptionFailed instead. Open exposes the
// raw Result for callers that want to decide per call.
//
// # Salt
//
// The default salt is a literal shared by all installations (DefaultSalt),
// kept for compatibility with existing data. New deployments should set
// ENCRYPTION_SALT; a warning is logged in production while the default is in
// use.
package secrets
