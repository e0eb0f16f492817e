// Package botguard is the sensitive-data protection layer of the bot.
//
// Credentials such as account cookies and access tokens must never reach a
// log line or a database row in plaintext. The packages under pkg/ cover the
// two halves of that guarantee:
//
//   - pkg/secrets derives the symmetric key from ENCRYPTION_KEY and seals
//     values into "iv:tag:ciphertext" hex envelopes (AES-256-GCM).
//   - pkg/redact masks credentials in free text with an ordered rule set.
//   - pkg/logfile owns the per-day log directories, the durable write queue
//     and retention pruning.
//   - pkg/logger is the leveled, module-tagged pipeline that redacts every
//     line before it reaches the console or the log file.
//   - pkg/protection wires all of the above into one Layer per process.
//   - pkg/vault stores sealed values in memory, Redis or PostgreSQL.
//
// The botguard command (cmd/botguard) exposes key generation, encryption
// helpers, log pruning, vault maintenance and the long-running housekeeping
// process.
//
// Basic Usage:
//
//	cfg, err := protection.LoadConfig()
//	if err != nil {
//		return err
//	}
//	layer, err := protection.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer layer.Close(context.Background())
//
//	log := layer.Module("Account")
//	log.Infof("login with token=%s", token) // written as token=******
//
//	sealed, err := layer.Codec.Encrypt(cookie)
package botguard
