// Package vault stores marketplace credentials encrypted at rest.
//
// Values go through a secrets.Codec on the way in and out, so a Store only
// ever holds envelopes (or legacy plaintext written before encryption was
// introduced). Three stores are provided: MemoryStore, RedisStore and
// PostgresStore; the Postgres schema ships as an embedded goose migration in
// Migrations.
//
//	v := vault.New(vault.NewRedisStore(client, "", 0), layer.Codec,
//	    vault.WithLogger(layer.Slog("Vault")))
//	if err := v.Put(ctx, "account:42:cookie", cookie); err != nil {
//	    return err
//	}
//
// Reseal migrates legacy plaintext values to envelopes in place:
//
//	report, err := v.Reseal(ctx, false)
package vault
