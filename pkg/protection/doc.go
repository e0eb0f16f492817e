// Package protection assembles the sensitive-data protection layer of a
// process: the encryption codec and the leveled, redacting, file-backed
// logger.
//
//	cfg, err := protection.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	layer, err := protection.New(ctx, cfg)
//	if err != nil {
//	    return err // e.g. secrets.ErrMissingSecret in production
//	}
//	defer layer.Close(context.Background())
//
//	api := layer.Module("Api")
//	stored, err := layer.Codec.Encrypt(cookie)
//
// Nothing here is global. Tests build as many layers as they need, each with
// its own log directory.
package protection
