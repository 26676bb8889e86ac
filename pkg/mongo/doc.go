// Package mongo connects to MongoDB using the official v2 driver with
// env-driven pool settings and connection retries, and exposes a health
// check for the HTTP server.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
// Errors are sentinel values joined with the driver error; check them with
// errors.Is.
package mongo
