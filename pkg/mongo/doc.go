// Package mongo manages the MongoDB connection used by the notification
// store.
//
// Configuration is environment-driven (see Config) and connection setup
// retries transient failures, which covers the usual managed-MongoDB
// hiccups without caller-side retry loops.
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	db, err := mongo.ConnectDatabase(ctx, cfg, "agrocert")
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := notification.NewMongoStore(db)
package mongo
