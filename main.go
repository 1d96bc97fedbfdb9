package main

import (
	"flag"

	"warbler/database"
	"warbler/http"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're running in production.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	flag.Parse()

	// Load configuration from a .config.json file if present, otherwise use the default dev setup.
	// If *productionBool evaluates to true, the .config.json file is required
	// and the app will panic if no file is found.
	config := LoadConfig(*productionBool)

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	err := Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// Start the database services.
	services, err := database.NewServices(
		db.Gorm,
		database.WithUser(config.Pepper),
		database.WithMessage(),
		database.WithFollow(),
		database.WithLike(),
	)
	must(err)

	// Set up a webserver.
	server := http.NewServer(config.SessionKey, config.IsProd(), services)

	// Serve the app.
	server.Run(config.Port)
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
