package main

import "contacts_backend/internal/app"

// @title Contacts API
// @version 1.0
// @description REST API for managing personal contacts with JWT authentication.
// @BasePath /api/v1
func main() {
	app.Run()
}
