package main

// @title Courier Ledger API
// @version 1.0
// @description Bookings, expenses and their payment ledgers for a courier network.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	Execute()
}
