package routes

const (
	// Health
	Health = "/health"

	Login = "/api/v1/login"
	Enums = "/api/v1/enums"

	// Buyer leads
	BuyersBase   = "/api/v1/buyers"
	BuyersExport = "/api/v1/buyers/export"
	BuyersImport = "/api/v1/buyers/import"
	BuyerByID    = "/api/v1/buyers/{id:[0-9a-fA-F-]{36}}"
	BuyerHistory = "/api/v1/buyers/{id:[0-9a-fA-F-]{36}}/history"
)
