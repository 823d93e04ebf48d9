package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Organizations() OrganizationRepository
	Clients() ClientRepository
	Measurements() MeasurementRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	PaymentIntents() PaymentIntentRepository
	TrackingTokens() TrackingTokenRepository
	Invoices() InvoiceRepository
}
