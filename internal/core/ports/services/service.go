package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Document     DocumentSvcFacade
	Exporter     ExportSvcFacade
	Email        EmailSvc
	Counterparty CounterpartySvcFacade
	Account      AccountSvcFacade
	Journal      JournalSvcFacade
	Payment      PaymentSvcFacade
	Dashboard    DashboardSvc
	User         UserSvcFacade
	Token        TokenSvcFacade
	GoogleOAuth  GoogleOAuthSvcFacade
}
