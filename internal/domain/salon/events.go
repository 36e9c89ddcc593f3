package salon

// ===============================
// Audit actions
// ===============================

const (
	ActionUserRegistered    = "user_registered"
	ActionUserLoggedIn      = "user_logged_in"
	ActionSalonCreated      = "salon_created"
	ActionSalonImageUpdated = "salon_image_updated"
	ActionServiceCreated    = "service_created"
	ActionServiceUpdated    = "service_updated"
	ActionServiceDeleted    = "service_deleted"
)

const (
	EntityUser    = "user"
	EntitySalon   = "salon"
	EntityService = "service"
)
