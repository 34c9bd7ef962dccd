package models

// ModelRegistry lists the models created by --auto-migrate in development.
var ModelRegistry = []interface{}{
	&WaitlistSubmission{},
}
