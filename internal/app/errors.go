package app

import "errors"

var (
	// ErrNotFound reports a missing row for Get/Update/Delete by id.
	ErrNotFound = errors.New("not found")

	// ErrEmailAlreadyUsed keeps the exact message clients of the original
	// API match on.
	ErrEmailAlreadyUsed = errors.New("Email already used")

	// ErrRegistrationAlreadyUsed reports a duplicate vehicle plate.
	ErrRegistrationAlreadyUsed = errors.New("Registration already used")

	// ErrNameAlreadyUsed reports a duplicate brand name.
	ErrNameAlreadyUsed = errors.New("Name already used")

	// ErrUnknownReference reports a body referencing a row that does not
	// exist (unknown pro, vehicle, brand...).
	ErrUnknownReference = errors.New("referenced resource does not exist")

	// ErrResourceInUse reports a delete blocked by rows still referencing
	// the target.
	ErrResourceInUse = errors.New("resource is still referenced")

	// ErrInvalidCredentials is safe to show to end users and does not
	// enable account enumeration.
	ErrInvalidCredentials = errors.New("Incorrect email address or password")

	// ErrNoInvoice reports a service record without an attached invoice.
	ErrNoInvoice = errors.New("no invoice attached")

	// ErrInvoiceStorageUnavailable reports that object storage is not
	// configured on this deployment.
	ErrInvoiceStorageUnavailable = errors.New("invoice storage unavailable")
)
