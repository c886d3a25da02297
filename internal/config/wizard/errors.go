package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errStackNameRequired = errors.New("stack name is required")
	errStackNameInvalid  = errors.New("stack name must start with a letter and contain only letters, digits or hyphens (max 128)")
	errCIDRRequired      = errors.New("CIDR is required")
	errCIDRInvalid       = errors.New("invalid CIDR format (expected: x.x.x.x/16 to x.x.x.x/28)")
	errImageRequired     = errors.New("image ID is required")
	errImageInvalid      = errors.New("image ID must look like ami-0123456789abcdef0")
)
