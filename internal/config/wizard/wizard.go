package wizard

import (
	"context"
	"fmt"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Stack identity
	StackName string
	Region    string

	// Network
	NetworkCIDR     string
	IncludeIsolated bool
	Placement       string

	// Compute
	InstanceType    string
	ImageID         string
	MinCapacity     int
	DesiredCapacity int
	MaxCapacity     int
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("stack identity: %w", err)
	}

	if err := runNetworkGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	if err := runComputeGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}

	if err := runCapacityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("capacity: %w", err)
	}

	return result, nil
}
