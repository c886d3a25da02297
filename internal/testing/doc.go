// Package testing provides builders and fixtures shared by tests that sit
// above the config, stack and descriptor packages.
//
// Usage:
//
//	cfg := vtesting.NewConfigBuilder().
//	    WithStackName("Vault").
//	    WithRegion("us-east-2").
//	    Build()
//
//	d := vtesting.Descriptor(t, cfg)
package testing
