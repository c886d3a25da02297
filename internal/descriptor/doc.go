// Package descriptor renders a validated stack graph into the resource
// descriptor consumed by the external provisioning engine.
//
// The descriptor is a CloudFormation-shaped template (typed resources with
// Ref and Fn::GetAtt references between them) plus an assembly manifest
// that names the template file, its environment and its SHA-256. [Emit] is
// deterministic: equal graphs yield byte-identical templates, which the
// engine relies on when diffing against deployed state.
package descriptor
