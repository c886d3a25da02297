package naming

import (
	"fmt"
	"strings"
	"unicode"
)

// Fixed node IDs of the stack graph.
const (
	NetworkID       = "Vpc"
	RoleID          = "InstanceRole"
	ScalingGroupID  = "VaultAsg"
	ScalingPolicyID = "VaultAsgScaleOut"
)

// LogicalID joins parts into a CamelCase alphanumeric identifier.
func LogicalID(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		words := strings.FieldsFunc(part, func(r rune) bool {
			return !(unicode.IsLetter(r) || unicode.IsDigit(r)) || r > unicode.MaxASCII
		})
		for _, w := range words {
			b.WriteString(strings.ToUpper(w[:1]))
			b.WriteString(w[1:])
		}
	}
	return b.String()
}

// Subnet returns the node ID of the subnet of a group in an availability
// zone. Zones are numbered from 1 in the ID.
func Subnet(name string, az int) string {
	return LogicalID(NetworkID, name, fmt.Sprintf("Subnet%d", az+1))
}

// Child returns the logical ID of a resource owned by a node.
func Child(nodeID, child string) string {
	return nodeID + LogicalID(child)
}

// Path returns the construct path of a node or one of its children.
func Path(stack string, parts ...string) string {
	return strings.Join(append([]string{stack}, parts...), "/")
}

// TemplateFile returns the file name of a stack template in the assembly.
func TemplateFile(stack string) string {
	return fmt.Sprintf("%s.template.json", stack)
}

// ImageMapping returns the Mappings key holding per-region image IDs.
func ImageMapping() string {
	return Child(ScalingGroupID, "AmiMap")
}

// TemplateObjectKey returns the content-addressed object key of a template.
func TemplateObjectKey(prefix, hash string) string {
	return joinKey(prefix, hash+".json")
}

// ManifestObjectKey returns the object key of a stack's assembly manifest.
func ManifestObjectKey(prefix, stack string) string {
	return joinKey(prefix, stack, "manifest.json")
}

func joinKey(parts ...string) string {
	var kept []string
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}
