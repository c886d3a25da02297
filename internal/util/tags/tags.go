package tags

import "sort"

// Standard tag keys for stack resources.
const (
	// KeyName is the console display name
	KeyName = "Name"

	// KeyStack identifies which stack a resource belongs to
	KeyStack = "vaultasg:stack"

	// KeySubnetName identifies the subnet group of a subnet
	KeySubnetName = "vaultasg:subnet-name"

	// KeySubnetType identifies the visibility of a subnet (Public, Isolated)
	KeySubnetType = "vaultasg:subnet-type"
)

// Tag is a key/value pair in template form.
type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// GroupTag is a tag on an auto-scaling group. PropagateAtLaunch copies it
// onto the instances the group launches.
type GroupTag struct {
	Key               string `json:"Key"`
	PropagateAtLaunch bool   `json:"PropagateAtLaunch"`
	Value             string `json:"Value"`
}

// TagBuilder provides a fluent interface for building resource tags.
type TagBuilder struct {
	tags map[string]string
}

// NewTagBuilder creates a builder with the stack tag and the user tags.
// Standard keys set later win over user tags of the same name.
func NewTagBuilder(stack string, user map[string]string) *TagBuilder {
	tb := &TagBuilder{tags: make(map[string]string, len(user)+2)}
	for k, v := range user {
		tb.tags[k] = v
	}
	tb.tags[KeyStack] = stack
	return tb
}

// WithName sets the Name tag.
func (tb *TagBuilder) WithName(name string) *TagBuilder {
	tb.tags[KeyName] = name
	return tb
}

// WithSubnet sets the subnet group and type tags.
func (tb *TagBuilder) WithSubnet(name, subnetType string) *TagBuilder {
	tb.tags[KeySubnetName] = name
	tb.tags[KeySubnetType] = subnetType
	return tb
}

// Build returns the tags sorted by key.
func (tb *TagBuilder) Build() []Tag {
	keys := tb.keys()
	out := make([]Tag, 0, len(keys))
	for _, k := range keys {
		out = append(out, Tag{Key: k, Value: tb.tags[k]})
	}
	return out
}

// BuildGroup returns the tags sorted by key, propagated to launched instances.
func (tb *TagBuilder) BuildGroup() []GroupTag {
	keys := tb.keys()
	out := make([]GroupTag, 0, len(keys))
	for _, k := range keys {
		out = append(out, GroupTag{Key: k, Value: tb.tags[k], PropagateAtLaunch: true})
	}
	return out
}

func (tb *TagBuilder) keys() []string {
	keys := make([]string, 0, len(tb.tags))
	for k := range tb.tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
