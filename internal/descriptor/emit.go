package descriptor

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"sigs.k8s.io/yaml"

	"github.com/phoenixveritas/vaultasg/internal/stack"
	"github.com/phoenixveritas/vaultasg/internal/util/naming"
)

// Descriptor is the emitted form of one stack: its template, the assembly
// manifest that points at it and a summary of what it declares.
type Descriptor struct {
	StackName    string
	Environment  string
	TemplateFile string
	Template     []byte
	TemplateHash string
	Manifest     []byte
	Summary      []ResourceCount
}

// ResourceCount is the number of resources of one type.
type ResourceCount struct {
	Type  string
	Count int
}

// Emit renders a validated graph. Nodes are visited in dependency order and
// every map is marshaled with sorted keys, so equal graphs give
// byte-identical descriptors.
func Emit(g *stack.Graph) (*Descriptor, error) {
	if g == nil {
		return nil, fmt.Errorf("cannot emit a nil graph")
	}

	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to order graph: %w", err)
	}

	e := newEmitter(g)
	for _, n := range order {
		switch n.Kind {
		case stack.KindNetwork:
			e.emitNetwork(n)
		case stack.KindSubnet:
			err = e.emitSubnet(n)
		case stack.KindRole:
			e.emitRole(n)
		case stack.KindScalingGroup:
			err = e.emitScalingGroup(n)
		case stack.KindScalingPolicy:
			e.emitScalingPolicy(n)
		default:
			err = fmt.Errorf("unsupported node kind %q", n.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to emit %s: %w", n.ID, err)
		}
	}

	template, err := marshal(e.t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}

	d := &Descriptor{
		StackName:    g.StackName,
		Environment:  environmentURI(g.Env),
		TemplateFile: naming.TemplateFile(g.StackName),
		Template:     template,
		TemplateHash: hashOf(template),
		Summary:      summarize(e.t),
	}

	d.Manifest, err = marshal(newManifest(d, g.Description))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	return d, nil
}

// TemplateYAML renders the template as YAML.
func (d *Descriptor) TemplateYAML() ([]byte, error) {
	out, err := yaml.JSONToYAML(d.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to convert template to YAML: %w", err)
	}
	return out, nil
}

// ResourceTotal returns the number of resources in the template.
func (d *Descriptor) ResourceTotal() int {
	total := 0
	for _, c := range d.Summary {
		total += c.Count
	}
	return total
}

// Parse decodes template bytes.
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &t, nil
}

func hashOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func summarize(t *Template) []ResourceCount {
	counts := make(map[string]int)
	for _, r := range t.Resources {
		counts[r.Type]++
	}

	out := make([]ResourceCount, 0, len(counts))
	for typ, n := range counts {
		out = append(out, ResourceCount{Type: typ, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

func environmentURI(env stack.Environment) string {
	if env.IsAgnostic() {
		return "aws://unknown-account/unknown-region"
	}
	account, region := env.Account, env.Region
	if account == "" {
		account = "unknown-account"
	}
	if region == "" {
		region = "unknown-region"
	}
	return fmt.Sprintf("aws://%s/%s", account, region)
}
