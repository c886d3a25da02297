package descriptor

// ManifestVersion is the schema version of the assembly manifest.
const ManifestVersion = "1.0.0"

// ArtifactTypeStack marks a stack template artifact.
const ArtifactTypeStack = "aws:cloudformation:stack"

// Manifest lists the artifacts of an assembly.
type Manifest struct {
	Version   string              `json:"version"`
	Artifacts map[string]Artifact `json:"artifacts"`
}

// Artifact is one deployable unit of an assembly.
type Artifact struct {
	Type        string             `json:"type"`
	Environment string             `json:"environment"`
	Properties  ArtifactProperties `json:"properties"`
}

// ArtifactProperties locates and fingerprints a stack template.
type ArtifactProperties struct {
	TemplateFile string `json:"templateFile"`
	TemplateHash string `json:"templateHash"`
	Description  string `json:"description,omitempty"`
}

func newManifest(d *Descriptor, description string) Manifest {
	return Manifest{
		Version: ManifestVersion,
		Artifacts: map[string]Artifact{
			d.StackName: {
				Type:        ArtifactTypeStack,
				Environment: d.Environment,
				Properties: ArtifactProperties{
					TemplateFile: d.TemplateFile,
					TemplateHash: d.TemplateHash,
					Description:  description,
				},
			},
		},
	}
}
