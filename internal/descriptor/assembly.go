package descriptor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestFile is the manifest file name inside an assembly directory.
const ManifestFile = "manifest.json"

// WriteAssembly writes the template and manifest into dir, creating it if
// needed, and returns the written paths.
func WriteAssembly(dir string, d *Descriptor) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create assembly directory %s: %w", dir, err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{d.TemplateFile, d.Template},
		{ManifestFile, d.Manifest},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		// #nosec G306
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadAssembly loads the descriptor of a previously written assembly. The
// manifest must list exactly one stack and the template on disk must still
// match the recorded hash.
func ReadAssembly(dir string) (*Descriptor, error) {
	manifestPath := filepath.Join(dir, ManifestFile)
	manifestData, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}

	var m Manifest
	if err := json.Unmarshal(manifestData, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", manifestPath, err)
	}
	if len(m.Artifacts) != 1 {
		return nil, fmt.Errorf("expected one stack artifact in %s, found %d", manifestPath, len(m.Artifacts))
	}

	var (
		name     string
		artifact Artifact
	)
	for k, v := range m.Artifacts {
		name, artifact = k, v
	}
	if artifact.Type != ArtifactTypeStack {
		return nil, fmt.Errorf("artifact %s has unsupported type %q", name, artifact.Type)
	}

	templatePath := filepath.Join(dir, filepath.Base(artifact.Properties.TemplateFile))
	template, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", templatePath, err)
	}

	hash := hashOf(template)
	if hash != artifact.Properties.TemplateHash {
		return nil, fmt.Errorf("template %s does not match manifest hash (got %s, want %s)",
			templatePath, hash, artifact.Properties.TemplateHash)
	}

	t, err := Parse(template)
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		StackName:    name,
		Environment:  artifact.Environment,
		TemplateFile: artifact.Properties.TemplateFile,
		Template:     template,
		TemplateHash: hash,
		Manifest:     manifestData,
		Summary:      summarize(t),
	}, nil
}
