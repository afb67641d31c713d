// Package config loads the rtos.yml project file describing skeletons,
// architectures and the skeleton-to-architecture build matrix.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/data61/echronos-lwip/internal/rtos"
)

// ProjectFile is the expected project file name in the invocation directory.
const ProjectFile = "rtos.yml"

// Project is the fully resolved project configuration.
type Project struct {
	// Output is the output root for generated modules, relative to the
	// invocation directory.
	Output string
	// Core is the shared core repository directory.
	Core string
	// Configurations maps a skeleton name to the architectures it is built
	// for.
	Configurations map[string][]string
	Architectures  map[string]*rtos.Architecture
	Skeletons      map[string]*rtos.Skeleton
}

type rawProject struct {
	Configurations map[string][]string    `yaml:"configurations"`
	Architectures  map[string]rawArch     `yaml:"architectures"`
	Skeletons      map[string]rawSkeleton `yaml:"skeletons"`
}

type rawArch struct {
	Config map[string]any `yaml:"config"`
}

type rawSkeleton struct {
	Metadata   string         `yaml:"metadata"`
	Config     map[string]any `yaml:"config"`
	Components []rawComponent `yaml:"components"`
}

type rawComponent struct {
	Name         string         `yaml:"name"`
	Resource     string         `yaml:"resource"`
	ArchSpecific bool           `yaml:"arch_specific"`
	Config       map[string]any `yaml:"config"`
}

// Load reads the project file from dir and resolves it into skeleton and
// architecture values. Project-level settings (output root, core repository
// dir) go through viper so they can be overridden from the environment with
// an RTOS_ prefix.
func Load(dir string) (*Project, error) {
	path := filepath.Join(dir, ProjectFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s not found. Are you in an RTOS project directory?", ProjectFile)
	}

	v := viper.New()
	v.SetConfigName("rtos")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AutomaticEnv()
	v.SetEnvPrefix("RTOS")
	v.SetDefault("project.output", "packages")
	v.SetDefault("project.core", ".")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ProjectFile, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ProjectFile, err)
	}
	var raw rawProject
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}

	project := &Project{
		Output:         v.GetString("project.output"),
		Core:           v.GetString("project.core"),
		Configurations: raw.Configurations,
		Architectures:  map[string]*rtos.Architecture{},
		Skeletons:      map[string]*rtos.Skeleton{},
	}

	for name, arch := range raw.Architectures {
		project.Architectures[name] = &rtos.Architecture{Name: name, Config: arch.Config}
	}

	coreDir := filepath.Join(dir, project.Core)
	for name, skel := range raw.Skeletons {
		resolved, err := resolveSkeleton(name, skel, dir, coreDir)
		if err != nil {
			return nil, err
		}
		project.Skeletons[name] = resolved
	}

	if err := project.validate(); err != nil {
		return nil, err
	}
	return project, nil
}

func resolveSkeleton(name string, raw rawSkeleton, dir, coreDir string) (*rtos.Skeleton, error) {
	if len(raw.Components) == 0 {
		return nil, fmt.Errorf("skeleton %q has no components", name)
	}

	components := make([]rtos.SectionSource, 0, len(raw.Components))
	for _, rc := range raw.Components {
		if rc.Name == "" {
			return nil, fmt.Errorf("skeleton %q has a component without a name", name)
		}
		if rc.ArchSpecific {
			components = append(components, rtos.NewArchitectureComponent(rc.Name, rc.Resource, rc.Config))
		} else {
			components = append(components, rtos.NewComponent(rc.Name, rc.Resource, rc.Config))
		}
	}

	metadata := raw.Metadata
	switch {
	case metadata == "":
		metadata = filepath.Join(coreDir, "components", name+".yml")
	case !filepath.IsAbs(metadata):
		metadata = filepath.Join(dir, metadata)
	}

	return &rtos.Skeleton{
		Name:         name,
		Components:   components,
		Config:       raw.Config,
		MetadataPath: metadata,
	}, nil
}

func (p *Project) validate() error {
	for skeleton, archs := range p.Configurations {
		if _, ok := p.Skeletons[skeleton]; !ok {
			return fmt.Errorf("configuration references unknown skeleton %q", skeleton)
		}
		if len(archs) == 0 {
			return fmt.Errorf("configuration for skeleton %q lists no architectures", skeleton)
		}
		for _, arch := range archs {
			if _, ok := p.Architectures[arch]; !ok {
				return fmt.Errorf("configuration for skeleton %q references unknown architecture %q", skeleton, arch)
			}
		}
	}
	return nil
}
