package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/data61/echronos-lwip/internal/config"
	"github.com/data61/echronos-lwip/internal/output"
	"github.com/data61/echronos-lwip/internal/repofind"
	"github.com/data61/echronos-lwip/internal/rtos"
)

// BuildCmd creates and returns the 'build' command that generates every
// configured (skeleton, architecture) module.
func BuildCmd() *cobra.Command {
	var dir string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate all configured RTOS modules",
		Long: `Generate RTOS modules for every (skeleton, architecture) pair listed in
the project's configurations.

Generation is strictly sequential; the first failure aborts the run and
leaves already-written artifacts in place.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runBuild(dir, quiet); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Project directory containing rtos.yml")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress per-artifact progress output")

	return cmd
}

func runBuild(dir string, quiet bool) error {
	project, err := config.Load(dir)
	if err != nil {
		return err
	}

	loc, err := repofind.New(filepath.Join(dir, project.Core), dir)
	if err != nil {
		return err
	}

	outRoot := filepath.Join(dir, project.Output)
	var progress io.Writer = os.Stdout
	if quiet {
		progress = io.Discard
	}

	// Deterministic order across runs; the per-skeleton architecture list
	// keeps its configured order.
	skeletons := make([]string, 0, len(project.Configurations))
	for name := range project.Configurations {
		skeletons = append(skeletons, name)
	}
	sort.Strings(skeletons)

	ctx := context.Background()
	for _, name := range skeletons {
		skeleton := project.Skeletons[name]
		for _, archName := range project.Configurations[name] {
			arch := project.Architectures[archName]
			if err := generateModule(ctx, loc, skeleton, arch, outRoot, progress); err != nil {
				return err
			}
		}
	}

	output.Success(fmt.Sprintf("Generated %d skeleton(s) into %s", len(skeletons), outRoot))
	return nil
}

func generateModule(ctx context.Context, loc *repofind.Locator, skeleton *rtos.Skeleton, arch *rtos.Architecture, outRoot string, progress io.Writer) error {
	output.Verbose(fmt.Sprintf("assembling %s for %s", skeleton.Name, arch.Name))

	module, err := skeleton.ConfiguredModule(loc, arch)
	if err != nil {
		return fmt.Errorf("skeleton %s, architecture %s: %w", skeleton.Name, arch.Name, err)
	}
	if err := module.Generate(ctx, outRoot, progress); err != nil {
		return fmt.Errorf("skeleton %s, architecture %s: %w", skeleton.Name, arch.Name, err)
	}

	output.Info(fmt.Sprintf("%s [%s]", module.ModuleName(), arch.Name))
	return nil
}
