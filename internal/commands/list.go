package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/data61/echronos-lwip/internal/config"
	"github.com/data61/echronos-lwip/internal/output"
	"github.com/data61/echronos-lwip/internal/rtos"
)

// ListCmd creates and returns the 'list' command that prints the resolved
// project: skeletons, their components, and target architectures.
func ListCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured skeletons and architectures",
		Run: func(cmd *cobra.Command, args []string) {
			project, err := config.Load(dir)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			skeletons := make([]string, 0, len(project.Skeletons))
			for name := range project.Skeletons {
				skeletons = append(skeletons, name)
			}
			sort.Strings(skeletons)

			for _, name := range skeletons {
				skeleton := project.Skeletons[name]
				archs := project.Configurations[name]
				if len(archs) == 0 {
					output.Info(fmt.Sprintf("%s (not configured)", name))
				} else {
					output.Info(fmt.Sprintf("%s -> %s", name, strings.Join(archs, ", ")))
				}
				for _, component := range skeleton.Components {
					output.Step(describeComponent(component))
				}
			}
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Project directory containing rtos.yml")

	return cmd
}

func describeComponent(component rtos.SectionSource) string {
	if _, ok := component.(*rtos.ArchitectureComponent); ok {
		return component.ComponentName() + " (arch-specific)"
	}
	return component.ComponentName()
}
