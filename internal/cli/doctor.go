package cli

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/agentx-labs/create-jslib/internal/config"
	"github.com/agentx-labs/create-jslib/internal/installer"
	"github.com/agentx-labs/create-jslib/internal/template"
	"github.com/spf13/cobra"
)

var checkTemplate string

func init() {
	doctorCmd.Flags().StringVar(&checkTemplate, "check-template", "", "Validate a template.json or template.yaml at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment used to bootstrap projects",
	Long:  `Verify the configured package manager is installed and recent enough, or validate template metadata.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if checkTemplate != "" {
			return runTemplateCheck(out, checkTemplate)
		}
		return runPackageManagerCheck(cmd, out)
	},
}

func runPackageManagerCheck(cmd *cobra.Command, out io.Writer) error {
	program := config.PackageManager()
	fmt.Fprintln(out, "Package manager check:")

	path, err := exec.LookPath(program)
	if err != nil {
		fmt.Fprintf(out, "  [MISS] %s not found\n", program)
		return fmt.Errorf("package manager %s not found", program)
	}
	fmt.Fprintf(out, "  [ OK ] %s found at %s\n", program, path)

	v, err := installer.NewNPM(program).Version(cmd.Context())
	if err != nil {
		fmt.Fprintf(out, "  [WARN] %v\n", err)
		return nil
	}
	if err := installer.CheckVersion(v, installer.MinimumVersion); err != nil {
		fmt.Fprintf(out, "  [FAIL] %s %v\n", program, err)
		return fmt.Errorf("%s %s is too old", program, v)
	}
	fmt.Fprintf(out, "  [ OK ] %s %s satisfies %s\n", program, v, installer.MinimumVersion)
	return nil
}

func runTemplateCheck(out io.Writer, path string) error {
	fmt.Fprintf(out, "Template validation: %s\n", path)

	result, err := template.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return fmt.Errorf("template validation failed: %w", err)
	}

	if result.Valid {
		fmt.Fprintf(out, "  [ OK ] Valid template metadata\n")
		return nil
	}

	fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "    - %s\n", issue)
	}
	return fmt.Errorf("template %s has %d validation issue(s)", path, len(result.Issues))
}
