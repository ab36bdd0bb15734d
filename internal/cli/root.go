package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/agentx-labs/create-jslib/internal/branding"
	"github.com/agentx-labs/create-jslib/internal/config"
	"github.com/agentx-labs/create-jslib/internal/installer"
	"github.com/agentx-labs/create-jslib/internal/output"
	"github.com/agentx-labs/create-jslib/internal/resolver"
	"github.com/agentx-labs/create-jslib/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	templateFlag string
	verboseFlag  bool
)

// newInstaller builds the installer for the configured package manager.
var newInstaller = func(program string) installer.Installer {
	return installer.NewNPM(program)
}

type versioned interface {
	Version(ctx context.Context) (*semver.Version, error)
}

func init() {
	rootCmd.Flags().StringVarP(&templateFlag, "template", "t", "", "Template package to bootstrap from (name, @scope/name, file: path or tarball URL)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Print debug logs and run the package manager verbosely")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <project-directory>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a JavaScript library from a template package.

The template is installed with the configured package manager, its
dependencies are added to the new project, its scripts are merged into
package.json and its template/ directory is copied into place. If anything
fails after the template is fetched, generated files are removed again.

Examples:
  ` + branding.CLIName() + ` my-lib
  ` + branding.CLIName() + ` my-lib --template typescript
  ` + branding.CLIName() + ` my-lib --template file:../my-template`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		output.SetupLogging(verboseFlag)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runCreate(ctx context.Context, out io.Writer, dir string) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return &ExitError{Err: fmt.Errorf("resolving %s: %w", dir, err), Code: 1}
	}
	appName := filepath.Base(root)
	if err := ValidateProjectName(appName); err != nil {
		return &ExitError{Err: fmt.Errorf("cannot create a project named %q: %w", appName, err), Code: 1}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return &ExitError{Err: fmt.Errorf("resolving working directory: %w", err), Code: 1}
	}

	tplName := templateFlag
	if tplName == "" {
		tplName = config.DefaultTemplate()
	}

	inst := newInstaller(config.PackageManager())
	checkPackageManager(ctx, inst)

	fmt.Fprintf(out, "Creating a new JavaScript library in %s.\n\n", output.Noun(root))

	p, err := scaffold.Prepare(root, appName)
	if err != nil {
		return &ExitError{Err: err, Code: 1}
	}

	s := scaffold.New(scaffold.Options{
		Installer: inst,
		Resolver:  &resolver.Resolver{Prefix: branding.TemplatePrefix(), BaseDir: cwd},
		Out:       out,
		Verbose:   verboseFlag,
	})
	if err := s.Run(ctx, p, tplName); err != nil {
		output.Debug("bootstrap failed", "err", err)
		return &ExitError{Err: err, Code: 1, Printed: true}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, output.FormatCheckmark(fmt.Sprintf("Created %s at %s", appName, output.Noun(root))))
	return nil
}

// checkPackageManager warns when the package manager reports a release older
// than installer.MinimumVersion. Installers that cannot report one are
// trusted.
func checkPackageManager(ctx context.Context, inst installer.Installer) {
	v, ok := inst.(versioned)
	if !ok {
		return
	}
	version, err := v.Version(ctx)
	if err != nil {
		output.Warn("could not determine package manager version", "err", err)
		return
	}
	if err := installer.CheckVersion(version, installer.MinimumVersion); err != nil {
		output.Warn("package manager may be too old", "err", err)
	}
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
