package cmd

import (
	"fmt"
	"os"

	"github.com/byterings/gitu/internal/git"
	"github.com/byterings/gitu/internal/identity"
	"github.com/byterings/gitu/internal/platform"
	"github.com/byterings/gitu/internal/registry"
	"github.com/byterings/gitu/internal/ui"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration issues",
	Long: `Check gitu configuration health and diagnose common issues.

Runs checks on:
- Git availability and the global config file
- Registry file validity and permissions
- Whether git's current identity is a stored profile

Examples:
  gitu doctor          # Run diagnostics
  gitu doctor --fix    # Auto-fix permission issues`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVarP(&doctorFix, "fix", "f", false, "Auto-fix permission issues")
}

type checkResult struct {
	passed  bool
	message string
	fix     string // Suggested fix command
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println()
	fmt.Println("Checking gitu configuration...")
	fmt.Println()

	errors := 0
	warnings := 0

	tally := func(results []checkResult) {
		for _, r := range results {
			printCheckResult(r)
			if !r.passed && r.fix == "" {
				errors++
			} else if !r.passed {
				warnings++
			}
		}
	}

	fmt.Println("Git")
	fmt.Println("───")

	gitConfigPath, err := git.GlobalConfigPath(settings.GitConfigPath)
	if err != nil {
		return err
	}
	external := git.NewConfigStore(gitConfigPath, settings.GitBinary, logger.Named("git"))
	gitResults, current := checkGit(external, settings.GitBinary)
	tally(gitResults)

	fmt.Println()
	fmt.Println("Registry")
	fmt.Println("────────")

	registryResults, reg, fixed := checkRegistry(settings.RegistryPath, doctorFix)
	tally(registryResults)

	if reg != nil && current != nil {
		fmt.Println()
		fmt.Println("Identity")
		fmt.Println("────────")
		tally(checkIdentity(identity.Effective(reg, *current)))
	}

	fmt.Println()
	fmt.Println("─────────")

	if fixed > 0 {
		ui.Success(fmt.Sprintf("Auto-fixed %d issue(s)", fixed))
	}

	if errors == 0 && warnings == 0 {
		ui.Success("All checks passed!")
	} else if errors == 0 {
		ui.Warning(fmt.Sprintf("%d warning(s)", warnings))
	} else {
		ui.Error(fmt.Sprintf("%d error(s), %d warning(s)", errors, warnings))
	}

	return nil
}

func printCheckResult(r checkResult) {
	if r.passed {
		fmt.Printf("  ✓ %s\n", r.message)
	} else if r.fix != "" {
		fmt.Printf("  ⚠ %s\n", r.message)
		fmt.Printf("    → %s\n", r.fix)
	} else {
		fmt.Printf("  ✗ %s\n", r.message)
	}
}

// checkGit verifies git can be run and its global config parsed. The
// returned identity is nil when the config could not be read.
func checkGit(external *git.ConfigStore, binary string) ([]checkResult, *git.Identity) {
	var results []checkResult

	if git.IsGitInstalled(binary) {
		results = append(results, checkResult{
			passed:  true,
			message: fmt.Sprintf("git found (%s, %s)", binary, platform.GetPlatformName()),
		})
	} else {
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("git not found: %s", binary),
		})
	}

	current, err := external.Get()
	if err != nil {
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("Cannot read %s: %v", external.Path(), err),
		})
		return results, nil
	}

	results = append(results, checkResult{
		passed:  true,
		message: fmt.Sprintf("Global config: %s", external.Path()),
	})
	return results, &current
}

// checkRegistry verifies the registry file parses and is not readable by
// other users. The returned registry is nil when it could not be loaded.
func checkRegistry(path string, autoFix bool) ([]checkResult, *registry.Registry, int) {
	var results []checkResult
	fixed := 0

	if _, err := os.Stat(path); os.IsNotExist(err) {
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("Registry not created yet: %s", path),
			fix:     "Run: gitu add <name> <email>",
		})
		return results, registry.New(), fixed
	}

	reg, err := registry.NewStore(path, logger.Named("registry")).Load()
	if err != nil {
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("Registry invalid: %v", err),
		})
		return results, nil, fixed
	}

	results = append(results, checkResult{
		passed:  true,
		message: fmt.Sprintf("Registry valid, %d user(s)", reg.Len()),
	})

	ok, err := platform.CheckFilePermissions(path)
	switch {
	case err != nil:
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("Cannot check permissions: %v", err),
		})
	case ok:
		results = append(results, checkResult{
			passed:  true,
			message: "Registry permissions OK",
		})
	case autoFix:
		if err := platform.FixFilePermissions(path); err != nil {
			results = append(results, checkResult{
				passed:  false,
				message: fmt.Sprintf("Failed to fix permissions: %v", err),
			})
		} else {
			fixed++
			results = append(results, checkResult{
				passed:  true,
				message: "Registry permissions fixed",
			})
		}
	default:
		results = append(results, checkResult{
			passed:  false,
			message: "Registry is readable by other users",
			fix:     platform.GetPermissionFixCommand(path),
		})
	}

	return results, reg, fixed
}

// checkIdentity reports whether git's current identity is a stored profile
func checkIdentity(entries []identity.Entry) []checkResult {
	active, ok := identity.ActiveEntry(entries)
	if !ok {
		return []checkResult{{
			passed:  false,
			message: "No active user set",
			fix:     "Run: gitu use <name>",
		}}
	}

	if active.Source == identity.SourceDerived {
		return []checkResult{{
			passed:  false,
			message: fmt.Sprintf("Active identity '%s' (%s) is not stored", active.Name, active.Registry),
			fix:     fmt.Sprintf("Run: gitu add %s %s", active.Name, active.Registry),
		}}
	}

	return []checkResult{{
		passed:  true,
		message: fmt.Sprintf("Active user: %s (%s)", active.Name, active.Registry),
	}}
}
