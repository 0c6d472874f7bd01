package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/project"
)

var (
	projectAddStatus  string
	projectAddVersion string
	projectAddNotes   string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with progress and budget",
	RunE:  runProjectList,
}

var projectAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a project",
	Long: `Add a project.

Examples:
  bitfocus project add "Personal site" --status active --version 0.1
  bitfocus project add "Thesis" --notes "spring deadline"`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectAdd,
}

func init() {
	projectAddCmd.Flags().StringVar(&projectAddStatus, "status", project.StatusScheduled, "status (scheduled, active, closed)")
	projectAddCmd.Flags().StringVar(&projectAddVersion, "version", "", "version label")
	projectAddCmd.Flags().StringVar(&projectAddNotes, "notes", "", "free-form notes")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAddCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	projects := a.projects.ProjectsWithStats()
	if len(projects) == 0 {
		fmt.Println("No projects.")
		return nil
	}

	for _, p := range projects {
		fmt.Printf("%s [%s] %d%%", p.Title, p.Status, p.Progress)
		if p.TotalBudget > 0 {
			fmt.Printf("  budget %.2f", p.TotalBudget)
		}
		fmt.Printf("\n    %s", p.ID)
		if p.Version != "" {
			fmt.Printf("  v%s", p.Version)
		}
		fmt.Println()

		for _, m := range a.projects.MilestonesWithProgress(p.ID) {
			fmt.Printf("    - %s [%s] %d%%\n", m.Title, m.Status, m.Progress)
		}
	}
	return nil
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.projects.AddProject(ctx, project.AddProjectRequest{
		Title:   args[0],
		Status:  projectAddStatus,
		Version: projectAddVersion,
		Notes:   projectAddNotes,
	})
	if err != nil {
		return fmt.Errorf("failed to add project: %w", err)
	}

	fmt.Printf("Added project %s (%s)\n", p.Title, p.ID)
	return nil
}
