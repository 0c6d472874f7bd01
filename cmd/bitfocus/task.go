package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/task"
)

var (
	taskAddSubtasks []string
	taskAddTags     []string
	taskAddPriority int
	taskAddDue      string
	taskListQuery   string
	taskListAll     bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a task",
	Long: `Add a task to the list.

Examples:
  bitfocus task add "Write the quarterly report" --due 2025-04-01 -p 3
  bitfocus task add "Refactor parser" -t work -t go --subtask "extract lexer" --subtask "add tests"`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTaskList,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskUndoneCmd = &cobra.Command{
	Use:   "undone [id]",
	Short: "Mark a task active again",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskUndone,
}

var taskRemoveCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Remove a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRemove,
}

func init() {
	taskAddCmd.Flags().StringSliceVar(&taskAddSubtasks, "subtask", nil, "subtasks (repeatable)")
	taskAddCmd.Flags().StringSliceVarP(&taskAddTags, "tag", "t", nil, "tags (repeatable)")
	taskAddCmd.Flags().IntVarP(&taskAddPriority, "priority", "p", 1, "priority, 1 (low) to 4 (urgent)")
	taskAddCmd.Flags().StringVar(&taskAddDue, "due", "", "due date (YYYY-MM-DD)")

	taskListCmd.Flags().StringVarP(&taskListQuery, "query", "q", "", "filter by text, subtask, or #tag")
	taskListCmd.Flags().BoolVarP(&taskListAll, "all", "a", false, "include completed tasks")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskUndoneCmd)
	taskCmd.AddCommand(taskRemoveCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	var due time.Time
	if taskAddDue != "" {
		due, err = time.ParseInLocation("2006-01-02", taskAddDue, time.Local)
		if err != nil {
			return fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", taskAddDue)
		}
	}

	t, err := a.tasks.Add(ctx, task.AddRequest{
		Text:     args[0],
		Subtasks: taskAddSubtasks,
		DueDate:  due,
		Tags:     taskAddTags,
		Priority: taskAddPriority,
	})
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Added task %s\n", t.ID)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	a.tasks.SetQuery(taskListQuery)

	active := a.tasks.ActiveTasks()
	if len(active) == 0 {
		fmt.Println("No active tasks.")
	}
	for _, t := range active {
		printTask(t)
	}

	if taskListAll {
		completed := a.tasks.CompletedTasks()
		if len(completed) > 0 {
			fmt.Printf("\nCompleted (%d)\n", len(completed))
			for _, t := range completed {
				printTask(t)
			}
		}
	}
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.tasks.Complete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	fmt.Printf("Completed %s\n", args[0])
	return nil
}

func runTaskUndone(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.tasks.Uncomplete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to uncomplete task: %w", err)
	}
	fmt.Printf("Reopened %s\n", args[0])
	return nil
}

func runTaskRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.tasks.Remove(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to remove task: %w", err)
	}
	fmt.Printf("Removed %s\n", args[0])
	return nil
}

func printTask(t task.Task) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	fmt.Printf("[%s] %s (p%d)\n", mark, t.Text, t.Priority)

	var meta []string
	if !t.DueDate.IsZero() {
		meta = append(meta, "due "+t.DueDate.Format("2006-01-02"))
	}
	if len(t.Tags) > 0 {
		meta = append(meta, "#"+strings.Join(t.Tags, " #"))
	}
	meta = append(meta, t.ID)
	fmt.Printf("    %s\n", strings.Join(meta, " | "))

	for i, sub := range t.Subtasks {
		subMark := " "
		if i < len(t.CompletedSubtasks) && t.CompletedSubtasks[i] {
			subMark = "x"
		}
		fmt.Printf("    [%s] %s\n", subMark, sub)
	}
}
