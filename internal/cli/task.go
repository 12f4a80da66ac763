package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskbloom/taskbloom/internal/model"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Task management commands",
	}

	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskDoneCmd())
	cmd.AddCommand(newTaskRmCmd())

	return cmd
}

func newTaskListCmd() *cobra.Command {
	var pending bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}

			list, err := app.Tasks.Fetch(cmd.Context())
			if err != nil {
				return err
			}

			if pending {
				filtered := list[:0]
				for _, t := range list {
					if !t.Completed {
						filtered = append(filtered, t)
					}
				}
				list = filtered
			}

			out := NewOutput(cfg.Output)
			out.Print(list)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pending, "pending", false, "Only show incomplete tasks")

	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var title, desc, category, priority, difficulty, due string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}

			nt := model.DefaultNewTask(title)
			nt.Description = desc
			if category != "" {
				nt.Category = category
			}
			if priority != "" {
				nt.Priority = priority
			}
			if difficulty != "" {
				nt.Difficulty = difficulty
			}
			if due != "" {
				if _, err := time.Parse("2006-01-02", due); err != nil {
					return fmt.Errorf("invalid --due date (want YYYY-MM-DD): %w", err)
				}
				nt.DueDate = due
			}

			task, err := app.Tasks.Create(cmd.Context(), nt)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*task)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&desc, "desc", "", "Task description")
	cmd.Flags().StringVar(&category, "category", "", "Category (default: personal)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: low, medium, high (default: medium)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty: easy, medium, hard (default: medium)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Complete a task and earn a garden reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}

			reward, err := app.Rewards.CompleteTask(cmd.Context(), model.TaskID(args[0]))
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(reward)
			return nil
		},
	}
}

func newTaskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}

			if err := app.Tasks.Delete(cmd.Context(), model.TaskID(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Deleted task %s", args[0]))
			return nil
		},
	}
}
