// Command defersched demonstrates the deferred-invocation scheduler from the
// command line: queue up a batch, run it, and print the execution history.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	defersched "github.com/mkwren/go-defer-scheduler"
)

func main() {
	app := &cli.App{
		Name:  "defersched",
		Usage: "deferred task scheduler demo",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable structured debug logging",
			},
		},
		Commands: []*cli.Command{
			fifoCommand(),
			priorityCommand(),
			namedCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func schedulerConfig(c *cli.Context) *defersched.SchedulerConfig {
	config := defersched.DefaultSchedulerConfig()
	if c.Bool("verbose") {
		config.Logger = defersched.NewDevelopmentLogger()
	}
	return config
}

func fifoCommand() *cli.Command {
	return &cli.Command{
		Name:    "fifo",
		Aliases: []string{"f"},
		Usage:   "run numbered tasks in submission order",

		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Value:   5,
				Usage:   "number of tasks to queue",
			},
		},

		Action: fifoAction,
	}
}

func fifoAction(c *cli.Context) error {
	count := c.Int("count")
	if count < 1 {
		return cli.Exit("count must be at least 1", 1)
	}

	s := defersched.NewWithConfig("fifo-demo", schedulerConfig(c))

	for i := 1; i <= count; i++ {
		if err := s.Submit(func(n int) {
			fmt.Printf("task %d\n", n)
		}, i); err != nil {
			return cli.Exit(fmt.Sprintf("submit failed: %v", err), 1)
		}
	}

	if errs := s.RunAll(); len(errs) > 0 {
		return cli.Exit(fmt.Sprintf("batch failed: %v", errs.Err()), 1)
	}

	printHistory(s)
	return nil
}

func priorityCommand() *cli.Command {
	return &cli.Command{
		Name:    "priority",
		Aliases: []string{"p"},
		Usage:   "run labeled tasks priority-descending",

		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "task",
				Aliases: []string{"t"},
				Usage:   "task as label:priority (repeatable)",
			},
		},

		Action: priorityAction,
	}
}

func priorityAction(c *cli.Context) error {
	specs := c.StringSlice("task")
	if len(specs) == 0 {
		specs = []string{"cleanup:1", "alert:5", "sync:3"}
	}

	s := defersched.NewPriorityWithConfig("priority-demo", schedulerConfig(c))

	for _, spec := range specs {
		label, prioStr, ok := strings.Cut(spec, ":")
		if !ok || label == "" {
			return cli.Exit(fmt.Sprintf("bad task spec %q, want label:priority", spec), 1)
		}
		priority, err := strconv.Atoi(prioStr)
		if err != nil {
			return cli.Exit(fmt.Sprintf("bad priority in %q: %v", spec, err), 1)
		}

		if err := s.SubmitWithPriority(priority, func(l string, p int) {
			fmt.Printf("[%d] %s\n", p, l)
		}, label, priority); err != nil {
			return cli.Exit(fmt.Sprintf("submit failed: %v", err), 1)
		}
	}

	if errs := s.RunAll(); len(errs) > 0 {
		return cli.Exit(fmt.Sprintf("batch failed: %v", errs.Err()), 1)
	}

	printHistory(s)
	return nil
}

func namedCommand() *cli.Command {
	return &cli.Command{
		Name:    "named",
		Aliases: []string{"k"},
		Usage:   "run keyed tasks in sorted key order, last submission wins",

		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "task",
				Aliases: []string{"t"},
				Usage:   "task as name=message (repeatable, duplicate names replace)",
			},
		},

		Action: namedAction,
	}
}

func namedAction(c *cli.Context) error {
	specs := c.StringSlice("task")
	if len(specs) == 0 {
		specs = []string{"b=second", "a=first", "b=second (replaced)"}
	}

	s := defersched.NewWithConfig("named-demo", schedulerConfig(c))

	for _, spec := range specs {
		name, msg, ok := strings.Cut(spec, "=")
		if !ok {
			return cli.Exit(fmt.Sprintf("bad task spec %q, want name=message", spec), 1)
		}

		if err := s.SubmitNamed(name, func(n, m string) {
			fmt.Printf("%s: %s\n", n, m)
		}, name, msg); err != nil {
			return cli.Exit(fmt.Sprintf("submit failed: %v", err), 1)
		}
	}

	if errs := s.RunAll(); len(errs) > 0 {
		return cli.Exit(fmt.Sprintf("batch failed: %v", errs.Err()), 1)
	}

	printHistory(s)
	return nil
}

func printHistory(s *defersched.Scheduler) {
	records := s.RecentExecutions(0)
	if len(records) == 0 {
		return
	}

	fmt.Println("--- execution history (most recent first) ---")
	for _, r := range records {
		status := "ok"
		if r.Failed {
			status = "failed"
		}
		fmt.Printf("%-20s priority=%-3d %-6s %s\n",
			r.Name, r.Priority, status, r.Duration)
	}
}
