package client

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/adapter"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/models"
)

const deadlineFormat = "2006-01-02"

// App is the taskctl command-line application. It dispatches subcommands to
// the server adapter and keeps the session token in a state file between
// invocations.
type App struct {
	server    adapter.ServerAdapter
	stateFile string

	in  io.Reader
	out io.Writer

	logger *logger.Logger
}

// NewApp constructs the taskctl application around the given server adapter.
// The session token (if any) is loaded lazily per command, so constructing an
// App performs no I/O.
func NewApp(server adapter.ServerAdapter, stateFile string, logger *logger.Logger) *App {
	return &App{
		server:    server,
		stateFile: stateFile,
		in:        os.Stdin,
		out:       os.Stdout,
		logger:    logger,
	}
}

// Run implements [Client]. It executes the subcommand named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return errors.New("no command given")
	}

	command, rest := args[0], args[1:]

	// Every command except register/login/help operates on an existing
	// session, so restore the stored token first.
	switch command {
	case "register", "login", "help":
	default:
		token, err := loadToken(a.stateFile)
		if err != nil {
			return fmt.Errorf("load session state: %w", err)
		}
		a.server.SetToken(token)
	}

	var err error
	switch command {
	case "register":
		err = a.register(ctx, rest)
	case "login":
		err = a.login(ctx, rest)
	case "logout":
		err = a.logout(ctx)
	case "list":
		err = a.list(ctx, rest)
	case "add":
		err = a.add(ctx, rest)
	case "show":
		err = a.show(ctx, rest)
	case "done":
		err = a.done(ctx, rest)
	case "update":
		err = a.update(ctx, rest)
	case "rm":
		err = a.remove(ctx, rest)
	case "note":
		err = a.note(ctx, rest)
	case "help":
		a.printUsage()
	default:
		a.printUsage()
		err = fmt.Errorf("unknown command %q", command)
	}

	if errors.Is(err, adapter.ErrUnauthorized) {
		return fmt.Errorf("not signed in or the session has expired, run `taskctl login <login>`: %w", err)
	}

	return err
}

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: taskctl register <login>")
	}
	login := args[0]

	password, err := a.readPassword()
	if err != nil {
		return err
	}

	user := models.User{Login: login, Password: password}
	if _, err = a.server.Register(ctx, user); err != nil {
		return err
	}

	// Registration does not issue a session; sign in right away with the
	// same credentials, as the web form does.
	session, err := a.server.Login(ctx, user)
	if err != nil {
		return fmt.Errorf("registered, but sign-in failed: %w", err)
	}
	if err = saveToken(a.stateFile, session.Token); err != nil {
		return fmt.Errorf("save session state: %w", err)
	}

	fmt.Fprintf(a.out, "registered and signed in as %s\n", login)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: taskctl login <login>")
	}
	login := args[0]

	password, err := a.readPassword()
	if err != nil {
		return err
	}

	session, err := a.server.Login(ctx, models.User{Login: login, Password: password})
	if err != nil {
		return err
	}
	if err = saveToken(a.stateFile, session.Token); err != nil {
		return fmt.Errorf("save session state: %w", err)
	}

	fmt.Fprintf(a.out, "signed in as %s\n", login)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	// Clear the local state even if the server call fails: the token file
	// is useless once the user asked to sign out.
	serverErr := a.server.Logout(ctx)
	if err := clearToken(a.stateFile); err != nil {
		return fmt.Errorf("clear session state: %w", err)
	}
	if serverErr != nil {
		return serverErr
	}

	fmt.Fprintln(a.out, "signed out")
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	status := fs.String("status", "", "filter by status (open|done)")
	priority := fs.String("priority", "", "filter by priority (low|normal|high)")
	backlog := fs.String("backlog", "", "filter by backlog flag (true|false)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var filter models.TaskFilter
	if *status != "" {
		value := models.TaskStatus(*status)
		filter.Status = &value
	}
	if *priority != "" {
		value := models.TaskPriority(*priority)
		filter.Priority = &value
	}
	if *backlog != "" {
		value, err := strconv.ParseBool(*backlog)
		if err != nil {
			return fmt.Errorf("invalid backlog value %q", *backlog)
		}
		filter.Backlog = &value
	}

	tasks, err := a.server.ListTasks(ctx, filter)
	if err != nil {
		return err
	}

	a.printTasks(tasks)
	return nil
}

func (a *App) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(a.out)
	deadline := fs.String("deadline", "", "due date, e.g. 2026-09-15")
	priority := fs.String("priority", "", "priority (low|normal|high)")
	backlog := fs.Bool("backlog", false, "park the task in the backlog")
	if err := fs.Parse(args); err != nil {
		return err
	}

	title := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(title) == "" {
		return errors.New("usage: taskctl add [flags] <title>")
	}

	task := models.Task{
		Title:    title,
		Priority: models.TaskPriority(*priority),
		Backlog:  *backlog,
	}
	if *deadline != "" {
		due, err := time.Parse(deadlineFormat, *deadline)
		if err != nil {
			return fmt.Errorf("deadline must be a date like 2026-09-15")
		}
		task.Deadline = &due
	}

	created, err := a.server.CreateTask(ctx, task)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "created task %d\n", created.TaskID)
	return nil
}

func (a *App) show(ctx context.Context, args []string) error {
	taskID, err := parseTaskID(args)
	if err != nil {
		return err
	}

	task, err := a.server.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "task %d: %s\n", task.TaskID, task.Title)
	fmt.Fprintf(a.out, "  priority: %s\n", task.Priority)
	fmt.Fprintf(a.out, "  status:   %s\n", task.Status)
	fmt.Fprintf(a.out, "  backlog:  %t\n", task.Backlog)
	if task.Deadline != nil {
		fmt.Fprintf(a.out, "  deadline: %s\n", task.Deadline.Format(deadlineFormat))
	}
	if len(task.Notes) > 0 {
		fmt.Fprintln(a.out, "  notes:")
		for _, note := range task.Notes {
			fmt.Fprintf(a.out, "    [%s] %s\n", note.CreatedAt.Format(deadlineFormat), note.Body)
		}
	}

	return nil
}

func (a *App) done(ctx context.Context, args []string) error {
	taskID, err := parseTaskID(args)
	if err != nil {
		return err
	}

	status := models.StatusDone
	if _, err = a.server.UpdateTask(ctx, taskID, models.TaskUpdate{Status: &status}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "task %d done\n", taskID)
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(a.out)
	title := fs.String("title", "", "new title")
	deadline := fs.String("deadline", "", "new due date, e.g. 2026-09-15")
	clearDeadline := fs.Bool("clear-deadline", false, "remove the due date")
	priority := fs.String("priority", "", "new priority (low|normal|high)")
	status := fs.String("status", "", "new status (open|done)")
	backlog := fs.String("backlog", "", "set the backlog flag (true|false)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	taskID, err := parseTaskID(fs.Args())
	if err != nil {
		return err
	}

	var patch models.TaskUpdate
	if *title != "" {
		patch.Title = title
	}
	if *clearDeadline {
		patch.ClearDeadline = true
	} else if *deadline != "" {
		due, err := time.Parse(deadlineFormat, *deadline)
		if err != nil {
			return fmt.Errorf("deadline must be a date like 2026-09-15")
		}
		patch.Deadline = &due
	}
	if *priority != "" {
		value := models.TaskPriority(*priority)
		patch.Priority = &value
	}
	if *status != "" {
		value := models.TaskStatus(*status)
		patch.Status = &value
	}
	if *backlog != "" {
		value, err := strconv.ParseBool(*backlog)
		if err != nil {
			return fmt.Errorf("invalid backlog value %q", *backlog)
		}
		patch.Backlog = &value
	}

	if _, err = a.server.UpdateTask(ctx, taskID, patch); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "task %d updated\n", taskID)
	return nil
}

func (a *App) remove(ctx context.Context, args []string) error {
	taskID, err := parseTaskID(args)
	if err != nil {
		return err
	}

	if err = a.server.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "task %d removed\n", taskID)
	return nil
}

func (a *App) note(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: taskctl note <task-id> <text>")
	}

	taskID, err := parseTaskID(args[:1])
	if err != nil {
		return err
	}
	body := strings.Join(args[1:], " ")

	if _, err = a.server.AddNote(ctx, taskID, body); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "note added to task %d\n", taskID)
	return nil
}

func (a *App) printTasks(tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "no tasks")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDEADLINE\tPRIORITY\tSTATUS\tBACKLOG")
	for _, task := range tasks {
		due := "-"
		if task.Deadline != nil {
			due = task.Deadline.Format(deadlineFormat)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%t\n",
			task.TaskID, task.Title, due, task.Priority, task.Status, task.Backlog)
	}
	_ = w.Flush()
}

func (a *App) readPassword() (string, error) {
	fmt.Fprint(a.out, "Password: ")

	reader := bufio.NewReader(a.in)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password must not be empty")
	}

	return password, nil
}

func parseTaskID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one task id")
	}

	taskID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || taskID <= 0 {
		return 0, fmt.Errorf("invalid task id %q", args[0])
	}

	return taskID, nil
}

func (a *App) printUsage() {
	fmt.Fprint(a.out, `taskctl — personal task list client

usage: taskctl <command> [flags] [args]

commands:
  register <login>            create an account and sign in
  login <login>               sign in (password read from stdin)
  logout                      revoke the current session
  list [flags]                list tasks (-status, -priority, -backlog)
  add [flags] <title>         create a task (-deadline, -priority, -backlog)
  show <task-id>              show one task with its notes
  done <task-id>              mark a task done
  update [flags] <task-id>    change a task (-title, -deadline, -clear-deadline,
                              -priority, -status, -backlog)
  rm <task-id>                delete a task
  note <task-id> <text>       attach a note to a task
  help                        show this help
`)
}
