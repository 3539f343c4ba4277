// Command empdir is the interactive front end of the employee directory:
// it lists, filters, paginates, creates, edits and deletes employee records
// against the remote REST service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"empdir/internal/client"
	"empdir/internal/domain/directory"
	"empdir/internal/export"
	"empdir/internal/platform/config"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := loadConfig()
	if err := cfg.ValidateClient(); err != nil {
		fail(err)
	}

	api := client.New(cfg.ServerURL, fileTokenSource(cfg.TokenFile))
	svc := directory.NewService(api)
	ctx := context.Background()

	switch os.Args[1] {
	case "list":
		runList(ctx, svc, cfg, os.Args[2:])
	case "get":
		runGet(ctx, svc, os.Args[2:])
	case "create":
		runCreate(ctx, svc, os.Args[2:])
	case "update":
		runUpdate(ctx, svc, os.Args[2:])
	case "delete":
		runDelete(ctx, svc, os.Args[2:])
	case "export":
		runExport(ctx, svc, os.Args[2:])
	case "login":
		runLogin(ctx, api, cfg, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: empdir <command> [flags]

commands:
  list     list employees, with optional filters and paging
  get      show one employee by id
  create   create a new employee record
  update   edit an existing employee record
  delete   delete an employee record
  export   write the (filtered) roster to a PDF file
  login    obtain and store a session token`)
}

func loadConfig() config.Config {
	if path := os.Getenv("EMPDIR_CONFIG"); path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			fail(err)
		}
		return cfg
	}
	return config.Load()
}

// fileTokenSource reads the stored session token on every request, so a
// fresh login is picked up without restarting.
func fileTokenSource(path string) client.TokenSource {
	return func() string {
		if path == "" {
			return ""
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(raw))
	}
}

func filterFlags(fs *flag.FlagSet, filters *directory.FilterSet) {
	fs.StringVar(&filters.FirstName, "first-name", "", "filter: first name contains")
	fs.StringVar(&filters.OtherNames, "other-names", "", "filter: other names contain")
	fs.StringVar(&filters.FirstSurname, "first-surname", "", "filter: first surname contains")
	fs.StringVar(&filters.SecondSurname, "second-surname", "", "filter: second surname contains")
	fs.StringVar(&filters.IDNumber, "id-number", "", "filter: id number contains")
	fs.StringVar(&filters.Email, "email", "", "filter: email contains")
	fs.StringVar(&filters.IDType, "id-type", "", "filter: id type (CC, CE, PA, PE)")
	fs.StringVar(&filters.EmploymentCountry, "country", "", "filter: employment country (CO, US)")
	fs.StringVar(&filters.Department, "department", "", "filter: department code")
	fs.StringVar(&filters.Status, "status", "", "filter: status")
}

func draftFlags(fs *flag.FlagSet, draft *directory.Draft) {
	fs.StringVar(&draft.FirstName, "first-name", draft.FirstName, "first name")
	fs.StringVar(&draft.OtherNames, "other-names", draft.OtherNames, "other names")
	fs.StringVar(&draft.FirstSurname, "first-surname", draft.FirstSurname, "first surname")
	fs.StringVar(&draft.SecondSurname, "second-surname", draft.SecondSurname, "second surname")
	fs.StringVar(&draft.IDType, "id-type", draft.IDType, "id type (CC, CE, PA, PE)")
	fs.StringVar(&draft.IDNumber, "id-number", draft.IDNumber, "id number")
	fs.StringVar(&draft.EmploymentCountry, "country", draft.EmploymentCountry, "employment country (CO, US)")
	fs.StringVar(&draft.HireDate, "hire-date", draft.HireDate, "hire date (YYYY-MM-DD)")
	fs.StringVar(&draft.Department, "department", draft.Department, "department code")
}

func runList(ctx context.Context, svc *directory.Service, cfg config.Config, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var filters directory.FilterSet
	filterFlags(fs, &filters)
	pageFlag := fs.Int("page", 1, "page to show")
	fs.Parse(args)

	if err := svc.Refresh(ctx); err != nil {
		fail(err)
	}

	page := directory.NewPageState(cfg.PageSize)
	page.Current = *pageFlag
	view := directory.BuildView(svc.Records(), filters, &page)

	printTable(view.Records)
	fmt.Printf("page %d/%d, %d of %d records\n", view.Page, view.TotalPages, view.Filtered, view.Total)
}

func runGet(ctx context.Context, svc *directory.Service, args []string) {
	id := parseID(args)
	if err := svc.Refresh(ctx); err != nil {
		fail(err)
	}
	emp, ok := svc.Find(id)
	if !ok {
		fail(fmt.Errorf("no employee with id %d", id))
	}
	printTable([]directory.Employee{*emp})
}

func runCreate(ctx context.Context, svc *directory.Service, args []string) {
	var session directory.EditSession
	session.OpenCreate()

	fs := flag.NewFlagSet("create", flag.ExitOnError)
	draft := session.Draft()
	draftFlags(fs, &draft)
	fs.Parse(args)
	session.SetDraft(draft)

	submit(ctx, svc, &session)
}

func runUpdate(ctx context.Context, svc *directory.Service, args []string) {
	if len(args) < 1 {
		fail(errors.New("usage: empdir update <id> [flags]"))
	}
	id := parseID(args[:1])

	if err := svc.Refresh(ctx); err != nil {
		fail(err)
	}
	current, ok := svc.Find(id)
	if !ok {
		fail(fmt.Errorf("no employee with id %d", id))
	}

	var session directory.EditSession
	session.OpenEdit(*current)

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	draft := session.Draft()
	draftFlags(fs, &draft)
	fs.Parse(args[1:])
	session.SetDraft(draft)

	submit(ctx, svc, &session)
}

// submit validates the session draft, warns about lowercase names without
// rewriting them, and sends the mutation. A failed submit leaves the
// session open with the draft intact.
func submit(ctx context.Context, svc *directory.Service, session *directory.EditSession) {
	draft := session.Draft()

	if issues := directory.ValidateDraft(draft, time.Now()); len(issues) > 0 {
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "%s: %s\n", issue.Field, issue.Reason)
		}
		os.Exit(1)
	}
	for _, field := range directory.UppercaseWarnings(draft) {
		fmt.Fprintf(os.Stderr, "warning: %s is not uppercase; the service stores names in uppercase\n", field)
	}

	var editingID *int64
	if id, editing := session.TargetID(); editing {
		editingID = &id
	}

	saved, err := svc.Submit(ctx, draft, editingID)
	if err != nil {
		fail(err)
	}
	session.Close()

	if editingID != nil {
		fmt.Printf("updated employee %d\n", saved.ID)
	} else {
		fmt.Printf("created employee %d with email %s\n", saved.ID, saved.Email)
	}
}

func runDelete(ctx context.Context, svc *directory.Service, args []string) {
	id := parseID(args)
	if err := svc.Refresh(ctx); err != nil {
		fail(err)
	}
	if err := svc.Remove(ctx, id); err != nil {
		fail(err)
	}
	fmt.Printf("deleted employee %d, %d records remain\n", id, len(svc.Records()))
}

func runExport(ctx context.Context, svc *directory.Service, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var filters directory.FilterSet
	filterFlags(fs, &filters)
	out := fs.String("out", "roster.pdf", "output file")
	title := fs.String("title", "Employee roster", "document title")
	fs.Parse(args)

	if err := svc.Refresh(ctx); err != nil {
		fail(err)
	}
	records := directory.ApplyFilters(svc.Records(), filters)
	if err := export.WriteRosterPDF(*out, *title, records); err != nil {
		fail(err)
	}
	fmt.Printf("wrote %d records to %s\n", len(records), *out)
}

func runLogin(ctx context.Context, api *client.Client, cfg config.Config, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	token, err := api.Login(ctx, *email, *password)
	if err != nil {
		fail(err)
	}
	if cfg.TokenFile == "" {
		fail(errors.New("no token file configured"))
	}
	if err := os.MkdirAll(filepath.Dir(cfg.TokenFile), 0o700); err != nil {
		fail(err)
	}
	if err := os.WriteFile(cfg.TokenFile, []byte(token), 0o600); err != nil {
		fail(err)
	}
	fmt.Printf("logged in, token stored in %s\n", cfg.TokenFile)
}

func parseID(args []string) int64 {
	if len(args) < 1 {
		fail(errors.New("an employee id is required"))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fail(fmt.Errorf("invalid employee id %q", args[0]))
	}
	return id
}

func printTable(records []directory.Employee) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDEPT\tIDENTIFICATION\tEMAIL\tHIRED\tSTATUS")
	for _, emp := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s %s\t%s\t%s\t%s\n",
			emp.ID, emp.FullName(), emp.Department, emp.IDType, emp.IDNumber,
			emp.Email, emp.HireDate, emp.Status)
	}
	w.Flush()
}

// fail prints the failure the way the taxonomy asks: connectivity problems
// and server rejections read differently.
func fail(err error) {
	var reqErr *client.RequestError
	var connErr *client.ConnectivityError
	switch {
	case errors.As(err, &reqErr):
		fmt.Fprintf(os.Stderr, "the service rejected the request (%d): %s\n", reqErr.Status, reqErr.Summary())
	case errors.As(err, &connErr):
		fmt.Fprintf(os.Stderr, "%v\n", connErr)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(1)
}
