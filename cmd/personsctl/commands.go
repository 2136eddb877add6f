package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aussiebroadwan/persons/pkg/personsdk"
)

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *cli) session() (*personsdk.Session, error) {
	var client *personsdk.Client
	if c.serverSet {
		client = personsdk.NewClient(c.server)
	}
	return personsdk.LoadSession(c.sessionPath, client)
}

func (c *cli) saveSession(s *personsdk.Session) error {
	if err := s.Save(c.sessionPath); err != nil {
		return err
	}
	u := s.User()
	fmt.Fprintf(c.stdout, "Logged in as %s %s <%s> (%s)\n", u.FirstName, u.LastName, u.Email, u.Role)
	return nil
}

func runLogin(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("login")
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("-email is required")
	}

	password, err := c.promptPassword("Password")
	if err != nil {
		return err
	}

	s, err := personsdk.NewClient(c.server).Login(ctx, *email, password)
	if err != nil {
		return err
	}
	return c.saveSession(s)
}

func runRegister(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("register")
	var req personsdk.RegisterRequest
	fs.StringVar(&req.FirstName, "first", "", "first name")
	fs.StringVar(&req.LastName, "last", "", "last name")
	fs.StringVar(&req.Email, "email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if req.Password, err = c.promptPassword("Password"); err != nil {
		return err
	}
	if req.ConfirmPassword, err = c.promptPassword("Confirm password"); err != nil {
		return err
	}

	s, err := personsdk.NewClient(c.server).Register(ctx, req)
	if err != nil {
		return err
	}
	return c.saveSession(s)
}

func runLogout(_ context.Context, c *cli, _ []string) error {
	if err := personsdk.ClearSession(c.sessionPath); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "Logged out")
	return nil
}

func runMe(ctx context.Context, c *cli, _ []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	u, err := s.Me(ctx)
	if err != nil {
		return err
	}
	return writeJSON(c.stdout, u)
}

func runUsers(ctx context.Context, c *cli, _ []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	users, err := s.ListUsers(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", u.ID, u.FirstName, u.LastName, u.Email, u.Role)
	}
	return tw.Flush()
}

func runList(ctx context.Context, c *cli, _ []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	persons, err := s.ListPersons(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCNP\tID TYPE\tEXPIRES")
	for _, p := range persons {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\n", p.ID, p.FirstName, p.LastName, p.CNP, p.IDType, p.ExpiryDate)
	}
	return tw.Flush()
}

func runAll(ctx context.Context, c *cli, _ []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	persons, err := s.ListAllPersons(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCNP\tOWNER")
	for _, p := range persons {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", p.ID, p.FirstName, p.LastName, p.CNP, p.Owner.Email)
	}
	return tw.Flush()
}

func runGet(ctx context.Context, c *cli, args []string) error {
	id, _, err := splitID("get", args)
	if err != nil {
		return err
	}
	s, err := c.session()
	if err != nil {
		return err
	}
	p, err := s.GetPerson(ctx, id)
	if err != nil {
		return err
	}
	return writeJSON(c.stdout, p)
}

func runCreate(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("create")
	pf := bindPersonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := c.session()
	if err != nil {
		return err
	}
	p, err := s.CreatePerson(ctx, pf.input(fs))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Person created: %s\n", p.ID)
	return nil
}

func runUpdate(ctx context.Context, c *cli, args []string) error {
	id, rest, err := splitID("update", args)
	if err != nil {
		return err
	}

	fs := c.flags("update")
	pf := bindPersonFlags(fs)
	clearPhoto := fs.Bool("clear-photo", false, "remove the stored photo")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	in := pf.input(fs)
	if *clearPhoto {
		in.IDPhoto = personsdk.Null[string]()
	}

	s, err := c.session()
	if err != nil {
		return err
	}
	p, err := s.UpdatePerson(ctx, id, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Person updated: %s\n", p.ID)
	return nil
}

func runDelete(ctx context.Context, c *cli, args []string) error {
	id, _, err := splitID("delete", args)
	if err != nil {
		return err
	}
	s, err := c.session()
	if err != nil {
		return err
	}
	if err := s.DeletePerson(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Person deleted: %s\n", id)
	return nil
}

// personFlags maps command line flags onto PersonInput fields. Only flags
// given on the command line end up in the request.
type personFlags struct {
	fields map[string]*string
	photo  string
}

var personFlagNames = []struct{ name, usage string }{
	{"first", "first name"},
	{"last", "last name"},
	{"cnp", "13 digit personal numeric code"},
	{"birth-date", "birth date, YYYY-MM-DD"},
	{"birth-place", "birth place"},
	{"nationality", "nationality"},
	{"id-number", "document number"},
	{"issue-date", "issue date, YYYY-MM-DD"},
	{"expiry-date", "expiry date, YYYY-MM-DD"},
	{"id-type", "Buletin de identitate, Pasaport or Permis de conducere"},
}

func bindPersonFlags(fs *flag.FlagSet) *personFlags {
	pf := &personFlags{fields: make(map[string]*string, len(personFlagNames))}
	for _, f := range personFlagNames {
		pf.fields[f.name] = fs.String(f.name, "", f.usage)
	}
	fs.StringVar(&pf.photo, "photo", "", "photo reference or data URL")
	return pf
}

func (pf *personFlags) input(fs *flag.FlagSet) personsdk.PersonInput {
	var in personsdk.PersonInput
	targets := map[string]**string{
		"first":       &in.FirstName,
		"last":        &in.LastName,
		"cnp":         &in.CNP,
		"birth-date":  &in.BirthDate,
		"birth-place": &in.BirthPlace,
		"nationality": &in.Nationality,
		"id-number":   &in.IDNumber,
		"issue-date":  &in.IssueDate,
		"expiry-date": &in.ExpiryDate,
		"id-type":     &in.IDType,
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "photo" {
			in.IDPhoto = personsdk.Some(pf.photo)
			return
		}
		if dst, ok := targets[f.Name]; ok {
			*dst = personsdk.String(*pf.fields[f.Name])
		}
	})
	return in
}

func splitID(cmd string, args []string) (string, []string, error) {
	if len(args) == 0 || args[0] == "" || args[0][0] == '-' {
		return "", nil, fmt.Errorf("usage: personsctl %s ID", cmd)
	}
	return args[0], args[1:], nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
