package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"employee-directory/internal/app"
	"employee-directory/internal/config"
	"employee-directory/internal/domain"
	"employee-directory/internal/logging"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type changes struct {
	tag      string
	username string
	email    string
	phone    string
	password bool

	newPassword string
}

// fields returns the draft fields to overwrite. Empty flags keep the
// current value.
func (c changes) fields() map[string]string {
	out := map[string]string{}
	if c.username != "" {
		out[domain.FieldUsername] = c.username
	}
	if c.email != "" {
		out[domain.FieldEmail] = c.email
	}
	if c.phone != "" {
		out[domain.FieldPhoneNumber] = c.phone
	}
	if c.newPassword != "" {
		out[domain.FieldPassword] = c.newPassword
	}
	return out
}

func main() {
	var c changes
	flag.StringVar(&c.tag, "tag", "", "employee tag to edit (required)")
	flag.StringVar(&c.username, "username", "", "new username")
	flag.StringVar(&c.email, "email", "", "new email")
	flag.StringVar(&c.phone, "phone", "", "new phone number")
	flag.BoolVar(&c.password, "password", false, "prompt for a new password")
	flag.Parse()

	start := time.Now()

	err := run(c)

	log.Printf("Execution finished in %s", time.Since(start))

	if err != nil {
		log.Fatalf("Job failed: %v", err)
	}
}

func run(c changes) error {
	if c.tag == "" {
		return errors.New("missing flag: -tag")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.Directory.LogLevel)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Directory.RequestTimeout)
	defer cancel()

	dir, err := app.Open(ctx, cfg, app.Destinations{}, logger)
	if err != nil {
		return err
	}
	if !dir.Capabilities().Edit {
		return app.ErrForbidden
	}
	if err := dir.Load(ctx); err != nil {
		return err
	}

	target, ok := find(dir.Store().State().Records, c.tag)
	if !ok {
		return fmt.Errorf("employee %q not found", c.tag)
	}
	if err := dir.Edit(target); err != nil {
		return err
	}

	if c.password {
		fmt.Fprint(os.Stderr, "New password: ")
		b, err := readPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			_ = dir.Cancel()
			return fmt.Errorf("read password: %w", err)
		}
		c.newPassword = string(b)
	}

	for name, value := range c.fields() {
		if err := dir.SetField(name, value); err != nil {
			_ = dir.Cancel()
			return err
		}
	}

	draft := dir.Store().State().Draft
	if err := domain.ValidateDraft(*draft); err != nil {
		_ = dir.Cancel()
		return fmt.Errorf("invalid changes: %w", err)
	}

	if err := dir.Save(ctx); err != nil {
		return err
	}
	log.Printf("updated employee %s", c.tag)
	return nil
}

func find(records []domain.Employee, tag string) (domain.Employee, bool) {
	for _, e := range records {
		if e.EmployeeTag == tag {
			return e, true
		}
	}
	return domain.Employee{}, false
}
