// Package app is the entry point the binaries and the terminal UI use. It
// puts the permission gate in front of every store and export operation.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"employee-directory/internal/concurrency"
	"employee-directory/internal/directory"
	"employee-directory/internal/domain"
	"employee-directory/internal/export"
	"employee-directory/internal/logging"
	"employee-directory/internal/permission"
	"employee-directory/internal/session"
	"employee-directory/internal/sink"
)

var ErrForbidden = errors.New("app: action not permitted")

type Directory struct {
	store *directory.Store
	gate  permission.Gate
	out   sink.Sink
	log   logging.Logger
}

// New wires a Directory. A nil sink writes to the working directory.
func New(store *directory.Store, gate permission.Gate, out sink.Sink, log logging.Logger) *Directory {
	if out == nil {
		out = sink.Local{Dir: "."}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Directory{store: store, gate: gate, out: out, log: log}
}

func (d *Directory) Store() *directory.Store {
	return d.store
}

func (d *Directory) Identity() session.Identity {
	return d.store.Identity()
}

// Capabilities evaluates the gate for the current identity.
func (d *Directory) Capabilities() permission.Capabilities {
	return permission.Evaluate(d.gate, d.Identity())
}

func (d *Directory) allowed(c permission.Capability) bool {
	return permission.Check(d.gate, c, d.Identity())
}

func (d *Directory) Load(ctx context.Context) error {
	return d.store.Load(ctx)
}

func (d *Directory) Visible(term string) []domain.Employee {
	return d.store.Visible(term)
}

func capabilityFor(f export.Format) permission.Capability {
	if f == export.FormatPDF {
		return permission.CapExportPDF
	}
	return permission.CapExportSpreadsheet
}

// Export renders the loaded records in format f and hands the file to the
// sink. Nothing is rendered when the gate denies.
func (d *Directory) Export(ctx context.Context, f export.Format) (string, error) {
	if !d.allowed(capabilityFor(f)) {
		return "", ErrForbidden
	}

	start := time.Now()
	records := d.store.State().Records

	var buf bytes.Buffer
	if err := export.Render(&buf, f, records); err != nil {
		return "", err
	}

	loc, err := d.out.Save(ctx, f.FileName(), &buf)
	if err != nil {
		d.log.Error(ctx, "export failed", "format", string(f), "error", err)
		return loc, fmt.Errorf("app: export %s: %w", f, err)
	}
	d.log.Info(ctx, "export written",
		"format", string(f),
		"records", len(records),
		"location", loc,
		"duration", time.Since(start),
	)
	return loc, nil
}

func (d *Directory) ExportPDF(ctx context.Context) (string, error) {
	return d.Export(ctx, export.FormatPDF)
}

func (d *Directory) ExportSpreadsheet(ctx context.Context) (string, error) {
	return d.Export(ctx, export.FormatSpreadsheet)
}

func (d *Directory) ExportCSV(ctx context.Context) (string, error) {
	return d.Export(ctx, export.FormatCSV)
}

// ExportAll writes every permitted format concurrently. Forbidden formats are
// left out of the result; ErrForbidden is returned only when none is allowed.
func (d *Directory) ExportAll(ctx context.Context) (map[export.Format]string, error) {
	var formats []export.Format
	for _, f := range export.Formats {
		if d.allowed(capabilityFor(f)) {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, ErrForbidden
	}

	locs := make([]string, len(formats))
	errs := concurrency.ForEach(ctx, formats, concurrency.DefaultOptions(),
		func(ctx context.Context, i int, f export.Format) error {
			loc, err := d.Export(ctx, f)
			locs[i] = loc
			return err
		})

	out := make(map[export.Format]string, len(formats))
	for i, f := range formats {
		if locs[i] != "" {
			out[f] = locs[i]
		}
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return out, errors.Join(errs...)
}

// Edit opens the edit session for e.
func (d *Directory) Edit(e domain.Employee) error {
	if !d.allowed(permission.CapEdit) {
		return ErrForbidden
	}
	return d.store.Select(e)
}

func (d *Directory) SetField(name, value string) error {
	if !d.allowed(permission.CapEdit) {
		return ErrForbidden
	}
	return d.store.UpdateDraftField(name, value)
}

func (d *Directory) Save(ctx context.Context) error {
	if !d.allowed(permission.CapEdit) {
		return ErrForbidden
	}
	return d.store.Save(ctx)
}

func (d *Directory) Cancel() error {
	if !d.allowed(permission.CapEdit) {
		return ErrForbidden
	}
	d.store.Deselect()
	return nil
}
