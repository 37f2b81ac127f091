package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoas/go-funk"

	"github.com/manuelmariscal/coursera/internal/client/models"
)

// Fichas lists medical records, filtered by the optional search term.
func (a *App) Fichas(ctx context.Context, args []string) error {
	items, err := a.records.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	tw := newTable(a.out, "ID", "NAME", "BLOOD", "EMERGENCY CONTACT", "PHONE")
	for _, f := range items {
		tw.row(f.ID, f.FullName(), f.TipoSangre, f.ContactoEmergencia, f.NumeroContacto)
	}
	tw.flush()
	fmt.Fprintf(a.out, "%d record(s)\n", len(items))
	return nil
}

func (a *App) Ficha(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("ficha <id>")
	}

	f, err := a.api.GetFicha(ctx, args[0])
	if err != nil {
		return err
	}
	printFicha(a.out, *f)
	if u := a.api.PhotoURL(*f); u != "" {
		fmt.Fprintf(a.out, "Foto:                %s\n", u)
	}
	fmt.Fprintf(a.out, "QR:                  %s\n", a.api.QRCodeURL(f.ID.String()))
	return nil
}

// QR saves the record's QR code as a PNG file.
func (a *App) QR(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("qr <id> [file.png]")
	}
	id := args[0]
	dst := fmt.Sprintf("qr_%s.png", id)
	if len(args) == 2 {
		dst = args[1]
	}

	png, err := a.api.DownloadQRCode(ctx, id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, png, 0o644); err != nil {
		return fmt.Errorf("save qr code: %w", err)
	}
	fmt.Fprintf(a.out, "QR code saved to %s (%d bytes)\n", dst, len(png))
	return nil
}

// NewFicha prompts for a record and creates it.
func (a *App) NewFicha(ctx context.Context, _ []string) error {
	var f models.Ficha
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Nombre", &f.Nombre},
		{"Apellido", &f.Apellido},
		{"Tipo de sangre", &f.TipoSangre},
		{"Contacto de emergencia", &f.ContactoEmergencia},
		{"Número de contacto", &f.NumeroContacto},
		{"Alergias (optional)", &f.Alergias},
		{"Medicaciones (optional)", &f.Medicaciones},
	}
	for _, fld := range fields {
		v, err := getSimpleText(a.reader, fld.prompt, a.out)
		if err != nil {
			return err
		}
		*fld.dst = v
	}

	created, err := a.records.Create(ctx, f)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Record %s created\n", created.Ficha.ID)
	qr := created.QRURL
	if qr == "" {
		qr = a.api.QRCodeURL(created.Ficha.ID.String())
	}
	fmt.Fprintf(a.out, "QR: %s\n", qr)
	return nil
}

// Photo uploads a local file or S3 object as the record's photo.
func (a *App) Photo(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("photo <id> <path|s3://bucket/key>")
	}

	name, rc, err := a.photos.Open(ctx, args[1])
	if err != nil {
		return err
	}
	defer rc.Close()

	res, err := a.api.UploadPhoto(ctx, args[0], name, rc)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Photo uploaded: %s\n", res.FotoURL)
	return nil
}

func (a *App) DelFicha(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delficha <id>")
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete record %s?", args[0]), a.out)
	if err != nil || !ok {
		return err
	}

	key, err := a.deleteCredential()
	if err != nil {
		return err
	}
	if err := a.api.DeleteFicha(ctx, args[0], key); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Record %s deleted\n", args[0])
	return nil
}

// BulkDel deletes several records concurrently and reports the ones that
// failed.
func (a *App) BulkDel(ctx context.Context, args []string) error {
	ids := funk.UniqString(args)
	if len(ids) == 0 {
		return usage("bulkdel <id> [id...]")
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %d record(s)?", len(ids)), a.out)
	if err != nil || !ok {
		return err
	}

	key, err := a.deleteCredential()
	if err != nil {
		return err
	}

	res, err := a.records.BulkDelete(ctx, ids, key)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Bulk delete %s: %d deleted, %d failed\n", res.Status, res.SuccessCount, len(res.Failures))
	for _, f := range res.Failures {
		fmt.Fprintf(a.out, "  %s: %v\n", f.ID, f.Err)
	}
	if failed := res.FailedIDs(); len(failed) > 0 {
		fmt.Fprintf(a.out, "Retry with: bulkdel %s\n", strings.Join(failed, " "))
	}
	return nil
}

// Export writes all records to an XLSX file.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) != 1 || !strings.EqualFold(filepath.Ext(args[0]), ".xlsx") {
		return usage("export <file.xlsx>")
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	n, err := a.records.Export(ctx, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(args[0])
		return err
	}

	fmt.Fprintf(a.out, "Exported %d record(s) to %s\n", n, args[0])
	return nil
}
