package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/manuelmariscal/coursera/internal/client/models"
	"github.com/manuelmariscal/coursera/internal/common"
)

// Motos lists motorcycles; a term matches plate or owner.
func (a *App) Motos(ctx context.Context, args []string) error {
	term := strings.Join(args, " ")
	items, err := a.records.SearchMotos(ctx, term, term)
	if err != nil {
		return err
	}

	tw := newTable(a.out, "ID", "PLATE", "MAKE", "MODEL", "YEAR", "OWNER")
	for _, m := range items {
		tw.row(m.ID, m.Placa, m.Marca, m.Modelo, m.Anio, m.Propietario)
	}
	tw.flush()
	fmt.Fprintf(a.out, "%d motorcycle(s)\n", len(items))
	return nil
}

func (a *App) NewMoto(ctx context.Context, _ []string) error {
	m, err := a.promptMoto(models.Moto{})
	if err != nil {
		return err
	}

	created, err := a.records.CreateMoto(ctx, m)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Motorcycle %s registered\n", created.ID)
	return nil
}

// EditMoto loads a motorcycle and prompts for each field with the current
// value as default.
func (a *App) EditMoto(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("editmoto <id>")
	}

	cur, err := a.api.GetMoto(ctx, args[0])
	if err != nil {
		return err
	}
	printMoto(a.out, *cur)

	m, err := a.promptMoto(*cur)
	if err != nil {
		return err
	}

	updated, err := a.records.UpdateMoto(ctx, args[0], m)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Motorcycle updated")
	printMoto(a.out, *updated)
	return nil
}

func (a *App) DelMoto(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delmoto <id>")
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete motorcycle %s?", args[0]), a.out)
	if err != nil || !ok {
		return err
	}

	key, err := a.deleteCredential()
	if err != nil {
		return err
	}
	if err := a.api.DeleteMoto(ctx, args[0], key); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Motorcycle %s deleted\n", args[0])
	return nil
}

func (a *App) promptMoto(m models.Moto) (models.Moto, error) {
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Placa", &m.Placa},
		{"Marca", &m.Marca},
		{"Modelo", &m.Modelo},
		{"Color (optional)", &m.Color},
		{"Propietario", &m.Propietario},
	}
	for _, f := range fields {
		v, err := GetTextDefault(a.reader, f.prompt, *f.dst, a.out)
		if err != nil {
			return m, err
		}
		*f.dst = v
	}

	cur := ""
	if m.Anio != 0 {
		cur = strconv.Itoa(m.Anio)
	}
	year, err := GetTextDefault(a.reader, "Año", cur, a.out)
	if err != nil {
		return m, err
	}
	if year != "" {
		n, err := strconv.Atoi(year)
		if err != nil || n < 1900 || n > 2100 {
			return m, fmt.Errorf("%w: año must be a year, got %q", common.ErrInvalidInput, year)
		}
		m.Anio = n
	}
	return m, nil
}
