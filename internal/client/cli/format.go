package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/manuelmariscal/coursera/internal/client/models"
)

type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, header ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	fmt.Fprintln(t.tw, strings.Join(header, "\t"))
	return t
}

func (t *table) row(cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(t.tw, strings.Join(parts, "\t"))
}

func (t *table) flush() {
	_ = t.tw.Flush()
}

func printUser(w io.Writer, u models.User) {
	fmt.Fprintf(w, "User:     %s\n", u.Username)
	fmt.Fprintf(w, "Name:     %s\n", u.Name)
	fmt.Fprintf(w, "Email:    %s\n", u.Email)
	fmt.Fprintf(w, "Role:     %s\n", u.Role)
	if u.Phone != "" {
		fmt.Fprintf(w, "Phone:    %s\n", u.Phone)
	}
	if u.Address != "" {
		fmt.Fprintf(w, "Address:  %s\n", u.Address)
	}
}

func printFicha(w io.Writer, f models.Ficha) {
	fmt.Fprintf(w, "ID:                  %s\n", f.ID)
	fmt.Fprintf(w, "Nombre:              %s\n", f.FullName())
	fmt.Fprintf(w, "Tipo de sangre:      %s\n", f.TipoSangre)
	fmt.Fprintf(w, "Contacto emergencia: %s (%s)\n", f.ContactoEmergencia, f.NumeroContacto)
	if f.Alergias != "" {
		fmt.Fprintf(w, "Alergias:            %s\n", f.Alergias)
	}
	if f.Medicaciones != "" {
		fmt.Fprintf(w, "Medicaciones:        %s\n", f.Medicaciones)
	}
	if f.FechaRegistro != "" {
		fmt.Fprintf(w, "Registro:            %s\n", f.FechaRegistro)
	}
}

func printMoto(w io.Writer, m models.Moto) {
	fmt.Fprintf(w, "ID:          %s\n", m.ID)
	fmt.Fprintf(w, "Placa:       %s\n", m.Placa)
	fmt.Fprintf(w, "Moto:        %s %s (%d)\n", m.Marca, m.Modelo, m.Anio)
	if m.Color != "" {
		fmt.Fprintf(w, "Color:       %s\n", m.Color)
	}
	fmt.Fprintf(w, "Propietario: %s\n", m.Propietario)
}
