package models

// Moto is a registered motorcycle.
type Moto struct {
	ID          ID     `json:"id,omitempty"`
	Placa       string `json:"placa" validate:"required"`
	Marca       string `json:"marca" validate:"required"`
	Modelo      string `json:"modelo" validate:"required"`
	Anio        int    `json:"año"`
	Color       string `json:"color,omitempty"`
	Propietario string `json:"propietario" validate:"required"`
}
