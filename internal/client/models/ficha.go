package models

// DefaultPhoto is the placeholder the backend stores when no photo was uploaded.
const DefaultPhoto = "default.jpg"

// Ficha is a medical record ("ficha médica").
type Ficha struct {
	ID                 ID     `json:"id,omitempty"`
	Nombre             string `json:"nombre" validate:"required"`
	Apellido           string `json:"apellido" validate:"required"`
	TipoSangre         string `json:"tipo_sangre" validate:"required"`
	ContactoEmergencia string `json:"contacto_emergencia" validate:"required"`
	NumeroContacto     string `json:"numero_contacto" validate:"required"`
	Alergias           string `json:"alergias,omitempty"`
	Medicaciones       string `json:"medicaciones,omitempty"`
	FotoURL            string `json:"foto_url,omitempty"`
	FechaRegistro      string `json:"fecha_registro,omitempty"`
}

// FullName joins nombre and apellido.
func (f Ficha) FullName() string {
	switch {
	case f.Nombre == "":
		return f.Apellido
	case f.Apellido == "":
		return f.Nombre
	}
	return f.Nombre + " " + f.Apellido
}

// CreatedFicha is the result of POST /api/fichas.
type CreatedFicha struct {
	Ficha Ficha  `json:"ficha"`
	QRURL string `json:"qr_url,omitempty"`
}

// PhotoUpload is the result of POST /api/upload_photo/:id.
type PhotoUpload struct {
	FotoURL string `json:"foto_url"`
	Ficha   *Ficha `json:"ficha,omitempty"`
}
