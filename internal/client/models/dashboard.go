package models

// UserRecord is a ficha linked to the current user (GET /api/records/user).
type UserRecord struct {
	ID        ID     `json:"id"`
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// UserMotorcycle is a motorcycle linked to the current user
// (GET /api/motorcycles/user).
type UserMotorcycle struct {
	ID        ID     `json:"id"`
	Marca     string `json:"marca"`
	Modelo    string `json:"modelo"`
	Anio      int    `json:"anio"`
	Matricula string `json:"matricula"`
}
