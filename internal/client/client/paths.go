package client

import "net/url"

const (
	pathRoot            = "/"
	pathHealth          = "/health"
	pathLogin           = "/api/auth/login"
	pathMe              = "/api/auth/me"
	pathProfile         = "/api/users/profile"
	pathUserRecords     = "/api/records/user"
	pathUserMotorcycles = "/api/motorcycles/user"
	pathFichas          = "/api/fichas"
	pathSearchFichas    = "/api/buscar/fichas"
	pathQR              = "/api/qr"
	pathUploadPhoto     = "/api/upload_photo"
	pathUploads         = "/uploads"
	pathMotos           = "/api/motos"
	pathSearchMotos     = "/api/buscar/motos"
)

func itemPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}

// searchQuery keeps only non-empty parameters.
func searchQuery(kv ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			q.Set(kv[i], kv[i+1])
		}
	}
	return q
}
