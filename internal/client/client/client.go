package client

import (
	"context"
	"encoding/json"
	"io"

	"github.com/manuelmariscal/coursera/internal/client/models"
)

// CredentialSource yields the bearer token attached to outgoing requests.
// An empty token means the request is sent without Authorization.
type CredentialSource interface {
	Token() string
}

// CredentialFunc adapts a function to CredentialSource.
type CredentialFunc func() string

func (f CredentialFunc) Token() string { return f() }

type StatusAPI interface {
	BaseURL() string
	IsMobileDevice() bool
	CheckHealth(ctx context.Context) (map[string]any, error)
	GetAPIStatus(ctx context.Context) (map[string]any, error)
}

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	Me(ctx context.Context) (*models.User, error)
	GetProfile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, u models.User) (*models.User, error)
}

type FichaAPI interface {
	GetAllFichas(ctx context.Context) ([]models.Ficha, error)
	GetFicha(ctx context.Context, id string) (*models.Ficha, error)
	CreateFicha(ctx context.Context, f models.Ficha) (*models.CreatedFicha, error)
	UpdateFicha(ctx context.Context, id string, f models.Ficha, credential string) (*models.Ficha, error)
	DeleteFicha(ctx context.Context, id, credential string) error
	BulkDeleteFichas(ctx context.Context, ids []string, credential string) (*BulkResult, error)
	SearchFichas(ctx context.Context, nombre, apellido string) ([]models.Ficha, error)
	QRCodeURL(id string) string
	DownloadQRCode(ctx context.Context, id string) ([]byte, error)
	UploadPhoto(ctx context.Context, id, filename string, r io.Reader) (*models.PhotoUpload, error)
	PhotoURL(f models.Ficha) string
}

type MotoAPI interface {
	GetAllMotos(ctx context.Context) ([]models.Moto, error)
	GetMoto(ctx context.Context, id string) (*models.Moto, error)
	CreateMoto(ctx context.Context, m models.Moto) (*models.Moto, error)
	UpdateMoto(ctx context.Context, id string, m models.Moto) (*models.Moto, error)
	DeleteMoto(ctx context.Context, id, credential string) error
	BulkDeleteMotos(ctx context.Context, ids []string, credential string) (*BulkResult, error)
	SearchMotos(ctx context.Context, placa, propietario string) ([]models.Moto, error)
}

type DashboardAPI interface {
	UserRecords(ctx context.Context) ([]models.UserRecord, error)
	UserMotorcycles(ctx context.Context) ([]models.UserMotorcycle, error)
}

// Client is the full MotoSegura backend surface.
type Client interface {
	StatusAPI
	AuthAPI
	FichaAPI
	MotoAPI
	DashboardAPI
	Request(ctx context.Context, method, path string, body any, headers map[string]string) (json.RawMessage, error)
}
