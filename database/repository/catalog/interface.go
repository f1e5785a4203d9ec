package catalogRepo

import (
	"context"

	"voyago/database"
	"voyago/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository provides access to the bookable subjects: destinations,
// events and accommodations.
type CatalogRepository interface {
	CreateDestination(ctx context.Context, d *models.Destination) error
	CreateEvent(ctx context.Context, e *models.Event) error
	CreateAccommodation(ctx context.Context, a *models.Accommodation) error

	GetDestination(ctx context.Context, id string) (*models.Destination, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	GetAccommodation(ctx context.Context, id string) (*models.Accommodation, error)

	ListDestinations(ctx context.Context) ([]models.Destination, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListAccommodations(ctx context.Context) ([]models.Accommodation, error)

	UpdateDestination(ctx context.Context, id string, patch map[string]any) error
	UpdateEvent(ctx context.Context, id string, patch map[string]any) error
	UpdateAccommodation(ctx context.Context, id string, patch map[string]any) error

	DeleteDestination(ctx context.Context, id string) error
	DeleteEvent(ctx context.Context, id string) error
	DeleteAccommodation(ctx context.Context, id string) error

	// GetSubject resolves the price/capacity view of any bookable subject.
	GetSubject(ctx context.Context, subjectType, id string) (*models.Subject, error)
}

type mongoCatalogRepo struct {
	destinations   *mongo.Collection
	events         *mongo.Collection
	accommodations *mongo.Collection
}

// NewMongoCatalogRepo returns a CatalogRepository backed by MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.DB()
	return &mongoCatalogRepo{
		destinations:   db.Collection("destinations"),
		events:         db.Collection("events"),
		accommodations: db.Collection("accommodations"),
	}
}
