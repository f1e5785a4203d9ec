package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voyago/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a catalog subject does not exist.
var ErrNotFound = errors.New("catalog subject not found")

func (r *mongoCatalogRepo) CreateDestination(ctx context.Context, d *models.Destination) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	_, err := r.destinations.InsertOne(ctx, d)
	return err
}

func (r *mongoCatalogRepo) CreateEvent(ctx context.Context, e *models.Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	_, err := r.events.InsertOne(ctx, e)
	return err
}

func (r *mongoCatalogRepo) CreateAccommodation(ctx context.Context, a *models.Accommodation) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	_, err := r.accommodations.InsertOne(ctx, a)
	return err
}

func (r *mongoCatalogRepo) GetDestination(ctx context.Context, id string) (*models.Destination, error) {
	var d models.Destination
	if err := r.destinations.FindOne(ctx, bson.M{"id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *mongoCatalogRepo) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	if err := r.events.FindOne(ctx, bson.M{"id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *mongoCatalogRepo) GetAccommodation(ctx context.Context, id string) (*models.Accommodation, error) {
	var a models.Accommodation
	if err := r.accommodations.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *mongoCatalogRepo) ListDestinations(ctx context.Context) ([]models.Destination, error) {
	cursor, err := r.destinations.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.Destination
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoCatalogRepo) ListEvents(ctx context.Context) ([]models.Event, error) {
	cursor, err := r.events.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.Event
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoCatalogRepo) ListAccommodations(ctx context.Context) ([]models.Accommodation, error) {
	cursor, err := r.accommodations.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.Accommodation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoCatalogRepo) update(ctx context.Context, coll *mongo.Collection, id string, patch map[string]any) error {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range patch {
		set[k] = v
	}
	result, err := coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update catalog subject: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCatalogRepo) UpdateDestination(ctx context.Context, id string, patch map[string]any) error {
	return r.update(ctx, r.destinations, id, patch)
}

func (r *mongoCatalogRepo) UpdateEvent(ctx context.Context, id string, patch map[string]any) error {
	return r.update(ctx, r.events, id, patch)
}

func (r *mongoCatalogRepo) UpdateAccommodation(ctx context.Context, id string, patch map[string]any) error {
	return r.update(ctx, r.accommodations, id, patch)
}

func (r *mongoCatalogRepo) delete(ctx context.Context, coll *mongo.Collection, id string) error {
	res, err := coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCatalogRepo) DeleteDestination(ctx context.Context, id string) error {
	return r.delete(ctx, r.destinations, id)
}

func (r *mongoCatalogRepo) DeleteEvent(ctx context.Context, id string) error {
	return r.delete(ctx, r.events, id)
}

func (r *mongoCatalogRepo) DeleteAccommodation(ctx context.Context, id string) error {
	return r.delete(ctx, r.accommodations, id)
}

// GetSubject resolves the price/capacity view of any bookable subject.
func (r *mongoCatalogRepo) GetSubject(ctx context.Context, subjectType, id string) (*models.Subject, error) {
	switch subjectType {
	case models.SubjectDestination:
		d, err := r.GetDestination(ctx, id)
		if err != nil {
			return nil, err
		}
		return &models.Subject{Type: subjectType, ID: d.ID, UnitPrice: d.UnitPrice, Currency: d.Currency}, nil
	case models.SubjectEvent:
		e, err := r.GetEvent(ctx, id)
		if err != nil {
			return nil, err
		}
		return &models.Subject{Type: subjectType, ID: e.ID, UnitPrice: e.UnitPrice, Currency: e.Currency, Capacity: e.Capacity}, nil
	case models.SubjectAccommodation:
		a, err := r.GetAccommodation(ctx, id)
		if err != nil {
			return nil, err
		}
		return &models.Subject{Type: subjectType, ID: a.ID, UnitPrice: a.UnitPrice, Currency: a.Currency, Capacity: a.MaxGuests}, nil
	default:
		return nil, fmt.Errorf("unknown subject type: %s", subjectType)
	}
}
