package catalogRepo

import (
	"context"
	"encoding/json"
	"time"

	"voyago/models"
)

// SubjectCache holds serialized subject views. A miss is reported as an
// error from Get.
type SubjectCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// SubjectCacheTTL bounds how long a priced subject view may be served from
// cache after a catalog write on another node.
const SubjectCacheTTL = 5 * time.Minute

const subjectKeyPrefix = "subject:"

func subjectKey(subjectType, id string) string {
	return subjectKeyPrefix + subjectType + ":" + id
}

type cachedCatalogRepo struct {
	CatalogRepository
	cache SubjectCache
}

// NewCachedCatalogRepo wraps a CatalogRepository with subject-view caching.
// Subject lookups are the hot read on every booking creation; catalog
// writes invalidate the matching entry. Cache failures fall through to the
// inner repository.
func NewCachedCatalogRepo(inner CatalogRepository, cache SubjectCache) CatalogRepository {
	return &cachedCatalogRepo{CatalogRepository: inner, cache: cache}
}

func (r *cachedCatalogRepo) GetSubject(ctx context.Context, subjectType, id string) (*models.Subject, error) {
	key := subjectKey(subjectType, id)
	if raw, err := r.cache.Get(ctx, key); err == nil {
		var s models.Subject
		if json.Unmarshal([]byte(raw), &s) == nil {
			return &s, nil
		}
	}

	s, err := r.CatalogRepository.GetSubject(ctx, subjectType, id)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(s); err == nil {
		r.cache.Set(ctx, key, string(raw), SubjectCacheTTL)
	}
	return s, nil
}

func (r *cachedCatalogRepo) UpdateDestination(ctx context.Context, id string, patch map[string]any) error {
	if err := r.CatalogRepository.UpdateDestination(ctx, id, patch); err != nil {
		return err
	}
	r.cache.Del(ctx, subjectKey(models.SubjectDestination, id))
	return nil
}

func (r *cachedCatalogRepo) UpdateEvent(ctx context.Context, id string, patch map[string]any) error {
	if err := r.CatalogRepository.UpdateEvent(ctx, id, patch); err != nil {
		return err
	}
	r.cache.Del(ctx, subjectKey(models.SubjectEvent, id))
	return nil
}

func (r *cachedCatalogRepo) UpdateAccommodation(ctx context.Context, id string, patch map[string]any) error {
	if err := r.CatalogRepository.UpdateAccommodation(ctx, id, patch); err != nil {
		return err
	}
	r.cache.Del(ctx, subjectKey(models.SubjectAccommodation, id))
	return nil
}

func (r *cachedCatalogRepo) DeleteDestination(ctx context.Context, id string) error {
	if err := r.CatalogRepository.DeleteDestination(ctx, id); err != nil {
		return err
	}
	r.cache.Del(ctx, subjectKey(models.SubjectDestination, id))
	return nil
}

func (r *cachedCatalogRepo) DeleteEvent(ctx context.Context, id string) error {
	if err := r.CatalogRepository.DeleteEvent(ctx, id); err != nil {
		return err
	}
	r.cache.Del(ctx, subjectKey(models.SubjectEvent, id))
	return nil
}

func (r *cachedCatalogRepo) DeleteAccommodation(ctx context.Context, id string) error {
	if err := r.CatalogRepository.DeleteAccommodation(ctx, id); err != nil {
		return err
	}
	r.cache.Del(ctx, subjectKey(models.SubjectAccommodation, id))
	return nil
}
