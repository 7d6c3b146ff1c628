// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"anime-stream/internal/apperror"
	"anime-stream/internal/models"
	"anime-stream/internal/repository"

	"github.com/google/uuid"
)

// Store backs all three repositories. Rows keep insertion order, which is
// what FindFirstActive scans. Setting Err makes every call fail with it.
type Store struct {
	mu    sync.Mutex
	anime []models.Anime
	ads   []models.Advertisement
	roles []models.UserRole
	clock time.Time
	calls []string

	Err error
}

func NewStore() *Store {
	return &Store{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Calls lists the operations issued so far, e.g. "anime.Create".
func (s *Store) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CountCalls returns how many recorded operations start with prefix.
func (s *Store) CountCalls(prefix string) int {
	n := 0
	for _, c := range s.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (s *Store) enter(op string) error {
	s.calls = append(s.calls, op)
	return s.Err
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) Anime() repository.AnimeRepository {
	return &animeRepo{s}
}

func (s *Store) Advertisements() repository.AdvertisementRepository {
	return &adRepo{s}
}

func (s *Store) Roles() repository.UserRoleRepository {
	return &roleRepo{s}
}

// SeedAnime inserts rows directly, bypassing call recording.
func (s *Store) SeedAnime(list ...models.Anime) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range list {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = s.tick()
		}
		s.anime = append(s.anime, a)
	}
}

func (s *Store) SeedAdvertisements(list ...models.Advertisement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range list {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = s.tick()
		}
		s.ads = append(s.ads, a)
	}
}

func (s *Store) SeedRole(userID, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles = append(s.roles, models.UserRole{ID: uuid.NewString(), UserID: userID, Role: role, CreatedAt: s.tick()})
}

type animeRepo struct{ s *Store }

func (r *animeRepo) FindAllByRating(ctx context.Context) ([]models.Anime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("anime.FindAllByRating"); err != nil {
		return nil, err
	}
	list := append([]models.Anime(nil), r.s.anime...)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Rating > list[j].Rating })
	return list, nil
}

func (r *animeRepo) FindAllByCreated(ctx context.Context) ([]models.Anime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("anime.FindAllByCreated"); err != nil {
		return nil, err
	}
	list := append([]models.Anime(nil), r.s.anime...)
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *animeRepo) FindByID(ctx context.Context, id string) (*models.Anime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("anime.FindByID"); err != nil {
		return nil, err
	}
	for _, a := range r.s.anime {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, fmt.Errorf("anime %s: %w", id, apperror.ErrNotFound)
}

func (r *animeRepo) CountByImageURL(ctx context.Context, imageURL string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("anime.CountByImageURL"); err != nil {
		return 0, err
	}
	var n int64
	for _, a := range r.s.anime {
		if a.ImageURL == imageURL {
			n++
		}
	}
	return n, nil
}

func (r *animeRepo) Create(ctx context.Context, anime *models.Anime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("anime.Create"); err != nil {
		return err
	}
	if anime.ID == "" {
		anime.ID = uuid.NewString()
	}
	anime.CreatedAt = r.s.tick()
	anime.UpdatedAt = anime.CreatedAt
	r.s.anime = append(r.s.anime, *anime)
	return nil
}

func (r *animeRepo) Update(ctx context.Context, anime *models.Anime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("anime.Update"); err != nil {
		return err
	}
	for i := range r.s.anime {
		if r.s.anime[i].ID == anime.ID {
			anime.CreatedAt = r.s.anime[i].CreatedAt
			anime.UpdatedAt = r.s.tick()
			r.s.anime[i] = *anime
			return nil
		}
	}
	return fmt.Errorf("anime %s: %w", anime.ID, apperror.ErrNotFound)
}

func (r *animeRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("anime.Delete"); err != nil {
		return err
	}
	for i := range r.s.anime {
		if r.s.anime[i].ID == id {
			r.s.anime = append(r.s.anime[:i], r.s.anime[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("anime %s: %w", id, apperror.ErrNotFound)
}

type adRepo struct{ s *Store }

func (r *adRepo) FindAllByCreated(ctx context.Context) ([]models.Advertisement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ads.FindAllByCreated"); err != nil {
		return nil, err
	}
	list := append([]models.Advertisement(nil), r.s.ads...)
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *adRepo) FindByID(ctx context.Context, id string) (*models.Advertisement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ads.FindByID"); err != nil {
		return nil, err
	}
	for _, a := range r.s.ads {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, fmt.Errorf("advertisement %s: %w", id, apperror.ErrNotFound)
}

func (r *adRepo) FindFirstActive(ctx context.Context) (*models.Advertisement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ads.FindFirstActive"); err != nil {
		return nil, err
	}
	for _, a := range r.s.ads {
		if a.IsActive {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r *adRepo) Create(ctx context.Context, ad *models.Advertisement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ads.Create"); err != nil {
		return err
	}
	if ad.ID == "" {
		ad.ID = uuid.NewString()
	}
	ad.CreatedAt = r.s.tick()
	ad.UpdatedAt = ad.CreatedAt
	r.s.ads = append(r.s.ads, *ad)
	return nil
}

func (r *adRepo) Update(ctx context.Context, ad *models.Advertisement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ads.Update"); err != nil {
		return err
	}
	for i := range r.s.ads {
		if r.s.ads[i].ID == ad.ID {
			ad.CreatedAt = r.s.ads[i].CreatedAt
			ad.UpdatedAt = r.s.tick()
			r.s.ads[i] = *ad
			return nil
		}
	}
	return fmt.Errorf("advertisement %s: %w", ad.ID, apperror.ErrNotFound)
}

func (r *adRepo) SetActive(ctx context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ads.SetActive"); err != nil {
		return err
	}
	for i := range r.s.ads {
		if r.s.ads[i].ID == id {
			r.s.ads[i].IsActive = active
			r.s.ads[i].UpdatedAt = r.s.tick()
			return nil
		}
	}
	return fmt.Errorf("advertisement %s: %w", id, apperror.ErrNotFound)
}

func (r *adRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("ads.Delete"); err != nil {
		return err
	}
	for i := range r.s.ads {
		if r.s.ads[i].ID == id {
			r.s.ads = append(r.s.ads[:i], r.s.ads[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("advertisement %s: %w", id, apperror.ErrNotFound)
}

type roleRepo struct{ s *Store }

func (r *roleRepo) HasRole(ctx context.Context, userID, role string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("roles.HasRole"); err != nil {
		return false, err
	}
	for _, row := range r.s.roles {
		if row.UserID == userID && row.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (r *roleRepo) Grant(ctx context.Context, userID, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("roles.Grant"); err != nil {
		return err
	}
	for _, row := range r.s.roles {
		if row.UserID == userID && row.Role == role {
			return nil
		}
	}
	r.s.roles = append(r.s.roles, models.UserRole{ID: uuid.NewString(), UserID: userID, Role: role, CreatedAt: r.s.tick()})
	return nil
}

func (r *roleRepo) Revoke(ctx context.Context, userID, role string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("roles.Revoke"); err != nil {
		return false, err
	}
	for i, row := range r.s.roles {
		if row.UserID == userID && row.Role == role {
			r.s.roles = append(r.s.roles[:i], r.s.roles[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *roleRepo) ListByRole(ctx context.Context, role string) ([]models.UserRole, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("roles.ListByRole"); err != nil {
		return nil, err
	}
	var rows []models.UserRole
	for _, row := range r.s.roles {
		if row.Role == role {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
