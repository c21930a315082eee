package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SergioCaMi/Gallery/models"
)

// snapshotRecord is the on-disk shape of one record. The id and URL are
// written under both their historical keys so older snapshot files and
// tooling keep working.
type snapshotRecord struct {
	MongoID     string         `json:"_id"`
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	URL         string         `json:"urlImagen"`
	AltURL      string         `json:"url"`
	Date        time.Time      `json:"date"`
	Description string         `json:"description"`
	Colors      []models.Color `json:"colors"`
	Exif        map[string]any `json:"exif"`
	User        models.Owner   `json:"user"`
}

func toSnapshotRecord(img models.Image) snapshotRecord {
	return snapshotRecord{
		MongoID:     img.ID,
		ID:          img.ID,
		Title:       img.Title,
		URL:         img.URL,
		AltURL:      img.URL,
		Date:        img.Date,
		Description: img.Description,
		Colors:      img.Colors,
		Exif:        img.Exif,
		User:        img.Owner,
	}
}

func (r snapshotRecord) toImage() models.Image {
	id := r.ID
	if id == "" {
		id = r.MongoID
	}
	url := r.URL
	if url == "" {
		url = r.AltURL
	}
	return models.Image{
		ID:          id,
		Title:       r.Title,
		URL:         url,
		Date:        r.Date,
		Description: r.Description,
		Colors:      r.Colors,
		Exif:        r.Exif,
		Owner:       r.User,
	}
}

// seedRecords is written to a fresh snapshot file so demo mode starts
// with something to show.
func seedRecords() []snapshotRecord {
	return []snapshotRecord{toSnapshotRecord(models.Image{
		ID:          uuid.NewString(),
		Title:       "Sample Image",
		URL:         "https://c.files.bbci.co.uk/14241/production/_111879428_pilares.jpg",
		Date:        time.Now(),
		Description: "An example record created for demo mode",
		Colors: []models.Color{
			models.NewColor(72, 84, 101),
			models.NewColor(196, 177, 148),
		},
		Exif: map[string]any{
			"XResolution":    96,
			"YResolution":    96,
			"ResolutionUnit": "inches",
		},
		Owner: models.Owner{Name: "Demo User", Email: "demo@test.com"},
	})}
}

// SnapshotStore is the demo backend: records live in memory and every
// mutation synchronously rewrites the whole snapshot file, so a restart
// reloads the last written state. The mutex serializes mutations from
// concurrent requests.
type SnapshotStore struct {
	mu      sync.Mutex
	path    string
	records []snapshotRecord
}

// NewSnapshotStore loads the snapshot file, creating and seeding it
// when missing.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	s := &SnapshotStore{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.records = seedRecords()
		if err := s.persist(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return s, nil
}

// persist rewrites the whole file. Callers hold the mutex.
func (s *SnapshotStore) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", s.path, err)
	}
	return nil
}

func (s *SnapshotStore) List(ctx context.Context) ([]models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	images := make([]models.Image, 0, len(s.records))
	for _, r := range s.records {
		images = append(images, r.toImage())
	}
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Date.Before(images[j].Date)
	})
	return images, nil
}

func (s *SnapshotStore) GetByID(ctx context.Context, id string) (*models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexByID(id); i >= 0 {
		img := s.records[i].toImage()
		return &img, nil
	}
	return nil, ErrNotFound
}

func (s *SnapshotStore) GetByURL(ctx context.Context, url string) (*models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.URL == url || r.AltURL == url {
			img := r.toImage()
			return &img, nil
		}
	}
	return nil, ErrNotFound
}

func (s *SnapshotStore) Create(ctx context.Context, img models.Image) (*models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.URL == img.URL || r.AltURL == img.URL {
			return nil, ErrDuplicateURL
		}
	}

	img.ID = uuid.NewString()
	if img.Date.IsZero() {
		img.Date = time.Now()
	}

	s.records = append(s.records, toSnapshotRecord(img))
	if err := s.persist(); err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *SnapshotStore) Update(ctx context.Context, id string, upd models.ImageUpdate) (*models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	rec := &s.records[i]
	if upd.Title != nil {
		rec.Title = *upd.Title
	}
	if upd.Date != nil {
		rec.Date = *upd.Date
	}
	if upd.Description != nil {
		rec.Description = *upd.Description
	}

	if err := s.persist(); err != nil {
		return nil, err
	}
	img := rec.toImage()
	return &img, nil
}

func (s *SnapshotStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return false, nil
	}

	s.records = append(s.records[:i], s.records[i+1:]...)
	if err := s.persist(); err != nil {
		return false, err
	}
	return true, nil
}

// indexByID matches either historical id key. Callers hold the mutex.
func (s *SnapshotStore) indexByID(id string) int {
	for i, r := range s.records {
		if r.ID == id || r.MongoID == id {
			return i
		}
	}
	return -1
}
