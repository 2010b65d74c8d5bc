package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-hub/internal/repository"

	"github.com/google/uuid"
)

type mockExperienceRepo struct {
	rows map[uuid.UUID]repository.Experience
}

func newMockExperienceRepo() *mockExperienceRepo {
	return &mockExperienceRepo{rows: make(map[uuid.UUID]repository.Experience)}
}

func (m *mockExperienceRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]repository.Experience, error) {
	out := make([]repository.Experience, 0)
	for _, e := range m.rows {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockExperienceRepo) Create(_ context.Context, e repository.Experience) (repository.Experience, error) {
	m.rows[e.ID] = e
	return e, nil
}

func (m *mockExperienceRepo) Update(_ context.Context, e repository.Experience) (repository.Experience, error) {
	cur, ok := m.rows[e.ID]
	if !ok || cur.UserID != e.UserID {
		return repository.Experience{}, repository.ErrExperienceNotFound
	}
	m.rows[e.ID] = e
	return e, nil
}

func (m *mockExperienceRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	e, ok := m.rows[id]
	if !ok || e.UserID != userID {
		return repository.ErrExperienceNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *mockExperienceRepo) DeleteByID(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	e, ok := m.rows[id]
	if !ok {
		return uuid.Nil, repository.ErrExperienceNotFound
	}
	delete(m.rows, id)
	return e.UserID, nil
}

func (m *mockExperienceRepo) List(_ context.Context, _ repository.ExperienceListFilter) ([]repository.ExperienceListRow, int, error) {
	return nil, 0, nil
}

func TestExperiences_Create_Success(t *testing.T) {
	uc := NewExperienceUsecase(newMockExperienceRepo(), nil)
	userID := uuid.New()
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	e, err := uc.Create(context.Background(), userID, ExperienceInput{
		JobTitle:  "  Engineer  ",
		Company:   "Acme",
		StartDate: start,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if e.JobTitle != "Engineer" {
		t.Fatalf("expected trimmed title, got %q", e.JobTitle)
	}
	if e.EndDate != nil {
		t.Fatalf("open-ended entry should keep a nil end date")
	}
	if e.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}
}

func TestExperiences_Create_EndBeforeStart(t *testing.T) {
	uc := NewExperienceUsecase(newMockExperienceRepo(), nil)
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)

	_, err := uc.Create(context.Background(), uuid.New(), ExperienceInput{
		JobTitle:  "Engineer",
		Company:   "Acme",
		StartDate: start,
		EndDate:   &end,
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestExperiences_Create_EndEqualsStartAllowed(t *testing.T) {
	uc := NewExperienceUsecase(newMockExperienceRepo(), nil)
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start

	if _, err := uc.Create(context.Background(), uuid.New(), ExperienceInput{
		JobTitle:  "Engineer",
		Company:   "Acme",
		StartDate: start,
		EndDate:   &end,
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestExperiences_Create_MissingFields(t *testing.T) {
	uc := NewExperienceUsecase(newMockExperienceRepo(), nil)

	cases := []ExperienceInput{
		{JobTitle: "", Company: "Acme", StartDate: time.Now()},
		{JobTitle: "Engineer", Company: "   ", StartDate: time.Now()},
		{JobTitle: "Engineer", Company: "Acme"},
	}
	for i, in := range cases {
		if _, err := uc.Create(context.Background(), uuid.New(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestExperiences_Update_OwnerScoped(t *testing.T) {
	repo := newMockExperienceRepo()
	owner := uuid.New()
	id := uuid.New()
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.rows[id] = repository.Experience{ID: id, UserID: owner, JobTitle: "Engineer", Company: "Acme", StartDate: start}
	uc := NewExperienceUsecase(repo, nil)

	in := ExperienceInput{JobTitle: "Senior Engineer", Company: "Acme", StartDate: start}

	if _, err := uc.Update(context.Background(), id, uuid.New(), in); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}

	updated, err := uc.Update(context.Background(), id, owner, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.JobTitle != "Senior Engineer" {
		t.Fatalf("unexpected title: %q", updated.JobTitle)
	}
}

func TestExperiences_Delete_OwnerScoped(t *testing.T) {
	repo := newMockExperienceRepo()
	owner := uuid.New()
	id := uuid.New()
	repo.rows[id] = repository.Experience{ID: id, UserID: owner, JobTitle: "Engineer", Company: "Acme"}
	uc := NewExperienceUsecase(repo, nil)

	if err := uc.Delete(context.Background(), id, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}
	if err := uc.Delete(context.Background(), id, owner); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestExperiences_DeleteAny_InvalidatesOwnerPortfolio(t *testing.T) {
	repo := newMockExperienceRepo()
	owner := uuid.New()
	id := uuid.New()
	repo.rows[id] = repository.Experience{ID: id, UserID: owner, JobTitle: "Engineer", Company: "Acme"}

	cache := newFakeCache()
	cache.data[portfolioCacheKey(owner.String())] = []byte(`{}`)
	uc := NewExperienceUsecase(repo, cache)

	if err := uc.DeleteAny(context.Background(), id); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := cache.data[portfolioCacheKey(owner.String())]; ok {
		t.Fatalf("expected the owner's portfolio cache entry to be invalidated")
	}
}
