package service

import (
	"context"
	"errors"
	"testing"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

func TestIngredientService_Create_AccessControl(t *testing.T) {
	svc := NewIngredientService(newStubIngredientRepo(), testLogger())
	input := ports.IngredientInput{Name: "Salt", MeasurementUnit: "g"}

	if _, err := svc.Create(context.Background(), domain.Actor{}, input); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for anonymous, got %v", err)
	}
	if _, err := svc.Create(context.Background(), plainActor, input); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
	if _, err := svc.Create(context.Background(), adminActor, input); err != nil {
		t.Fatalf("admin Create returned error: %v", err)
	}
}

func TestIngredientService_Create_RejectsUnknownUnit(t *testing.T) {
	svc := NewIngredientService(newStubIngredientRepo(), testLogger())

	_, err := svc.Create(context.Background(), adminActor, ports.IngredientInput{
		Name:            "Milk",
		MeasurementUnit: "ml",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown unit, got %v", err)
	}
}

func TestIngredientService_Update(t *testing.T) {
	repo := newStubIngredientRepo()
	svc := NewIngredientService(repo, testLogger())

	created, err := svc.Create(context.Background(), adminActor, ports.IngredientInput{
		Name:            "Sugr",
		MeasurementUnit: "g",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	fixed, err := svc.Update(context.Background(), adminActor, created.ID, ports.IngredientInput{
		Name:            "Sugar",
		MeasurementUnit: "kg",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if fixed.ID != created.ID {
		t.Fatalf("Update changed the ID: %q -> %q", created.ID, fixed.ID)
	}
	if fixed.Name != "Sugar" || fixed.MeasurementUnit != domain.UnitKilogram {
		t.Fatalf("unexpected updated ingredient: %+v", fixed)
	}

	stored, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.Name != "Sugar" {
		t.Fatalf("update not persisted: %+v", stored)
	}
}

func TestIngredientService_Update_AccessControl(t *testing.T) {
	repo := newStubIngredientRepo()
	svc := NewIngredientService(repo, testLogger())

	created, err := svc.Create(context.Background(), adminActor, ports.IngredientInput{
		Name:            "Salt",
		MeasurementUnit: "g",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	input := ports.IngredientInput{Name: "Sea salt", MeasurementUnit: "g"}
	if _, err := svc.Update(context.Background(), domain.Actor{}, created.ID, input); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for anonymous, got %v", err)
	}
	if _, err := svc.Update(context.Background(), plainActor, created.ID, input); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
}

func TestIngredientService_Update_NotFound(t *testing.T) {
	svc := NewIngredientService(newStubIngredientRepo(), testLogger())

	_, err := svc.Update(context.Background(), adminActor, "ing-missing", ports.IngredientInput{
		Name:            "Salt",
		MeasurementUnit: "g",
	})
	if !errors.Is(err, domain.ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}
}

func TestIngredientService_Delete_AccessControl(t *testing.T) {
	repo := newStubIngredientRepo()
	svc := NewIngredientService(repo, testLogger())

	created, err := svc.Create(context.Background(), adminActor, ports.IngredientInput{
		Name:            "Flour",
		MeasurementUnit: "kg",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(context.Background(), plainActor, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
	if err := svc.Delete(context.Background(), adminActor, created.ID); err != nil {
		t.Fatalf("admin Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound after delete, got %v", err)
	}
}
