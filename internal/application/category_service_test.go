package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/shift-planner/internal/application"
	"github.com/example/shift-planner/internal/testfixtures"
)

func TestCategoryService_FlagsAreExclusive(t *testing.T) {
	t.Parallel()

	care := testfixtures.NewCategoryFixture(testfixtures.AsCare())
	disposal := testfixtures.NewCategoryFixture(testfixtures.AsDisposalTime())
	snap := testfixtures.NewSnapshotFixture([]application.Category{care, disposal}, nil, nil, nil)
	svc := application.NewCategoryService(nil)

	_, _, err := svc.CreateCategory(context.Background(), snap, application.CategoryInput{Name: "Second care", IsCare: true})
	var vErr *application.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.FieldErrors["care"]; !ok {
		t.Fatalf("FieldErrors = %v, want care", vErr.FieldErrors)
	}

	_, _, err = svc.CreateCategory(context.Background(), snap, application.CategoryInput{Name: "Second disposal", IsDisposalTime: true})
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.FieldErrors["disposalTime"]; !ok {
		t.Fatalf("FieldErrors = %v, want disposalTime", vErr.FieldErrors)
	}

	// Re-flagging the category that already owns the flag stays legal.
	if _, _, err := svc.UpdateCategory(context.Background(), snap, care.ID, application.CategoryInput{Name: care.Name, IsCare: true}); err != nil {
		t.Fatalf("UpdateCategory on the flag owner: %v", err)
	}
}

func TestCategoryService_PauseCategoryIsImmutable(t *testing.T) {
	t.Parallel()

	snap := testfixtures.NewSnapshotFixture(nil, nil, nil, nil)
	svc := application.NewCategoryService(nil)

	_, _, err := svc.UpdateCategory(context.Background(), snap, application.PauseCategoryKey, application.CategoryInput{Name: "Pause"})
	if !errors.Is(err, application.ErrImmutable) {
		t.Fatalf("expected ErrImmutable on update, got %v", err)
	}
	_, err = svc.DeleteCategory(context.Background(), snap, application.PauseCategoryKey)
	if !errors.Is(err, application.ErrImmutable) {
		t.Fatalf("expected ErrImmutable on delete, got %v", err)
	}
}

func TestCategoryService_DeleteCategory_ReferentialIntegrity(t *testing.T) {
	t.Parallel()

	t.Run("blocked by booking segment", func(t *testing.T) {
		t.Parallel()
		category := testfixtures.NewCategoryFixture()
		employee := testfixtures.NewEmployeeFixture()
		shift := testfixtures.NewShiftFixture(employee.ID, application.Monday,
			testfixtures.CareSegment(category.ID, 480, 600))
		snap := testfixtures.NewSnapshotFixture(
			[]application.Category{category}, nil,
			[]application.Employee{employee}, []application.Shift{shift})

		svc := application.NewCategoryService(nil)
		_, err := svc.DeleteCategory(context.Background(), snap, category.ID)
		if !errors.Is(err, application.ErrInUse) {
			t.Fatalf("expected ErrInUse, got %v", err)
		}
	})

	t.Run("blocked by sub-category parent", func(t *testing.T) {
		t.Parallel()
		category := testfixtures.NewCategoryFixture()
		snap := testfixtures.NewSnapshotFixture([]application.Category{category}, nil, nil, nil)
		snap.SubCategories = []application.SubCategory{{
			ID: "sub-1", Name: "Vorbereitung", Parent: application.UserCategory(category.ID),
		}}

		svc := application.NewCategoryService(nil)
		_, err := svc.DeleteCategory(context.Background(), snap, category.ID)
		if !errors.Is(err, application.ErrInUse) {
			t.Fatalf("expected ErrInUse, got %v", err)
		}
	})
}

func TestCategoryService_SubCategories(t *testing.T) {
	t.Parallel()

	category := testfixtures.NewCategoryFixture()
	snap := testfixtures.NewSnapshotFixture([]application.Category{category}, nil, nil, nil)
	svc := application.NewCategoryService(testfixtures.NewIDGenerator("sub").NextFunc())

	t.Run("parent may be the pause category", func(t *testing.T) {
		next, sub, err := svc.CreateSubCategory(context.Background(), snap, application.SubCategoryInput{
			Name:   "Frühstückspause",
			Parent: application.PauseCategory(),
		})
		if err != nil {
			t.Fatalf("CreateSubCategory: %v", err)
		}
		if !sub.Parent.IsPause() {
			t.Fatal("parent should resolve to the pause category")
		}
		if len(next.SubCategories) != 1 {
			t.Fatalf("SubCategories = %d, want 1", len(next.SubCategories))
		}
	})

	t.Run("unknown parent is rejected", func(t *testing.T) {
		_, _, err := svc.CreateSubCategory(context.Background(), snap, application.SubCategoryInput{
			Name:   "Orphan",
			Parent: application.UserCategory("missing"),
		})
		var vErr *application.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("delete blocked by booking segment", func(t *testing.T) {
		employee := testfixtures.NewEmployeeFixture()
		segment := testfixtures.CareSegment(category.ID, 480, 600)
		segment.SubCategoryID = "sub-used"
		withUse := testfixtures.NewSnapshotFixture(
			[]application.Category{category}, nil,
			[]application.Employee{employee},
			[]application.Shift{testfixtures.NewShiftFixture(employee.ID, application.Friday, segment)})
		withUse.SubCategories = []application.SubCategory{{
			ID: "sub-used", Name: "Used", Parent: application.UserCategory(category.ID),
		}}

		_, err := svc.DeleteSubCategory(context.Background(), withUse, "sub-used")
		if !errors.Is(err, application.ErrInUse) {
			t.Fatalf("expected ErrInUse, got %v", err)
		}
	})
}
