package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// CategoryInput captures caller provided category fields.
type CategoryInput struct {
	Name           string
	ColorToken     string
	IsDisposalTime bool
	IsCare         bool
}

// SubCategoryInput captures caller provided sub-category fields. Parent may
// reference a user category or the built-in pause category.
type SubCategoryInput struct {
	Name       string
	Parent     CategoryRef
	ColorToken string
}

// CategoryService applies category and sub-category mutations to roster
// snapshots. The built-in pause category is not part of the category list
// and cannot be edited or deleted.
type CategoryService struct {
	idGenerator func() string
	logger      *slog.Logger
}

// NewCategoryService constructs a category service. A nil idGenerator falls
// back to random UUIDs.
func NewCategoryService(idGenerator func() string) *CategoryService {
	return NewCategoryServiceWithLogger(idGenerator, nil)
}

// NewCategoryServiceWithLogger constructs a category service with a
// specified logger.
func NewCategoryServiceWithLogger(idGenerator func() string, logger *slog.Logger) *CategoryService {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	return &CategoryService{idGenerator: idGenerator, logger: defaultLogger(logger)}
}

func (s *CategoryService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CategoryService", operation, attrs...)
}

// CreateCategory validates the input and appends the category. The
// disposal-time and care flags are exclusive across the snapshot.
func (s *CategoryService) CreateCategory(ctx context.Context, snap Snapshot, input CategoryInput) (next Snapshot, category Category, err error) {
	if s == nil {
		err = fmt.Errorf("CategoryService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateCategory")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create category", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("category_id", category.ID).InfoContext(ctx, "category created")
	}()

	vErr := validateCategoryInput(&snap, input, "")
	if vErr.HasErrors() {
		err = vErr
		return
	}

	category = Category{
		ID:             s.idGenerator(),
		Name:           strings.TrimSpace(input.Name),
		ColorToken:     input.ColorToken,
		IsDisposalTime: input.IsDisposalTime,
		IsCare:         input.IsCare,
	}
	next = snap.Clone()
	next.Categories = append(next.Categories, category)
	return
}

// UpdateCategory validates the input and replaces the category's fields.
func (s *CategoryService) UpdateCategory(ctx context.Context, snap Snapshot, categoryID string, input CategoryInput) (next Snapshot, category Category, err error) {
	if s == nil {
		err = fmt.Errorf("CategoryService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateCategory", "category_id", categoryID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update category", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if categoryID == PauseCategoryKey {
		err = ErrImmutable
		return
	}
	if _, ok := snap.CategoryByID(categoryID); !ok {
		err = ErrNotFound
		return
	}

	vErr := validateCategoryInput(&snap, input, categoryID)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	next = snap.Clone()
	for i := range next.Categories {
		if next.Categories[i].ID != categoryID {
			continue
		}
		next.Categories[i] = Category{
			ID:             categoryID,
			Name:           strings.TrimSpace(input.Name),
			ColorToken:     input.ColorToken,
			IsDisposalTime: input.IsDisposalTime,
			IsCare:         input.IsCare,
		}
		category = next.Categories[i]
		break
	}
	return
}

// DeleteCategory removes a category. The delete is blocked while a segment
// books the category or a sub-category uses it as parent.
func (s *CategoryService) DeleteCategory(ctx context.Context, snap Snapshot, categoryID string) (next Snapshot, err error) {
	if s == nil {
		err = fmt.Errorf("CategoryService is nil")
		return
	}

	logger := s.loggerWith(ctx, "DeleteCategory", "category_id", categoryID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete category", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "category deleted")
	}()

	if categoryID == PauseCategoryKey {
		err = ErrImmutable
		return
	}
	if _, ok := snap.CategoryByID(categoryID); !ok {
		err = ErrNotFound
		return
	}
	ref := UserCategory(categoryID)
	for _, sh := range snap.Plan.Shifts {
		for _, seg := range sh.Segments {
			if seg.Category == ref {
				err = fmt.Errorf("%w: category booked by a segment", ErrInUse)
				return
			}
		}
	}
	for _, sub := range snap.SubCategories {
		if sub.Parent == ref {
			err = fmt.Errorf("%w: category is a sub-category parent", ErrInUse)
			return
		}
	}

	next = snap.Clone()
	for i := range next.Categories {
		if next.Categories[i].ID == categoryID {
			next.Categories = append(next.Categories[:i], next.Categories[i+1:]...)
			break
		}
	}
	return
}

// CreateSubCategory validates the input and appends the sub-category.
func (s *CategoryService) CreateSubCategory(ctx context.Context, snap Snapshot, input SubCategoryInput) (next Snapshot, sub SubCategory, err error) {
	if s == nil {
		err = fmt.Errorf("CategoryService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateSubCategory")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create sub-category", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("sub_category_id", sub.ID).InfoContext(ctx, "sub-category created")
	}()

	vErr := validateSubCategoryInput(&snap, input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	sub = SubCategory{
		ID:         s.idGenerator(),
		Name:       strings.TrimSpace(input.Name),
		Parent:     input.Parent,
		ColorToken: input.ColorToken,
	}
	next = snap.Clone()
	next.SubCategories = append(next.SubCategories, sub)
	return
}

// UpdateSubCategory validates the input and replaces the sub-category's
// fields.
func (s *CategoryService) UpdateSubCategory(ctx context.Context, snap Snapshot, subCategoryID string, input SubCategoryInput) (next Snapshot, sub SubCategory, err error) {
	if s == nil {
		err = fmt.Errorf("CategoryService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateSubCategory", "sub_category_id", subCategoryID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update sub-category", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if _, ok := snap.SubCategoryByID(subCategoryID); !ok {
		err = ErrNotFound
		return
	}

	vErr := validateSubCategoryInput(&snap, input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	next = snap.Clone()
	for i := range next.SubCategories {
		if next.SubCategories[i].ID != subCategoryID {
			continue
		}
		next.SubCategories[i] = SubCategory{
			ID:         subCategoryID,
			Name:       strings.TrimSpace(input.Name),
			Parent:     input.Parent,
			ColorToken: input.ColorToken,
		}
		sub = next.SubCategories[i]
		break
	}
	return
}

// DeleteSubCategory removes a sub-category. The delete is blocked while a
// segment books it.
func (s *CategoryService) DeleteSubCategory(ctx context.Context, snap Snapshot, subCategoryID string) (next Snapshot, err error) {
	if s == nil {
		err = fmt.Errorf("CategoryService is nil")
		return
	}

	logger := s.loggerWith(ctx, "DeleteSubCategory", "sub_category_id", subCategoryID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete sub-category", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "sub-category deleted")
	}()

	if _, ok := snap.SubCategoryByID(subCategoryID); !ok {
		err = ErrNotFound
		return
	}
	for _, sh := range snap.Plan.Shifts {
		for _, seg := range sh.Segments {
			if seg.SubCategoryID == subCategoryID {
				err = fmt.Errorf("%w: sub-category booked by a segment", ErrInUse)
				return
			}
		}
	}

	next = snap.Clone()
	for i := range next.SubCategories {
		if next.SubCategories[i].ID == subCategoryID {
			next.SubCategories = append(next.SubCategories[:i], next.SubCategories[i+1:]...)
			break
		}
	}
	return
}

func validateCategoryInput(snap *Snapshot, input CategoryInput, selfID string) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "must not be empty")
	}
	for _, c := range snap.Categories {
		if c.ID == selfID {
			continue
		}
		if input.IsDisposalTime && c.IsDisposalTime {
			vErr.add("disposalTime", "another category already tracks disposal time")
		}
		if input.IsCare && c.IsCare {
			vErr.add("care", "another category is already the care category")
		}
	}

	return vErr
}

func validateSubCategoryInput(snap *Snapshot, input SubCategoryInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "must not be empty")
	}
	if input.Parent.IsZero() {
		vErr.add("parent", "must reference a category")
	} else if id, ok := input.Parent.UserID(); ok {
		if _, exists := snap.CategoryByID(id); !exists {
			vErr.add("parent", "unknown category")
		}
	}

	return vErr
}
