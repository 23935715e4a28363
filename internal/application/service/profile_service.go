package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"github.com/sangkips/receipt-engine/internal/domain/entity"
	"github.com/sangkips/receipt-engine/internal/domain/repository"
	"github.com/sangkips/receipt-engine/pkg/apperror"
	"github.com/sangkips/receipt-engine/pkg/pagination"
	"github.com/sangkips/receipt-engine/pkg/receipt"
	"github.com/sangkips/receipt-engine/pkg/utils"
)

// ProfileService handles saved print profile business logic
type ProfileService struct {
	profileRepo repository.PrintProfileRepository
	defaultName string
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.PrintProfileRepository, defaultName string) *ProfileService {
	if defaultName == "" {
		defaultName = entity.DefaultProfileName
	}
	return &ProfileService{
		profileRepo: profileRepo,
		defaultName: defaultName,
	}
}

// ProfileView is a stored profile together with the profile it resolves to.
type ProfileView struct {
	Name     string            `json:"name"`
	Settings receipt.Overrides `json:"settings"`
	Resolved receipt.Profile   `json:"resolved"`
}

// DefaultName returns the profile used when a request names none.
func (s *ProfileService) DefaultName() string {
	return s.defaultName
}

// Get retrieves a profile by name. The default profile always exists, even
// before it has been saved.
func (s *ProfileService) Get(ctx context.Context, name string) (*ProfileView, error) {
	name = s.profileName(name)
	settings, err := s.savedSettings(ctx, name)
	if err != nil {
		return nil, err
	}

	resolved, err := receipt.Normalize(receipt.Overrides{}, settings)
	if err != nil {
		return nil, mapRenderError(err)
	}
	return &ProfileView{Name: name, Settings: settings, Resolved: resolved}, nil
}

// Resolve merges per-request overrides over the saved profile and defaults.
func (s *ProfileService) Resolve(ctx context.Context, name string, overrides receipt.Overrides) (receipt.Profile, error) {
	settings, err := s.savedSettings(ctx, s.profileName(name))
	if err != nil {
		return receipt.Profile{}, err
	}

	p, err := receipt.Normalize(overrides, settings)
	if err != nil {
		return receipt.Profile{}, mapRenderError(err)
	}
	return p, nil
}

// Save validates and stores the settings, replacing what was saved before.
func (s *ProfileService) Save(ctx context.Context, name string, settings receipt.Overrides) (*ProfileView, error) {
	name = s.profileName(name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Profile name is required")
	}

	resolved, err := receipt.Normalize(receipt.Overrides{}, settings)
	if err != nil {
		return nil, mapRenderError(err)
	}

	existing, err := s.profileRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		existing = &entity.PrintProfile{Name: name, Settings: settings}
		if err := s.profileRepo.Create(ctx, existing); err != nil {
			return nil, err
		}
	} else {
		existing.Settings = settings
		if err := s.profileRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
	}

	return &ProfileView{Name: name, Settings: settings, Resolved: resolved}, nil
}

// Reset clears every saved field so the profile resolves to the defaults.
func (s *ProfileService) Reset(ctx context.Context, name string) (*ProfileView, error) {
	return s.Save(ctx, name, receipt.Overrides{})
}

// Delete removes a saved profile. The default profile can only be reset.
func (s *ProfileService) Delete(ctx context.Context, name string) error {
	name = s.profileName(name)
	if name == s.defaultName {
		return apperror.NewBadRequestError("The default profile cannot be deleted")
	}

	existing, err := s.profileRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Print profile")
	}

	return s.profileRepo.Delete(ctx, name)
}

// List retrieves saved profiles with pagination
func (s *ProfileService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.PrintProfile], error) {
	params.Validate()

	profiles, total, err := s.profileRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(profiles, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// Export flattens a profile into a key-value document keyed by field name.
// Only saved fields are included unless resolved is set.
func (s *ProfileService) Export(ctx context.Context, name string, resolved bool) (map[string]string, error) {
	view, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	if resolved {
		return flatten(view.Resolved)
	}
	return flatten(view.Settings)
}

// Import decodes a key-value document produced by Export and saves it.
// Values are strings; unknown keys are rejected.
func (s *ProfileService) Import(ctx context.Context, name string, doc map[string]string) (*ProfileView, error) {
	settings, err := decodeOverrides(doc)
	if err != nil {
		return nil, err
	}
	return s.Save(ctx, name, settings)
}

func (s *ProfileService) profileName(name string) string {
	if name == "" {
		return s.defaultName
	}
	return utils.Slugify(name)
}

func (s *ProfileService) savedSettings(ctx context.Context, name string) (receipt.Overrides, error) {
	profile, err := s.profileRepo.GetByName(ctx, name)
	if err != nil {
		return receipt.Overrides{}, err
	}
	if profile == nil {
		if name == s.defaultName {
			return receipt.Overrides{}, nil
		}
		return receipt.Overrides{}, apperror.NewNotFoundError("Print profile")
	}
	return profile.Settings, nil
}

func decodeOverrides(doc map[string]string) (receipt.Overrides, error) {
	var settings receipt.Overrides
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &settings,
	})
	if err != nil {
		return receipt.Overrides{}, err
	}

	if err := decoder.Decode(doc); err != nil {
		var decodeErr *mapstructure.Error
		if errors.As(err, &decodeErr) {
			fields := make([]apperror.FieldError, 0, len(decodeErr.Errors))
			for _, msg := range decodeErr.Errors {
				fields = append(fields, apperror.FieldError{Field: "document", Message: msg})
			}
			return receipt.Overrides{}, apperror.NewValidationErrorWithMessage("Invalid profile document", fields)
		}
		return receipt.Overrides{}, apperror.NewValidationErrorWithMessage("Invalid profile document", []apperror.FieldError{
			{Field: "document", Message: err.Error()},
		})
	}
	return settings, nil
}

// flatten renders v's JSON fields as strings.
func flatten(v any) (map[string]string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	doc := make(map[string]string, len(fields))
	for k, val := range fields {
		switch x := val.(type) {
		case string:
			doc[k] = x
		case bool:
			doc[k] = strconv.FormatBool(x)
		case float64:
			doc[k] = strconv.FormatFloat(x, 'f', -1, 64)
		default:
			return nil, fmt.Errorf("unsupported profile value for %s", k)
		}
	}
	return doc, nil
}

// mapRenderError converts engine errors into API errors with field detail.
func mapRenderError(err error) error {
	var cfgErr *receipt.ConfigValidationError
	if errors.As(err, &cfgErr) {
		return apperror.NewValidationErrorWithMessage("Invalid print profile", toFieldErrors(cfgErr.Fields))
	}
	var dataErr *receipt.DataError
	if errors.As(err, &dataErr) {
		return apperror.NewValidationErrorWithMessage("Incomplete transaction data", toFieldErrors(dataErr.Fields))
	}
	return err
}

func toFieldErrors(fields []receipt.FieldError) []apperror.FieldError {
	out := make([]apperror.FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, apperror.FieldError{Field: f.Field, Message: f.Message})
	}
	return out
}
