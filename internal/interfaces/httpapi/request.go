package httpapi

import (
	"net/http"
	"regexp"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/goalserve-heatmap/internal/usecase"
)

// seasonPattern accepts split seasons (2023-2024) and calendar-year ones (2020).
var seasonPattern = regexp.MustCompile(`^\d{4}(-\d{4})?$`)

// feedFilterParams is an exact-match filter on the embedded league id, so any
// value is accepted and an unknown one yields an empty list.
type feedFilterParams struct {
	LeagueID string `validate:"required,max=64"`
}

type fixturesPathParams struct {
	LeagueID string `validate:"required,numeric,max=16"`
	Season   string `validate:"omitempty,season"`
}

type heatmapPathParams struct {
	LeagueID string `validate:"required,numeric,max=16"`
	MatchID  string `validate:"required,numeric,max=16"`
	Season   string `validate:"omitempty,season"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("season", func(fl validator.FieldLevel) bool {
		return seasonPattern.MatchString(fl.Field().String())
	})
	return v
}

func pathParam(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// validatePath turns validator failures into an invalid input error naming the fields.
func (h *Handler) validatePath(params any) error {
	err := h.validator.Struct(params)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !crerr.As(err, &fieldErrs) {
		return crerr.Mark(crerr.Wrap(err, "invalid path parameters"), usecase.ErrInvalidInput)
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		parts = append(parts, describeFieldError(fieldErr))
	}
	return crerr.Mark(crerr.Newf("invalid path parameters: %s", strings.Join(parts, "; ")), usecase.ErrInvalidInput)
}

func describeFieldError(fieldErr validator.FieldError) string {
	field := toSnake(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "numeric":
		return field + " must be numeric"
	case "season":
		return field + " must look like 2023-2024 or 2020"
	case "max":
		return field + " is too long"
	default:
		return field + " is invalid"
	}
}

func toSnake(name string) string {
	switch name {
	case "LeagueID":
		return "league_id"
	case "MatchID":
		return "match_id"
	default:
		return strings.ToLower(name)
	}
}
