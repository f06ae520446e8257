// Package validation holds the field-level and cross-field rules checked
// before any roster record reaches the store.
package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"roster-api/packages/core/models"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to its human-readable violations.
// An empty map means the record is valid.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Merge appends every violation of other into e.
func (e Errors) Merge(other Errors) Errors {
	for field, messages := range other {
		e[field] = append(e[field], messages...)
	}
	return e
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Fields returns the violated field names in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Player checks a candidate player.
func Player(p models.Player) Errors {
	errs := Errors{}
	requireText(errs, "name", p.Name)
	requireText(errs, "user_id", p.UserID)
	requireDate(errs, "date_of_birth", p.DateOfBirth)
	structRules(errs, p)
	return errs
}

// TeamAssignment checks a candidate team assignment.
func TeamAssignment(a models.TeamAssignment) Errors {
	errs := Errors{}
	requireText(errs, "team_name", a.TeamName)
	requireText(errs, "championship_name", a.ChampionshipName)
	requireDate(errs, "joined_date", a.JoinedDate)
	if a.LeftDate != nil && !a.JoinedDate.IsZero() && a.LeftDate.Before(a.JoinedDate) {
		errs.Add("left_date", "must not be earlier than joined_date")
	}
	structRules(errs, a)
	return errs
}

// PlayerStatistic checks a candidate per-game statistic.
func PlayerStatistic(s models.PlayerStatistic) Errors {
	errs := Errors{}
	requireDate(errs, "game_date", s.GameDate)
	structRules(errs, s)
	return errs
}

// Provenance checks the acting user recorded in an audit field: created_by
// on insert, modified_by on update. It is never allowed to be blank.
func Provenance(field, actor string) Errors {
	errs := Errors{}
	requireText(errs, field, actor)
	return errs
}

func requireText(errs Errors, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, "is required")
	}
}

func requireDate(errs Errors, field string, value time.Time) {
	if value.IsZero() {
		errs.Add(field, "is required")
	}
}

func structRules(errs Errors, record any) {
	err := validate.Struct(record)
	if err == nil {
		return
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add("record", err.Error())
		return
	}
	for _, fe := range validationErrors {
		errs.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}
