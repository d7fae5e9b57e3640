package user

import (
	"regexp"
	"strings"
)

// Field names a searchable record attribute
type Field string

const (
	FieldName   Field = "name"
	FieldSkills Field = "skills"
	FieldCity   Field = "city"
)

// Condition matches records whose Field contains Text, ignoring case.
// For FieldSkills any single skill containing Text is enough.
type Condition struct {
	Field Field
	Text  string
}

// SearchCriteria is a disjunction: a record matches when any condition does
type SearchCriteria struct {
	Conditions []Condition
}

// BuildSearch translates the free-text query and location into criteria.
// ok is false when both inputs are blank, in which case nothing should be
// returned at all.
func BuildSearch(query, location string) (criteria SearchCriteria, ok bool) {
	query = strings.TrimSpace(query)
	location = strings.TrimSpace(location)

	if query == "" && location == "" {
		return SearchCriteria{}, false
	}

	if query != "" {
		criteria.Conditions = append(criteria.Conditions,
			Condition{Field: FieldName, Text: query},
			Condition{Field: FieldSkills, Text: query},
		)
	}
	if location != "" {
		criteria.Conditions = append(criteria.Conditions, Condition{Field: FieldCity, Text: location})
	}

	return criteria, true
}

// RegexPattern returns an unanchored pattern matching Text literally.
// Case-insensitivity is left to the caller (regex option or flag).
func (c Condition) RegexPattern() string {
	return regexp.QuoteMeta(c.Text)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern returns a SQL LIKE pattern matching Text anywhere in the value
func (c Condition) LikePattern() string {
	return "%" + likeEscaper.Replace(c.Text) + "%"
}

// Matcher compiles the criteria into a predicate for in-process filtering
func (s SearchCriteria) Matcher() func(*User) bool {
	type compiled struct {
		field Field
		re    *regexp.Regexp
	}

	conds := make([]compiled, 0, len(s.Conditions))
	for _, c := range s.Conditions {
		conds = append(conds, compiled{field: c.Field, re: regexp.MustCompile("(?i)" + c.RegexPattern())})
	}

	return func(u *User) bool {
		for _, c := range conds {
			switch c.field {
			case FieldName:
				if c.re.MatchString(u.Name) {
					return true
				}
			case FieldCity:
				if c.re.MatchString(u.City) {
					return true
				}
			case FieldSkills:
				for _, skill := range u.Skills {
					if c.re.MatchString(skill) {
						return true
					}
				}
			}
		}
		return false
	}
}
