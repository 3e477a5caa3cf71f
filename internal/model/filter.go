package model

import "fmt"

// Filter selects the candidate pool for the next-pair choice.
type Filter string

const (
	FilterSmart   Filter = "smart"
	FilterWitzig  Filter = "w"
	FilterNWitzig Filter = "n"
	FilterRated   Filter = "rated"
	FilterUnrated Filter = "unrated"
	FilterAll     Filter = "all"
)

// DefaultFilter is used when a request carries no filter.
const DefaultFilter = FilterSmart

// ParseFilter validates an externally supplied filter string. The empty
// string maps to the default.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "":
		return DefaultFilter, nil
	case FilterSmart, FilterWitzig, FilterNWitzig, FilterRated, FilterUnrated, FilterAll:
		return Filter(s), nil
	}
	return "", fmt.Errorf("unknown rating filter %q", s)
}
