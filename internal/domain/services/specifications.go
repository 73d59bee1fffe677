package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// UseCaseSpecification defines a condition that a use-case entry must meet.
type UseCaseSpecification interface {
	// IsSatisfiedBy checks if the entry meets the specification.
	// Returns true if satisfied, along with a reason if not (or empty if satisfied).
	IsSatisfiedBy(entry UseCaseEntry) (bool, string)
}

// AndSpecification combines multiple specifications with logical AND.
type AndSpecification struct {
	specs []UseCaseSpecification
}

// NewAndSpecification creates a new AndSpecification.
func NewAndSpecification(specs ...UseCaseSpecification) *AndSpecification {
	return &AndSpecification{specs: specs}
}

// IsSatisfiedBy checks if all specifications are satisfied.
func (s *AndSpecification) IsSatisfiedBy(entry UseCaseEntry) (bool, string) {
	for _, spec := range s.specs {
		if satisfied, reason := spec.IsSatisfiedBy(entry); !satisfied {
			return false, reason
		}
	}
	return true, ""
}

// AuthorizedProfilesSpecification includes only entries authorizing any of the given profiles.
type AuthorizedProfilesSpecification struct {
	profiles map[string]bool
}

// NewAuthorizedProfilesSpecification creates a new AuthorizedProfilesSpecification.
func NewAuthorizedProfilesSpecification(profiles map[string]bool) *AuthorizedProfilesSpecification {
	return &AuthorizedProfilesSpecification{profiles: profiles}
}

// IsSatisfiedBy checks if the entry authorizes ANY of the profiles.
func (s *AuthorizedProfilesSpecification) IsSatisfiedBy(entry UseCaseEntry) (bool, string) {
	if len(s.profiles) == 0 {
		return true, ""
	}
	for _, code := range entry.Profiles {
		if s.profiles[code] {
			return true, ""
		}
	}
	return false, "excluded by --profile filter"
}

// ExpressionSpecification filters entries using an expr program.
type ExpressionSpecification struct {
	program *vm.Program
}

// NewExpressionSpecification creates a new ExpressionSpecification.
func NewExpressionSpecification(program *vm.Program) *ExpressionSpecification {
	return &ExpressionSpecification{program: program}
}

// IsSatisfiedBy evaluates the expr program against the entry.
func (s *ExpressionSpecification) IsSatisfiedBy(entry UseCaseEntry) (bool, string) {
	if s.program == nil {
		return true, ""
	}

	output, err := expr.Run(s.program, NewUseCaseEnv(entry))
	if err != nil {
		return false, fmt.Sprintf("filter expression error: %v", err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Sprintf("filter expression did not return boolean: %v", output)
	}

	if !result {
		return false, "excluded by --filter expression"
	}

	return true, ""
}
