package services

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// UseCaseEnv defines the variables available during filter expression evaluation.
type UseCaseEnv struct {
	Key          string   `expr:"key"`
	UseCase      string   `expr:"useCase"`
	Profiles     []string `expr:"profiles"`
	Masks        []string `expr:"masks"`
	ProfileCount int      `expr:"profileCount"`
}

// NewUseCaseEnv builds the expression environment of an entry.
func NewUseCaseEnv(entry UseCaseEntry) UseCaseEnv {
	return UseCaseEnv{
		Key:          entry.Key,
		UseCase:      entry.UseCase,
		Profiles:     entry.Profiles,
		Masks:        entry.Masks,
		ProfileCount: len(entry.Profiles),
	}
}

// CompileFilterExpression compiles a boolean filter over UseCaseEnv.
func CompileFilterExpression(source string) (*vm.Program, error) {
	return expr.Compile(source, expr.Env(UseCaseEnv{}), expr.AsBool())
}

// UseCaseFilter selects use-case entries for inspection.
type UseCaseFilter struct {
	profiles      map[string]bool
	filterProgram *vm.Program
}

// NewUseCaseFilter initializes a new empty filter.
func NewUseCaseFilter() *UseCaseFilter {
	return &UseCaseFilter{profiles: make(map[string]bool)}
}

// WithProfiles keeps only entries authorizing any of these profiles.
func (f *UseCaseFilter) WithProfiles(codes []string) *UseCaseFilter {
	f.profiles = make(map[string]bool, len(codes))
	for _, code := range codes {
		f.profiles[code] = true
	}
	return f
}

// WithFilterExpression applies a compiled Expr program for advanced filtering.
func (f *UseCaseFilter) WithFilterExpression(program *vm.Program) *UseCaseFilter {
	f.filterProgram = program
	return f
}

// Matches evaluates whether an entry passes the filter, with a reason if not.
func (f *UseCaseFilter) Matches(entry UseCaseEntry) (bool, string) {
	var specs []UseCaseSpecification
	if len(f.profiles) > 0 {
		specs = append(specs, NewAuthorizedProfilesSpecification(f.profiles))
	}
	if f.filterProgram != nil {
		specs = append(specs, NewExpressionSpecification(f.filterProgram))
	}
	return NewAndSpecification(specs...).IsSatisfiedBy(entry)
}
