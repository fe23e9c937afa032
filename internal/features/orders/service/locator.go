package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"shipment-sync/internal/features/orders/domain"
	"shipment-sync/internal/features/orders/ports"
)

var (
	// ErrOrderNotFound is returned when a name search matches nothing.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNotFoundByID is returned when a direct reference does not exist.
	ErrOrderNotFoundByID = errors.New("order not found by id")
)

// bareSearchValue matches values that need no quoting in the order search syntax.
var bareSearchValue = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// ResolutionError reports an order that could not be located, with the query or id that was tried.
type ResolutionError struct {
	// Attempted is the search expression or global id sent to the store.
	Attempted string
	Err       error
}

func (e *ResolutionError) Error() string {
	if errors.Is(e.Err, ErrOrderNotFoundByID) {
		return fmt.Sprintf("%v: %s", e.Err, e.Attempted)
	}
	return fmt.Sprintf("%v (query: %s)", e.Err, e.Attempted)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Locator resolves an OrderIdentifier to a store order and its fulfillment units.
type Locator struct {
	provider ports.OrderProvider
}

// NewLocator creates a new Locator.
func NewLocator(provider ports.OrderProvider) *Locator {
	return &Locator{provider: provider}
}

// Locate picks the lookup strategy from the identifier kind.
// Transport failures are returned as is; a missing order is a *ResolutionError.
func (l *Locator) Locate(ctx context.Context, id domain.OrderIdentifier) (*domain.ResolvedOrder, error) {
	switch id.Kind {
	case domain.KindReference:
		order, err := l.provider.FindByReference(ctx, id.Value)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, &ResolutionError{Attempted: id.Value, Err: ErrOrderNotFoundByID}
		}
		return order, nil

	case domain.KindSearchQuery:
		query := BuildNameQuery(id.Value)
		order, err := l.provider.FindByName(ctx, query)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, &ResolutionError{Attempted: query, Err: ErrOrderNotFound}
		}
		return order, nil

	default:
		return nil, fmt.Errorf("unknown identifier kind %q", id.Kind)
	}
}

// BuildNameQuery matches an order name with and without its leading hash.
func BuildNameQuery(name string) string {
	bare := strings.TrimPrefix(strings.TrimSpace(name), "#")
	return fmt.Sprintf("name:%s OR name:%s", quoteSearchValue("#"+bare), quoteSearchValue(bare))
}

func quoteSearchValue(v string) string {
	if bareSearchValue.MatchString(v) {
		return v
	}
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(v)
	return `"` + escaped + `"`
}
