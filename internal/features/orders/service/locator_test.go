package service

import (
	"context"
	"errors"
	"testing"

	"shipment-sync/internal/features/orders/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNameQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Hash prefixed", in: "#LP-1009", want: `name:"#LP-1009" OR name:"LP-1009"`},
		{name: "Without hash", in: "LP-1009", want: `name:"#LP-1009" OR name:"LP-1009"`},
		{name: "Plain digits", in: "1009", want: `name:"#1009" OR name:1009`},
		{name: "Quotes escaped", in: `LP"1`, want: `name:"#LP\"1" OR name:"LP\"1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildNameQuery(tt.in))
		})
	}
}

func TestLocator_Locate_Search(t *testing.T) {
	ctx := context.Background()
	query := `name:"#LP-1009" OR name:"LP-1009"`

	t.Run("Found", func(t *testing.T) {
		provider := new(MockOrderProvider)
		expected := &domain.ResolvedOrder{ID: "gid://shopify/Order/1", Name: "#LP-1009"}
		provider.On("FindByName", ctx, query).Return(expected, nil).Once()

		order, err := NewLocator(provider).Locate(ctx, domain.SearchQuery("#LP-1009"))
		require.NoError(t, err)
		assert.Equal(t, expected, order)
		provider.AssertExpectations(t)
		provider.AssertNotCalled(t, "FindByReference")
	})

	t.Run("NotFound", func(t *testing.T) {
		provider := new(MockOrderProvider)
		provider.On("FindByName", ctx, query).Return(nil, nil).Once()

		_, err := NewLocator(provider).Locate(ctx, domain.SearchQuery("#LP-1009"))
		assert.ErrorIs(t, err, ErrOrderNotFound)

		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, query, resErr.Attempted)
		assert.Contains(t, err.Error(), query)
	})

	t.Run("TransportError", func(t *testing.T) {
		provider := new(MockOrderProvider)
		upstream := errors.New("shopify: status 502")
		provider.On("FindByName", ctx, query).Return(nil, upstream).Once()

		_, err := NewLocator(provider).Locate(ctx, domain.SearchQuery("#LP-1009"))
		assert.Equal(t, upstream, err)
	})
}

func TestLocator_Locate_Reference(t *testing.T) {
	ctx := context.Background()
	gid := "gid://shopify/Order/7708726460709"

	t.Run("Found", func(t *testing.T) {
		provider := new(MockOrderProvider)
		expected := &domain.ResolvedOrder{ID: gid, Name: "#LP-2001"}
		provider.On("FindByReference", ctx, gid).Return(expected, nil).Once()

		order, err := NewLocator(provider).Locate(ctx, domain.Reference("7708726460709"))
		require.NoError(t, err)
		assert.Equal(t, expected, order)
		provider.AssertNotCalled(t, "FindByName")
	})

	t.Run("NotFound", func(t *testing.T) {
		provider := new(MockOrderProvider)
		provider.On("FindByReference", ctx, gid).Return(nil, nil).Once()

		_, err := NewLocator(provider).Locate(ctx, domain.Reference("7708726460709"))
		assert.ErrorIs(t, err, ErrOrderNotFoundByID)
		assert.False(t, errors.Is(err, ErrOrderNotFound))
		assert.Equal(t, "order not found by id: "+gid, err.Error())
	})
}

func TestLocator_Locate_UnknownKind(t *testing.T) {
	_, err := NewLocator(new(MockOrderProvider)).Locate(context.Background(), domain.OrderIdentifier{Kind: "bogus"})
	assert.Error(t, err)
}
