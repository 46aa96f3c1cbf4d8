package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddRestaurantCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAddRestaurantCommand("Mama Put", "Campus Gate")

	uow := new(MockUoW)
	repo := new(MockRestaurantRepository)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*restaurant.Restaurant")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRestaurantUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddRestaurantCommandHandler(factory)
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "Mama Put", got.Name())
	assert.Equal(t, "Campus Gate", got.Address())
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestAddRestaurantCommandHandler_Handle_InvalidInputWritesNothing(t *testing.T) {
	factory := new(MockRestaurantUoWFactory)
	h := commands.NewAddRestaurantCommandHandler(factory)

	_, err := h.Handle(t.Context(), commands.NewAddRestaurantCommand(" ", ""))

	require.ErrorIs(t, err, restaurant.ErrNameIsRequired)
	require.ErrorIs(t, err, restaurant.ErrAddressIsRequired)
	factory.AssertNotCalled(t, "Create")
}
