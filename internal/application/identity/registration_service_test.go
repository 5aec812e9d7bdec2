package identity

import (
	"context"
	"testing"

	"github.com/gstbill/backend/internal/domain/identity"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAllocator struct {
	mock.Mock
}

func (m *MockAllocator) Allocate(ctx context.Context, designationCode string) (identity.Identifier, error) {
	args := m.Called(ctx, designationCode)
	return args.Get(0).(identity.Identifier), args.Error(1)
}

type MockProfessionalRepository struct {
	mock.Mock
}

func (m *MockProfessionalRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Professional, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) FindByIdentifier(ctx context.Context, identifier string) (*identity.Professional, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) Save(ctx context.Context, professional *identity.Professional) error {
	args := m.Called(ctx, professional)
	return args.Error(0)
}

func TestRegistrationService_RegisterProfessional(t *testing.T) {
	allocator := new(MockAllocator)
	repo := new(MockProfessionalRepository)
	service := NewRegistrationService(allocator, repo, nil)
	ctx := context.Background()

	allocator.On("Allocate", ctx, "CA").Return(identity.Identifier{Value: "BHPCA00042", Authoritative: true}, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*identity.Professional")).Return(nil)

	professional, err := service.RegisterProfessional(ctx, "CA", "Meera Iyer")
	require.NoError(t, err)

	assert.Equal(t, "BHPCA00042", professional.Identifier)
	assert.Equal(t, "CA", professional.DesignationCode)
	assert.Equal(t, "Meera Iyer", professional.Name)
	repo.AssertExpectations(t)
}

func TestRegistrationService_RegisterProfessional_FallbackIdentifierAccepted(t *testing.T) {
	allocator := new(MockAllocator)
	repo := new(MockProfessionalRepository)
	service := NewRegistrationService(allocator, repo, nil)
	ctx := context.Background()

	// Randomized fallback values are saved, not rejected
	allocator.On("Allocate", ctx, "ADV").Return(identity.Identifier{Value: "BHPADV83154", Authoritative: false}, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*identity.Professional")).Return(nil)

	professional, err := service.RegisterProfessional(ctx, "ADV", "Rahul Shah")
	require.NoError(t, err)
	assert.Equal(t, "BHPADV83154", professional.Identifier)
}

func TestRegistrationService_RegisterProfessional_InvalidDesignation(t *testing.T) {
	allocator := new(MockAllocator)
	repo := new(MockProfessionalRepository)
	service := NewRegistrationService(allocator, repo, nil)
	ctx := context.Background()

	for _, code := range []string{"", "ca", "TOOLONG", "C1"} {
		_, err := service.RegisterProfessional(ctx, code, "Meera Iyer")
		assert.Error(t, err, "code %q", code)
	}
	allocator.AssertNotCalled(t, "Allocate", mock.Anything, mock.Anything)
}

func TestRegistrationService_RegisterProfessional_AllocatorFailure(t *testing.T) {
	allocator := new(MockAllocator)
	repo := new(MockProfessionalRepository)
	service := NewRegistrationService(allocator, repo, nil)
	ctx := context.Background()

	allocator.On("Allocate", ctx, "CS").Return(identity.Identifier{}, shared.ErrConcurrencyConflict)

	_, err := service.RegisterProfessional(ctx, "CS", "Meera Iyer")
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
